package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dailyair/internal/app"
	"dailyair/internal/config"
	"dailyair/internal/logger"
	"dailyair/internal/server"
	"dailyair/internal/storage"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", logger.Fields{"error": err.Error()})
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.Environment); err != nil {
		logger.Fatal("Invalid logging configuration", err)
	}

	logger.Info("Starting daily air pollution service", logger.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"backend":     cfg.DataBackend,
		"version":     config.GetVersion(),
	})

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open data backend", err)
	}

	reportStorage, err := storage.NewStorageClient(ctx, cfg)
	if err != nil {
		logger.Warn("Report publishing disabled", logger.Fields{"error": err.Error()})
		reportStorage = nil
	}

	srv, err := server.NewServer(a, reportStorage)
	if err != nil {
		logger.Fatal("Failed to create server", err)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", err)
	}
	if err := srv.Close(shutdownCtx); err != nil {
		logger.Error("Failed to close backend", err)
	}

	logger.Info("Server stopped")
}
