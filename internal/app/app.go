// Package app wires the configured data backend, reference table, analyzer
// and catalog together for the entrypoints.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"dailyair/internal/aggregation"
	"dailyair/internal/analysis"
	"dailyair/internal/catalog"
	"dailyair/internal/config"
	"dailyair/internal/logger"
	"dailyair/internal/mocks"
	"dailyair/internal/pollutants"
	"dailyair/internal/repository"
	"dailyair/internal/storage"
)

// App holds the components shared by the HTTP service and the CLI
type App struct {
	Config     *config.Config
	Backend    *repository.Backend
	References pollutants.Table
	Analyzer   *analysis.Analyzer
	Catalog    *catalog.Catalog
}

// New opens the configured backend and builds the analysis components on top of it
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	table, err := LoadReferences(cfg)
	if err != nil {
		return nil, err
	}
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Assemble(cfg, backend, table), nil
}

// Assemble builds the analyzer and catalog over an already opened backend
func Assemble(cfg *config.Config, backend *repository.Backend, table pollutants.Table) *App {
	return &App{
		Config:     cfg,
		Backend:    backend,
		References: table,
		Analyzer: analysis.NewAnalyzer(backend.History, table, aggregation.Options{
			IncludeOldest: cfg.IncludeOldestReading,
		}),
		Catalog: catalog.New(backend.Catalog, catalog.Options{
			PeriodDays:   cfg.AnalysisPeriodDays,
			LookbackDays: cfg.DefaultLookbackDays,
		}),
	}
}

// Close releases the backend
func (a *App) Close(ctx context.Context) error {
	return a.Backend.Close(ctx)
}

// LoadReferences returns the embedded pollutant table, or the one of POLLUTANTS_FILE when set
func LoadReferences(cfg *config.Config) (pollutants.Table, error) {
	if cfg.PollutantsFile == "" {
		return pollutants.Default(), nil
	}
	table, err := pollutants.Load(cfg.PollutantsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pollutants file: %w", err)
	}
	logger.Info("Loaded pollutant table", logger.Fields{"file": cfg.PollutantsFile, "pollutants": len(table)})
	return table, nil
}

// OpenBackend connects to the data backend selected by DATA_BACKEND
func OpenBackend(ctx context.Context, cfg *config.Config) (*repository.Backend, error) {
	log := logger.Component("app")

	switch cfg.DataBackend {
	case config.BackendMongo:
		store, err := repository.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		log.Info("Using MongoDB backend", logger.Fields{"database": cfg.MongoDatabase})
		return repository.NewBackend(cfg.DataBackend, store, store, store.Close), nil

	case config.BackendDynamoDB:
		store, err := repository.NewDynamoStore(cfg.DynamoDBRegion, cfg.DynamoDBEndpoint, cfg.DynamoDBWorkingTable, cfg.DynamoDBWeekendsTable)
		if err != nil {
			return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
		}
		log.Info("Using DynamoDB backend, catalog queries are unavailable", logger.Fields{
			"region":         cfg.DynamoDBRegion,
			"working_table":  cfg.DynamoDBWorkingTable,
			"weekends_table": cfg.DynamoDBWeekendsTable,
		})
		return repository.NewBackend(cfg.DataBackend, store, nil, nil), nil

	case config.BackendSnapshot:
		client, err := storage.NewStorageClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		defer client.Close()
		store, err := repository.LoadSnapshot(ctx, client, cfg.SnapshotPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		log.Info("Using snapshot backend", logger.Fields{"storage": cfg.StorageMode, "path": cfg.SnapshotPath})
		return repository.NewBackend(cfg.DataBackend, store, store, nil), nil

	case config.BackendHTTP:
		store := repository.NewHTTPStore(cfg.HTTPStoreURL, cfg.HTTPStoreToken)
		log.Info("Using HTTP document service", logger.Fields{"url": cfg.HTTPStoreURL})
		return repository.NewBackend(cfg.DataBackend, store, store, nil), nil

	case config.BackendMock:
		mocksDir := filepath.Join("internal", "mocks")
		store, err := mocks.NewMockService(mocksDir).Store()
		if err != nil {
			return nil, fmt.Errorf("failed to load mock data: %w", err)
		}
		log.Info("Mockup mode enabled", logger.Fields{"mocks_dir": mocksDir})
		return repository.NewBackend(cfg.DataBackend, store, store, nil), nil

	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}
