// Package server exposes the analysis, catalog and report pages over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"dailyair/internal/app"
	"dailyair/internal/logger"
	"dailyair/internal/reports"
	"dailyair/internal/storage"
)

// RequestIDHeader carries the identifier of every request and response
const RequestIDHeader = "X-Request-ID"

// Server represents the main application server
type Server struct {
	App       *app.App
	Generator *reports.Generator
	// Storage holds published reports; nil disables publishing
	Storage storage.StorageClient
	Files   *FileManager
	log     *logger.Logger
}

// NewServer creates a new server instance. client may be nil.
func NewServer(a *app.App, client storage.StorageClient) (*Server, error) {
	generator, err := reports.NewGenerator()
	if err != nil {
		return nil, err
	}
	s := &Server{
		App:       a,
		Generator: generator,
		Storage:   client,
		log:       logger.Component("server"),
	}
	s.Files = NewFileManager(s)
	return s, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/api/catalog/", s.HandleCatalog)
	mux.HandleFunc("/api/period", s.HandlePeriod)
	mux.HandleFunc("/api/chart", s.HandleChartJSON)
	mux.HandleFunc("/chart", s.HandleChartPage)
	mux.HandleFunc("/chart.png", s.HandleChartPNG)
	mux.HandleFunc("/api/reports", s.HandlePublish)
	mux.HandleFunc("/reports", s.HandleListReports)
	mux.HandleFunc("/reports/", s.HandleFileProxy)

	// Handle root path last (catch-all)
	mux.HandleFunc("/", s.HandleRoot)

	return s.withRequestID(mux)
}

type requestIDKey struct{}

// withRequestID tags every request with an identifier, echoed in the
// response header and in the access log
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		s.log.Info("Request served", logger.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
		})
	})
}

// RequestID returns the identifier assigned to the request
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Close cleans up server resources
func (s *Server) Close(ctx context.Context) error {
	if s.Storage != nil {
		if err := s.Storage.Close(); err != nil {
			s.log.Warn("Failed to close storage", logger.Fields{"error": err.Error()})
		}
	}
	return s.App.Close(ctx)
}
