package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dailyair/internal/analysis"
	"dailyair/internal/catalog"
	"dailyair/internal/logger"
	"dailyair/internal/models"
	"dailyair/internal/reports"
	"dailyair/internal/storage"
)

var (
	// errBadRequest marks errors caused by invalid request parameters
	errBadRequest = errors.New("bad request")
	// errPublishingDisabled is returned when no report storage is configured
	errPublishingDisabled = errors.New("report storage not configured")
)

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// statusFor maps an error to its HTTP status and the message shown to the client
func statusFor(err error) (int, string) {
	var integrity *models.DataIntegrityError
	switch {
	case errors.Is(err, analysis.ErrNoUsableData), errors.Is(err, catalog.ErrNoStationData):
		return http.StatusNotFound, reports.NoticeFor(err)
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, storage.ErrNotExist):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errBadRequest),
		errors.Is(err, analysis.ErrUnknownPollutant),
		errors.Is(err, catalog.ErrCutoffOutOfRange):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, catalog.ErrUnsupported), errors.Is(err, errPublishingDisabled):
		return http.StatusNotImplemented, err.Error()
	case errors.As(err, &integrity):
		return http.StatusInternalServerError, "stored data failed integrity checks"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// writeError writes err as a JSON error body with its mapped status
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed", err, logger.Fields{
			"request_id": RequestID(r.Context()),
			"path":       r.URL.Path,
		})
	}
	writeJSON(w, status, map[string]interface{}{
		"error":      message,
		"status":     status,
		"request_id": RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// requireGet rejects every method but GET
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// chartQuery is the selection carried by the query string of chart and report requests
type chartQuery struct {
	Station   string
	Pollutant string
	Start     string
}

func readChartQuery(r *http.Request) chartQuery {
	q := r.URL.Query()
	return chartQuery{
		Station:   strings.TrimSpace(q.Get("station")),
		Pollutant: strings.TrimSpace(q.Get("pollutant")),
		Start:     strings.TrimSpace(q.Get("start")),
	}
}

// parseStart parses the start date, empty meaning the default cutoff
func parseStart(start string, period *catalog.Period) (time.Time, error) {
	if start == "" {
		if period == nil {
			return time.Time{}, badRequest("start is required")
		}
		return period.DefaultCutoff, nil
	}
	cutoff, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return time.Time{}, badRequest("start must be a %s date, got %q", models.DateLayout, start)
	}
	if period != nil {
		if err := period.Validate(cutoff); err != nil {
			return time.Time{}, err
		}
	}
	return cutoff, nil
}
