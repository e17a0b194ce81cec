package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"dailyair/internal/catalog"
	"dailyair/internal/charts"
	"dailyair/internal/config"
	"dailyair/internal/logger"
	"dailyair/internal/models"
	"dailyair/internal/reports"
	"dailyair/internal/storage"
)

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"backend":   s.App.Backend.Name,
		"checks": map[string]bool{
			"catalog":    s.App.Catalog.Supported(),
			"publishing": s.Storage != nil,
		},
	}
	writeJSON(w, http.StatusOK, health)
}

// HandleCatalog lists the choices of /api/catalog/{kind}?parent=
func (s *Server) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	kind, err := catalog.ParseQueryKind(strings.TrimPrefix(r.URL.Path, "/api/catalog/"))
	if err != nil {
		s.writeError(w, r, badRequest("%v", err))
		return
	}
	parent := r.URL.Query().Get("parent")

	items, err := s.App.Catalog.Query(r.Context(), kind, parent)
	if err != nil {
		if kind != catalog.Regions && strings.TrimSpace(parent) == "" {
			err = badRequest("%v", err)
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"kind":   kind.String(),
		"parent": parent,
		"items":  items,
	})
}

// HandlePeriod returns the range of cutoff dates an analysis accepts
func (s *Server) HandlePeriod(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	period, err := s.App.Catalog.Period(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"first":          period.First.Format(models.DateLayout),
		"last":           period.Last.Format(models.DateLayout),
		"default_cutoff": period.DefaultCutoff.Format(models.DateLayout),
	})
}

// HandleChartJSON returns the chart specification of an analysis
func (s *Server) HandleChartJSON(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	page, err := s.analyze(r.Context(), readChartQuery(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page.Result)
}

// HandleChartPage serves the chart as a standalone ECharts page
func (s *Server) HandleChartPage(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "text/html; charset=utf-8", charts.RenderPage)
}

// HandleChartPNG serves the chart as a PNG image
func (s *Server) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "image/png", charts.RenderPNG)
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, contentType string, render func(charts.ChartSpec, io.Writer) error) {
	if !requireGet(w, r) {
		return
	}

	page, err := s.analyze(r.Context(), readChartQuery(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := render(page.Result.Chart, &buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(buf.Bytes())
}

// HandleRoot serves the report page: intro, selection form, then the chart
// or a notice explaining why there is none
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !requireGet(w, r) {
		return
	}

	ctx := r.Context()
	q := readChartQuery(r)
	status := http.StatusOK

	var page reports.Page
	if q.Station == "" && q.Pollutant == "" {
		period, err := s.period(ctx)
		if err != nil {
			s.writePageError(w, r, err)
			return
		}
		page = reports.Page{Period: period}
	} else {
		analyzed, err := s.analyze(ctx, q)
		if err != nil {
			notice := reports.NoticeFor(err)
			if notice == "" {
				s.writePageError(w, r, err)
				return
			}
			status = http.StatusNotFound
			analyzed.Notice = notice
		}
		page = *analyzed
	}

	html, err := s.Generator.GenerateHTML(page)
	if err != nil {
		s.writePageError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(html))
}

// HandlePublish generates the report files of an analysis and stores them
func (s *Server) HandlePublish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	startTime := time.Now()

	page, err := s.analyze(ctx, readChartQuery(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	folder, stored, err := s.Files.Publish(ctx, *page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	duration := time.Since(startTime)
	s.log.Info("Report published", logger.Fields{
		"request_id":  RequestID(ctx),
		"folder":      folder,
		"duration_ms": duration.Milliseconds(),
	})
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status":      "success",
		"report_url":  "/" + folder + "/" + reports.HTMLFileName,
		"files":       stored,
		"duration_ms": duration.Milliseconds(),
	})
}

// HandleListReports lists the published reports
func (s *Server) HandleListReports(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	folders, err := s.Files.ListReports(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports":   folders,
		"count":     len(folders),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleFileProxy serves a published report file from storage
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/reports/")
	if filePath == "" || strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	data, err := s.Files.GetFile(r.Context(), filePath)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(data)
}

// analyze validates the selection against the catalog, when the backend has
// one, and runs the analysis. The returned page is set even on error so
// callers can show the selection next to a notice.
func (s *Server) analyze(ctx context.Context, q chartQuery) (*reports.Page, error) {
	page := &reports.Page{Station: q.Station, Pollutant: q.Pollutant}
	if q.Station == "" || q.Pollutant == "" {
		return page, badRequest("station and pollutant are required")
	}

	period, err := s.period(ctx)
	if err != nil {
		return page, err
	}
	page.Period = period

	cutoff, err := parseStart(q.Start, period)
	if err != nil {
		return page, err
	}
	page.Cutoff = cutoff

	if s.App.Catalog.Supported() {
		if err := s.App.Catalog.CheckStation(ctx, q.Station); err != nil {
			return page, err
		}
	}

	req, err := models.NewAnalysisRequest(q.Station, q.Pollutant, cutoff)
	if err != nil {
		return page, badRequest("%v", err)
	}
	res, err := s.App.Analyzer.Analyze(ctx, req)
	if err != nil {
		return page, err
	}
	page.Result = res
	return page, nil
}

// period returns the analysis period, or nil when the backend keeps no catalog
func (s *Server) period(ctx context.Context) (*catalog.Period, error) {
	if !s.App.Catalog.Supported() {
		return nil, nil
	}
	p, err := s.App.Catalog.Period(ctx)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// writePageError answers an HTML page request with a plain-text error
func (s *Server) writePageError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Page failed", err, logger.Fields{"request_id": RequestID(r.Context())})
	}
	http.Error(w, message, status)
}
