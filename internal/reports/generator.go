// Package reports assembles the HTML report page and the files published
// for an analysis.
package reports

import (
	"errors"
	"fmt"
	"html/template"
	"time"

	"dailyair/internal/analysis"
	"dailyair/internal/catalog"
	"dailyair/internal/charts"
	"dailyair/internal/config"
	"dailyair/internal/logger"
	"dailyair/internal/models"
)

// Notices shown instead of the chart
const (
	NoticeNoData        = "No pollution data are available for the given period."
	NoticeNoStationData = "Sorry, no data available for this station."
)

// pageTitle is the title of every report page
const pageTitle = "Daily air pollution"

// Page is what one report page shows: the selection, and either the result
// of the analysis or a notice
type Page struct {
	Station   string
	Pollutant string
	Cutoff    time.Time
	Period    *catalog.Period
	Result    *analysis.Result
	Notice    string
}

// NoticeFor returns the notice shown for an analysis error, or "" when the
// error is not one the page explains to the user
func NoticeFor(err error) string {
	switch {
	case errors.Is(err, analysis.ErrNoUsableData):
		return NoticeNoData
	case errors.Is(err, catalog.ErrNoStationData):
		return NoticeNoStationData
	default:
		return ""
	}
}

// Generator renders report pages
type Generator struct {
	builder *HTMLBuilder
	now     func() time.Time
	log     *logger.Logger
}

// NewGenerator creates a report generator
func NewGenerator() (*Generator, error) {
	builder, err := NewHTMLBuilder()
	if err != nil {
		return nil, err
	}
	return &Generator{
		builder: builder,
		now:     time.Now,
		log:     logger.Component("reports"),
	}, nil
}

// GenerateHTML renders the page: intro, selection form, then the chart
// snippet or the notice
func (g *Generator) GenerateHTML(p Page) (string, error) {
	intro, err := g.builder.Intro()
	if err != nil {
		return "", err
	}
	css, err := g.builder.CSS()
	if err != nil {
		return "", err
	}

	data := TemplateData{
		Title:       pageTitle,
		CSS:         css,
		Intro:       intro,
		Station:     p.Station,
		Pollutant:   p.Pollutant,
		Notice:      p.Notice,
		Version:     config.GetVersion(),
		GeneratedAt: g.now().UTC().Format("2006-01-02 15:04:05 UTC"),
	}
	if !p.Cutoff.IsZero() {
		data.Start = p.Cutoff.Format(models.DateLayout)
	}
	if p.Period != nil {
		data.PeriodFirst = p.Period.First.Format(models.DateLayout)
		data.PeriodLast = p.Period.Last.Format(models.DateLayout)
		if data.Start == "" {
			data.Start = p.Period.DefaultCutoff.Format(models.DateLayout)
		}
	}

	if p.Result != nil && p.Notice == "" {
		snippet, err := charts.BuildSnippet(p.Result.Chart)
		if err != nil {
			return "", fmt.Errorf("failed to build chart snippet: %w", err)
		}
		data.Title = snippet.Title
		data.Chart = template.HTML(snippet.HTML)
		data.Warnings = p.Result.Warnings
	}

	page, err := g.builder.BuildCompleteHTML(data)
	if err != nil {
		return "", err
	}
	g.log.Debug("Report page generated", logger.Fields{
		"station":   p.Station,
		"pollutant": p.Pollutant,
		"chart":     data.Chart != "",
		"size":      len(page),
	})
	return page, nil
}
