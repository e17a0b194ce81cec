// Package analysis runs one recomputation: fetch both day-type groups,
// aggregate them per hour and compose the chart.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"dailyair/internal/aggregation"
	"dailyair/internal/charts"
	"dailyair/internal/logger"
	"dailyair/internal/models"
	"dailyair/internal/pollutants"
	"dailyair/internal/repository"
)

var (
	// ErrNoUsableData is returned when neither group has any document
	ErrNoUsableData = errors.New("no pollution data are available for the given period")
	// ErrUnknownPollutant is returned for a pollutant missing from the reference table
	ErrUnknownPollutant = errors.New("unknown pollutant")
)

// Result is the outcome of one analysis
type Result struct {
	Request     models.AnalysisRequest `json:"request"`
	Pollutant   pollutants.Pollutant   `json:"pollutant"`
	Aggregation aggregation.Result     `json:"-"`
	Chart       charts.ChartSpec       `json:"chart"`
	Warnings    []string               `json:"warnings,omitempty"`
}

// Analyzer turns an AnalysisRequest into a chart specification. It keeps no
// state between requests.
type Analyzer struct {
	history    repository.HistoryStore
	references repository.ReferenceSource
	aggregator *aggregation.Aggregator
	log        *logger.Logger
}

// NewAnalyzer creates an analyzer reading documents from history and reference
// concentrations from references
func NewAnalyzer(history repository.HistoryStore, references repository.ReferenceSource, opts aggregation.Options) *Analyzer {
	return &Analyzer{
		history:    history,
		references: references,
		aggregator: aggregation.NewAggregator(opts),
		log:        logger.Component("analysis"),
	}
}

// Analyze computes the chart of a request.
//
// A group whose fetch fails is treated as missing, unless the failure is a
// DataIntegrityError, which is returned. ErrNoUsableData is returned when
// both groups are missing.
func (a *Analyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (*Result, error) {
	table, err := a.references.FetchReferenceTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference concentrations: %w", err)
	}
	pollutant, ok := table.Lookup(req.Pollutant)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPollutant, req.Pollutant)
	}

	var groups [2]aggregation.GroupResult
	for i, group := range models.DayTypeGroups {
		if groups[i], err = a.group(ctx, req, group); err != nil {
			return nil, err
		}
	}
	agg := aggregation.NewResult(groups[0], groups[1])

	if agg.NoUsableData() {
		a.log.Info("No usable data", logger.Fields{
			"station":   req.Station,
			"pollutant": req.Pollutant,
			"cutoff":    req.Cutoff.Format(models.DateLayout),
		})
		return nil, ErrNoUsableData
	}

	spec, err := charts.Compose(charts.ComposeInput{
		Station:    req.Station,
		Pollutant:  pollutant,
		WorkingDay: agg.WorkingDay.Series,
		Weekend:    agg.Weekend.Series,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compose chart: %w", err)
	}

	res := &Result{
		Request:     req,
		Pollutant:   pollutant,
		Aggregation: agg,
		Chart:       spec,
	}
	for _, w := range agg.Warnings() {
		res.Warnings = append(res.Warnings, w.Error())
	}
	return res, nil
}

// group fetches and aggregates one day-type group
func (a *Analyzer) group(ctx context.Context, req models.AnalysisRequest, group models.DayTypeGroup) (aggregation.GroupResult, error) {
	docs, fetchErr := a.history.FetchHistory(ctx, req.Station, req.Pollutant, group)
	if fetchErr != nil {
		var integrity *models.DataIntegrityError
		if errors.As(fetchErr, &integrity) {
			return aggregation.GroupResult{}, fetchErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return aggregation.GroupResult{}, ctxErr
		}
		a.log.Warn("Group fetch failed, treating it as missing", logger.Fields{
			"group":     group.String(),
			"station":   req.Station,
			"pollutant": req.Pollutant,
			"error":     fetchErr.Error(),
		})
		docs = nil
	}

	res, err := a.aggregator.AggregateGroup(group, docs, req.Cutoff)
	if err != nil {
		return aggregation.GroupResult{}, err
	}
	if res.Missing != nil && fetchErr != nil {
		res.Missing.Cause = fetchErr
	}
	return res, nil
}
