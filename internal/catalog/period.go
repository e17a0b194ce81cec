package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailyair/internal/models"
)

// ErrCutoffOutOfRange is returned for a cutoff outside the analysis period
var ErrCutoffOutOfRange = errors.New("cutoff date outside the analysis period")

// Period bounds the cutoff dates an analysis accepts
type Period struct {
	First         time.Time `json:"first"`
	Last          time.Time `json:"last"`
	DefaultCutoff time.Time `json:"default_cutoff"`
}

// Period derives the analysis period from the date of the last update
func (c *Catalog) Period(ctx context.Context) (Period, error) {
	if !c.Supported() {
		return Period{}, ErrUnsupported
	}
	last, err := c.store.LastUpdate(ctx)
	if err != nil {
		return Period{}, fmt.Errorf("failed to read last update: %w", err)
	}
	return NewPeriod(last, c.opts.PeriodDays, c.opts.LookbackDays), nil
}

// NewPeriod builds the period ending on the last update date
func NewPeriod(lastUpdate time.Time, periodDays, lookbackDays int) Period {
	last := models.CivilDate(lastUpdate)
	return Period{
		First:         last.AddDate(0, 0, -periodDays),
		Last:          last,
		DefaultCutoff: last.AddDate(0, 0, -lookbackDays),
	}
}

// Validate checks a cutoff lies within [First, Last], by calendar date
func (p Period) Validate(cutoff time.Time) error {
	day := models.CivilDate(cutoff)
	if day.Before(p.First) || day.After(p.Last) {
		return fmt.Errorf("%s not within %s to %s: %w",
			day.Format(models.DateLayout), p.First.Format(models.DateLayout), p.Last.Format(models.DateLayout), ErrCutoffOutOfRange)
	}
	return nil
}
