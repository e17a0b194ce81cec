package aggregation

import (
	"fmt"

	"dailyair/internal/models"
)

// EmptyWindowError reports an hour whose readings all fall outside the window
// once the oldest reading has been excluded. The aggregator treats it as an
// hour without data.
type EmptyWindowError struct {
	Hour  int
	Total int
}

func (e *EmptyWindowError) Error() string {
	return fmt.Sprintf("hour %d: no reading left in window (%d in history)", e.Hour, e.Total)
}

// MissingGroupError records that a day-type group had no documents at all.
// It never aborts aggregation of the other group.
type MissingGroupError struct {
	Group models.DayTypeGroup
	Cause error
}

func (e *MissingGroupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("no data for %s: %v", e.Group, e.Cause)
	}
	return fmt.Sprintf("no data for %s", e.Group)
}

func (e *MissingGroupError) Unwrap() error {
	return e.Cause
}
