package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used on the wire for cutoffs
const DateLayout = "2006-01-02"

// dateLayouts are tried in order when parsing stored reading dates
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// AnalysisRequest is the immutable context of one recomputation
type AnalysisRequest struct {
	Station   string    `json:"station"`
	Pollutant string    `json:"pollutant"`
	Cutoff    time.Time `json:"cutoff"`
}

// NewAnalysisRequest builds a request with the cutoff reduced to its calendar date
func NewAnalysisRequest(station, pollutant string, cutoff time.Time) (AnalysisRequest, error) {
	station = strings.TrimSpace(station)
	pollutant = strings.TrimSpace(pollutant)
	if station == "" {
		return AnalysisRequest{}, errors.New("station is required")
	}
	if pollutant == "" {
		return AnalysisRequest{}, errors.New("pollutant is required")
	}
	if cutoff.IsZero() {
		return AnalysisRequest{}, errors.New("cutoff date is required")
	}
	return AnalysisRequest{
		Station:   station,
		Pollutant: pollutant,
		Cutoff:    CivilDate(cutoff),
	}, nil
}

// CivilDate drops the time of day, keeping the calendar date the time was recorded on
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a stored reading date
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("malformed date %q", s)
}
