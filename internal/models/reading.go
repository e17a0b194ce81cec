package models

import (
	"time"
)

// HoursPerDay is the number of hour-of-day buckets a day is split into
const HoursPerDay = 24

// HourlyReading is one averaged concentration recorded at a given hour of a given day
type HourlyReading struct {
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// HourHistory holds the readings of one (station, pollutant, hour, group) bucket, oldest first
type HourHistory []HourlyReading

// Newest returns the readings newest first without modifying the history
func (h HourHistory) Newest() []HourlyReading {
	out := make([]HourlyReading, len(h))
	for i, r := range h {
		out[len(h)-1-i] = r
	}
	return out
}

// DocumentID identifies the bucket a stored document belongs to
type DocumentID struct {
	Station   string `json:"station" bson:"station"`
	Pollutant string `json:"pollutant" bson:"pollutant"`
	Hour      int    `json:"hour" bson:"hour"`
}

// HourDocument is the decoded, validated form of one stored hour document
type HourDocument struct {
	ID      DocumentID
	History HourHistory
}

// NewHourDocument validates the parallel values/dates arrays of a stored document
// and builds its history. Any inconsistency is reported as a DataIntegrityError.
func NewHourDocument(id DocumentID, values []float64, dates []time.Time) (HourDocument, error) {
	if id.Hour < 0 || id.Hour >= HoursPerDay {
		return HourDocument{}, integrityError(id, "hour %d outside 0-23", id.Hour)
	}
	if len(values) != len(dates) {
		return HourDocument{}, integrityError(id, "%d values for %d dates", len(values), len(dates))
	}

	history := make(HourHistory, len(values))
	for i := range values {
		if i > 0 && dates[i].Before(dates[i-1]) {
			return HourDocument{}, integrityError(id, "dates not in chronological order at index %d", i)
		}
		history[i] = HourlyReading{Value: values[i], RecordedAt: dates[i]}
	}

	return HourDocument{ID: id, History: history}, nil
}
