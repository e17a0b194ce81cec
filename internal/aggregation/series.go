package aggregation

import (
	"dailyair/internal/models"
)

// HourlyAverage is the value of one hour-of-day bucket. Valid is false when
// the bucket has no usable readings; Value is then 0.
type HourlyAverage struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Series holds the 24 hour-of-day averages of one day-type group
type Series [models.HoursPerDay]HourlyAverage

// Values returns the numeric view of the series, with 0 for missing buckets
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Value
	}
	return out
}

// Present returns which buckets carry data
func (s Series) Present() []bool {
	out := make([]bool, len(s))
	for i, b := range s {
		out[i] = b.Valid
	}
	return out
}

// Complete reports whether every hour has data
func (s Series) Complete() bool {
	for _, b := range s {
		if !b.Valid {
			return false
		}
	}
	return true
}

// Max returns the highest valid average, or 0 if none
func (s Series) Max() float64 {
	var peak float64
	for _, b := range s {
		if b.Valid && b.Value > peak {
			peak = b.Value
		}
	}
	return peak
}
