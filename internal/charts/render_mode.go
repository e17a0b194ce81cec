package charts

import (
	"fmt"

	"dailyair/internal/aggregation"
)

// RenderMode classifies a series by data completeness
type RenderMode int

const (
	// Full means every hour of the series has data
	Full RenderMode = iota
	// Partial means at least one hour is missing
	Partial
)

func (m RenderMode) String() string {
	switch m {
	case Full:
		return "full"
	case Partial:
		return "partial"
	default:
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
}

// MarshalText encodes the mode name
func (m RenderMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name
func (m *RenderMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "full":
		*m = Full
	case "partial":
		*m = Partial
	default:
		return fmt.Errorf("unknown render mode %q", text)
	}
	return nil
}

// DrawStyle is how a series is drawn
type DrawStyle string

const (
	StyleTrend  DrawStyle = "trend"
	StylePoints DrawStyle = "points"
)

// Marker is the point shape of a series drawn as points
type Marker string

const (
	MarkerNone   Marker = ""
	MarkerCircle Marker = "circle"
	MarkerSquare Marker = "square"
)

// SeriesLayout is the drawing decision for one series
type SeriesLayout struct {
	Style  DrawStyle `json:"style"`
	Marker Marker    `json:"marker,omitempty"`
}

// Layout is the drawing decision for the working-day and weekend series
type Layout struct {
	WorkingDay SeriesLayout `json:"working_day"`
	Weekend    SeriesLayout `json:"weekend"`
}

var (
	trend       = SeriesLayout{Style: StyleTrend}
	circlePoint = SeriesLayout{Style: StylePoints, Marker: MarkerCircle}
	squarePoint = SeriesLayout{Style: StylePoints, Marker: MarkerSquare}
)

// ClassifySeries returns Full when every hour carries data, Partial otherwise
func ClassifySeries(s aggregation.Series) RenderMode {
	if s.Complete() {
		return Full
	}
	return Partial
}

// SelectLayout picks how both series are drawn:
//
//	working Full,    weekend Full    -> both trends
//	working Full,    weekend Partial -> working trend, weekend points
//	working Partial, weekend Full    -> weekend trend, working points
//	working Partial, weekend Partial -> both points, circles and squares
func SelectLayout(workingDay, weekend RenderMode) Layout {
	switch {
	case workingDay == Full && weekend == Full:
		return Layout{WorkingDay: trend, Weekend: trend}
	case workingDay == Full:
		return Layout{WorkingDay: trend, Weekend: circlePoint}
	case weekend == Full:
		return Layout{WorkingDay: circlePoint, Weekend: trend}
	default:
		return Layout{WorkingDay: circlePoint, Weekend: squarePoint}
	}
}
