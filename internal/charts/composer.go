package charts

import (
	"errors"
	"fmt"
	"strings"

	"dailyair/internal/aggregation"
	"dailyair/internal/models"
	"dailyair/internal/pollutants"
)

// ReferenceLabel is the legend entry of the reference concentration line
const ReferenceLabel = "Recommended daily average (WHO)"

// SeriesSpec is one day-type series as it must be drawn
type SeriesSpec struct {
	Group   models.DayTypeGroup `json:"group"`
	Label   string              `json:"label"`
	Color   string              `json:"color"`
	Mode    RenderMode          `json:"mode"`
	Style   DrawStyle           `json:"style"`
	Marker  Marker              `json:"marker,omitempty"`
	Values  []float64           `json:"values"`
	Present []bool              `json:"present"`
}

// ReferenceLine is the horizontal line drawn at the reference concentration
type ReferenceLine struct {
	Value  float64 `json:"value"`
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Dashed bool    `json:"dashed"`
}

// Axis is the value axis of the chart
type Axis struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Label string  `json:"label"`
}

// ChartSpec is the complete, renderer-independent description of the chart
type ChartSpec struct {
	Title      string               `json:"title"`
	Station    string               `json:"station"`
	Pollutant  pollutants.Pollutant `json:"pollutant"`
	HourLabels []string             `json:"hour_labels"`
	Series     []SeriesSpec         `json:"series"`
	Reference  ReferenceLine        `json:"reference"`
	Thresholds [3]float64           `json:"thresholds"`
	Zones      []Zone               `json:"zones"`
	YAxis      Axis                 `json:"y_axis"`
	Legend     []string             `json:"legend"`
}

// ComposeInput gathers everything the composer needs
type ComposeInput struct {
	Station    string
	Pollutant  pollutants.Pollutant
	WorkingDay aggregation.Series
	Weekend    aggregation.Series
}

// HourLabels returns the 24 categorical hour labels, 0h00 to 23h00
func HourLabels() []string {
	labels := make([]string, models.HoursPerDay)
	for h := range labels {
		labels[h] = fmt.Sprintf("%dh00", h)
	}
	return labels
}

// Title builds the chart title from the pollutant name and the station
func Title(p pollutants.Pollutant, station string) string {
	return fmt.Sprintf("Average daily %s pollution recorded at: %s", p.Name, station)
}

// Compose assembles the chart specification of the two series
func Compose(in ComposeInput) (ChartSpec, error) {
	if strings.TrimSpace(in.Station) == "" {
		return ChartSpec{}, errors.New("station is required")
	}

	zones, err := ComputeZones(in.Pollutant.Reference, in.WorkingDay)
	if err != nil {
		return ChartSpec{}, fmt.Errorf("pollutant %s: %w", in.Pollutant.Code, err)
	}

	workingMode, weekendMode := ClassifySeries(in.WorkingDay), ClassifySeries(in.Weekend)
	layout := SelectLayout(workingMode, weekendMode)

	series := []SeriesSpec{
		seriesSpec(models.WorkingDay, ColorWorkingDay, workingMode, layout.WorkingDay, in.WorkingDay),
		seriesSpec(models.Weekend, ColorWeekend, weekendMode, layout.Weekend, in.Weekend),
	}

	spec := ChartSpec{
		Title:      Title(in.Pollutant, in.Station),
		Station:    in.Station,
		Pollutant:  in.Pollutant,
		HourLabels: HourLabels(),
		Series:     series,
		Reference: ReferenceLine{
			Value:  in.Pollutant.Reference,
			Label:  ReferenceLabel,
			Color:  ColorReference,
			Dashed: true,
		},
		Thresholds: zones.Thresholds,
		Zones:      zones.Zones,
		YAxis: Axis{
			Min:   0,
			Max:   zones.YUpperBound,
			Label: fmt.Sprintf("Air concentration of %s (%s)", in.Pollutant.Code, in.Pollutant.Unit),
		},
		Legend: []string{series[0].Label, series[1].Label, ReferenceLabel},
	}
	return spec, nil
}

func seriesSpec(group models.DayTypeGroup, color string, mode RenderMode, layout SeriesLayout, s aggregation.Series) SeriesSpec {
	return SeriesSpec{
		Group:   group,
		Label:   group.Label(),
		Color:   color,
		Mode:    mode,
		Style:   layout.Style,
		Marker:  layout.Marker,
		Values:  s.Values(),
		Present: s.Present(),
	}
}

// Layout returns the drawing decision recorded in the spec
func (c ChartSpec) Layout() Layout {
	var l Layout
	for _, s := range c.Series {
		sl := SeriesLayout{Style: s.Style, Marker: s.Marker}
		if s.Group == models.Weekend {
			l.Weekend = sl
		} else {
			l.WorkingDay = sl
		}
	}
	return l
}

// Validate checks the spec is internally consistent: 24 hours per series,
// zones contiguous from 0 to the axis bound, and the working-day series
// within the axis.
func (c ChartSpec) Validate() error {
	if len(c.HourLabels) != models.HoursPerDay {
		return fmt.Errorf("expected %d hour labels, got %d", models.HoursPerDay, len(c.HourLabels))
	}
	if len(c.Series) != 2 {
		return fmt.Errorf("expected 2 series, got %d", len(c.Series))
	}
	for _, s := range c.Series {
		if len(s.Values) != models.HoursPerDay || len(s.Present) != models.HoursPerDay {
			return fmt.Errorf("series %s does not cover %d hours", s.Label, models.HoursPerDay)
		}
	}
	if len(c.Zones) == 0 || c.Zones[0].Lower != c.YAxis.Min {
		return errors.New("zones must start at the axis minimum")
	}
	for i := range c.Zones {
		if i > 0 && c.Zones[i].Lower != c.Zones[i-1].Upper {
			return fmt.Errorf("zone %s does not follow zone %s", c.Zones[i].Level, c.Zones[i-1].Level)
		}
		if c.Zones[i].Upper <= c.Zones[i].Lower {
			return fmt.Errorf("zone %s is empty", c.Zones[i].Level)
		}
	}
	if last := c.Zones[len(c.Zones)-1]; last.Upper != c.YAxis.Max {
		return fmt.Errorf("zones end at %v, axis at %v", last.Upper, c.YAxis.Max)
	}
	for _, s := range c.Series {
		if s.Group != models.WorkingDay {
			continue
		}
		for h, v := range s.Values {
			if v > c.YAxis.Max {
				return fmt.Errorf("working-day value %v at %s above axis bound %v", v, c.HourLabels[h], c.YAxis.Max)
			}
		}
	}
	return nil
}
