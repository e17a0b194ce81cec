package charts

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// PNG dimensions of the static chart image
const (
	pngWidth  = 1100
	pngHeight = 650
)

// RenderPNG draws the chart spec as a static PNG image
func RenderPNG(spec ChartSpec, w io.Writer) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("invalid chart spec: %w", err)
	}

	hours := make([]float64, len(spec.HourLabels))
	ticks := make([]chart.Tick, 0, len(spec.HourLabels)/3+1)
	for h := range hours {
		hours[h] = float64(h)
		if h%3 == 0 {
			ticks = append(ticks, chart.Tick{Value: float64(h), Label: spec.HourLabels[h]})
		}
	}
	span := []float64{hours[0], hours[len(hours)-1]}

	graph := chart.Chart{
		Title: spec.Title,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  pngWidth,
		Height: pngHeight,
		XAxis: chart.XAxis{
			Name:      "Hour of day",
			NameStyle: chart.Style{FontSize: 12},
			Style:     chart.Style{FontSize: 9},
			Ticks:     ticks,
		},
		YAxis: chart.YAxis{
			Name:      spec.YAxis.Label,
			NameStyle: chart.Style{FontSize: 12},
			Style:     chart.Style{FontSize: 10},
			Range: &chart.ContinuousRange{
				Min: spec.YAxis.Min,
				Max: spec.YAxis.Max,
			},
		},
	}

	// each fill runs down to the axis, so bands are laid from the top zone down
	for i := len(spec.Zones) - 1; i >= 0; i-- {
		z := spec.Zones[i]
		fill := paleColor(z.Color, zoneAlpha)
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name: string(z.Level) + " risk",
			Style: chart.Style{
				StrokeColor: fill,
				StrokeWidth: 1,
				FillColor:   fill,
			},
			XValues: span,
			YValues: []float64{z.Upper, z.Upper},
		})
	}

	graph.Series = append(graph.Series, chart.ContinuousSeries{
		Name: spec.Reference.Label,
		Style: chart.Style{
			StrokeColor:     hexColor(spec.Reference.Color),
			StrokeWidth:     2,
			StrokeDashArray: []float64{6, 4},
		},
		XValues: span,
		YValues: []float64{spec.Reference.Value, spec.Reference.Value},
	})

	for _, s := range spec.Series {
		if series, ok := pngSeries(s, hours); ok {
			graph.Series = append(graph.Series, series)
		}
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart image: %w", err)
	}
	return nil
}

// pngSeries reports false for a series with no hour to draw
func pngSeries(s SeriesSpec, hours []float64) (chart.ContinuousSeries, bool) {
	color := hexColor(s.Color)
	if s.Style == StyleTrend {
		return chart.ContinuousSeries{
			Name: s.Label,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 3,
			},
			XValues: hours,
			YValues: s.Values,
		}, true
	}

	// points only: the hours without data are left out
	var xs, ys []float64
	for h, v := range s.Values {
		if s.Present[h] {
			xs = append(xs, hours[h])
			ys = append(ys, v)
		}
	}
	dot := 5.0
	if s.Marker == MarkerSquare {
		dot = 6
	}
	return chart.ContinuousSeries{
		Name: s.Label,
		Style: chart.Style{
			StrokeColor: drawing.ColorTransparent,
			DotColor:    color,
			DotWidth:    dot,
		},
		XValues: xs,
		YValues: ys,
	}, len(xs) > 0
}

func hexColor(hex string) drawing.Color {
	r, g, b := hexRGB(hex)
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

// paleColor blends a color onto white, giving an opaque tint that does not
// compound where fills overlap
func paleColor(hex string, alpha float64) drawing.Color {
	r, g, b := hexRGB(hex)
	blend := func(c uint8) uint8 {
		return uint8(255 - (255-float64(c))*alpha)
	}
	return drawing.Color{R: blend(r), G: blend(g), B: blend(b), A: 255}
}
