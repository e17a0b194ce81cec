package charts

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	textTitleStyle  = lipgloss.NewStyle().Bold(true)
	textSubtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// RenderText draws the chart spec as a terminal plot with a legend and the
// risk zone boundaries. Hours without data are left blank.
func RenderText(spec ChartSpec, width, height int) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", fmt.Errorf("invalid chart spec: %w", err)
	}
	if width < 24 {
		width = 24
	}
	if height < 5 {
		height = 5
	}

	data := make([][]float64, 0, len(spec.Series)+1)
	colors := make([]asciigraph.AnsiColor, 0, len(spec.Series)+1)
	for _, s := range spec.Series {
		data = append(data, textValues(s))
		colors = append(colors, textColor(s.Color))
	}
	reference := make([]float64, len(spec.HourLabels))
	for i := range reference {
		reference[i] = spec.Reference.Value
	}
	data = append(data, reference)
	colors = append(colors, asciigraph.Violet)

	plot := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(spec.YAxis.Min),
		asciigraph.UpperBound(spec.YAxis.Max),
		asciigraph.Caption(fmt.Sprintf("%s, %s to %s", spec.YAxis.Label, spec.HourLabels[0], spec.HourLabels[len(spec.HourLabels)-1])),
		asciigraph.SeriesColors(colors...),
	)

	var b strings.Builder
	b.WriteString(textTitleStyle.Render(spec.Title))
	b.WriteString("\n\n")
	b.WriteString(plot)
	b.WriteString("\n\n")
	for _, s := range spec.Series {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(textGlyph(s))
		fmt.Fprintf(&b, "%s %s (%s)\n", swatch, s.Label, s.Mode)
	}
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(spec.Reference.Color)).Render("--")
	fmt.Fprintf(&b, "%s %s: %.2f\n", swatch, spec.Reference.Label, spec.Reference.Value)
	for _, z := range spec.Zones {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(z.Color)).Render("##")
		fmt.Fprintf(&b, "%s %s risk %s\n", swatch, z.Level, textSubtleStyle.Render(fmt.Sprintf("[%.2f, %.2f)", z.Lower, z.Upper)))
	}
	return b.String(), nil
}

func textValues(s SeriesSpec) []float64 {
	out := make([]float64, len(s.Values))
	for h, v := range s.Values {
		if s.Present[h] {
			out[h] = v
		} else {
			out[h] = math.NaN()
		}
	}
	return out
}

func textGlyph(s SeriesSpec) string {
	switch {
	case s.Style == StyleTrend:
		return "──"
	case s.Marker == MarkerSquare:
		return "■ "
	default:
		return "● "
	}
}

func textColor(hex string) asciigraph.AnsiColor {
	switch hex {
	case ColorWorkingDay:
		return asciigraph.DodgerBlue
	case ColorWeekend:
		return asciigraph.Cyan
	case ColorReference:
		return asciigraph.Violet
	default:
		return asciigraph.Default
	}
}
