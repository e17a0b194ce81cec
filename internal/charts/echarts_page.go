package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// zoneStack groups the zone fill series so each band sits on the previous one
const zoneStack = "risk-zones"

// RenderPage writes a standalone go-echarts HTML page for the chart spec
func RenderPage(spec ChartSpec, w io.Writer) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("invalid chart spec: %w", err)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: spec.Title,
			Theme:     types.ThemeWesteros,
			Width:     "1100px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Average daily %s pollution", spec.Pollutant.Name),
			Subtitle: "recorded at: " + spec.Station,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Data: spec.Legend, Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hour"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: spec.YAxis.Label,
			Min:  spec.YAxis.Min,
			Max:  spec.YAxis.Max,
		}),
	)
	line.SetXAxis(spec.HourLabels)

	// zone fills first so the data series are drawn on top
	for _, z := range spec.Zones {
		band := make([]opts.LineData, len(spec.HourLabels))
		for i := range band {
			band[i] = opts.LineData{Value: z.Upper - z.Lower}
		}
		line.AddSeries(string(z.Level)+" risk", band,
			charts.WithLineChartOpts(opts.LineChart{Stack: zoneStack, ShowSymbol: opts.Bool(false)}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: rgba(z.Color, zoneAlpha)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: rgba(z.Color, 0), Type: "solid"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: rgba(z.Color, zoneAlpha)}),
		)
	}

	reference := make([]opts.LineData, len(spec.HourLabels))
	for i := range reference {
		reference[i] = opts.LineData{Value: spec.Reference.Value}
	}
	line.AddSeries(spec.Reference.Label, reference,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: spec.Reference.Color, Type: "dashed"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: spec.Reference.Color}),
	)

	var scatter *charts.Scatter
	for _, s := range spec.Series {
		if s.Style == StyleTrend {
			data := make([]opts.LineData, len(s.Values))
			for i, v := range s.Values {
				data[i] = opts.LineData{Value: v}
			}
			line.AddSeries(s.Label, data,
				charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color, Type: "solid"}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			)
			continue
		}

		if scatter == nil {
			scatter = charts.NewScatter()
			scatter.SetXAxis(spec.HourLabels)
		}
		points := make([]opts.ScatterData, len(s.Values))
		for i, v := range s.Values {
			var value interface{} = v
			if !s.Present[i] {
				value = "-"
			}
			points[i] = opts.ScatterData{Value: value, Symbol: echartsSymbol(s.Marker), SymbolSize: 10}
		}
		scatter.AddSeries(s.Label, points, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
	}
	if scatter != nil {
		line.Overlap(scatter)
	}

	return line.Render(w)
}
