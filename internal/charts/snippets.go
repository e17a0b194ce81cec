package charts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// echartsCDN is the ECharts build loaded by embeddable snippets
const echartsCDN = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// ChartSnippet represents an embeddable ECharts chart fragment.
// Div contains a single root <div id="..." style="..."></div>,
// Script the <script>...</script> block that initializes the chart in that div,
// HTML the complete snippet with div and script combined for template substitution.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

// BuildSnippet renders the chart spec as an ECharts option embedded in an HTML fragment
func BuildSnippet(spec ChartSpec) (ChartSnippet, error) {
	if err := spec.Validate(); err != nil {
		return ChartSnippet{}, fmt.Errorf("invalid chart spec: %w", err)
	}

	id := "chart-" + slug(spec.Station+"-"+spec.Pollutant.Code)

	optJSON, err := json.Marshal(echartsOption(spec))
	if err != nil {
		return ChartSnippet{}, err
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:560px;\"></div>", id)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	completeHTML := fmt.Sprintf(`<script src="%s"></script>
<div class="chart-container">
	<h3>%s</h3>
	%s
</div>
%s`, echartsCDN, spec.Title, div, script)

	return ChartSnippet{ID: id, Title: spec.Title, Div: div, Script: script, HTML: completeHTML}, nil
}

// echartsOption builds the raw ECharts option: one series per day type, a
// dashed reference line carrying the risk zones as mark areas.
func echartsOption(spec ChartSpec) map[string]interface{} {
	series := make([]interface{}, 0, len(spec.Series)+1)
	for _, s := range spec.Series {
		series = append(series, echartsSeries(s))
	}

	reference := make([]float64, len(spec.HourLabels))
	for i := range reference {
		reference[i] = spec.Reference.Value
	}
	zoneAreas := make([]interface{}, 0, len(spec.Zones))
	for _, z := range spec.Zones {
		zoneAreas = append(zoneAreas, []interface{}{
			map[string]interface{}{
				"name":      string(z.Level),
				"yAxis":     z.Lower,
				"itemStyle": map[string]interface{}{"color": rgba(z.Color, zoneAlpha)},
			},
			map[string]interface{}{"yAxis": z.Upper},
		})
	}
	series = append(series, map[string]interface{}{
		"name":       spec.Reference.Label,
		"type":       "line",
		"data":       reference,
		"showSymbol": false,
		"lineStyle":  map[string]interface{}{"color": spec.Reference.Color, "type": "dashed", "width": 1.7},
		"itemStyle":  map[string]interface{}{"color": spec.Reference.Color},
		"markArea": map[string]interface{}{
			"silent": true,
			"label":  map[string]interface{}{"show": false},
			"data":   zoneAreas,
		},
	})

	return map[string]interface{}{
		"title": map[string]interface{}{
			"text": spec.Title,
			"left": "center",
		},
		"tooltip": map[string]interface{}{"trigger": "axis"},
		"legend": map[string]interface{}{
			"data":  spec.Legend,
			"right": 10,
			"top":   30,
		},
		"grid": map[string]interface{}{"left": "8%", "right": "4%", "bottom": "8%", "containLabel": true},
		"xAxis": map[string]interface{}{
			"type": "category",
			"data": spec.HourLabels,
		},
		"yAxis": map[string]interface{}{
			"type": "value",
			"name": spec.YAxis.Label,
			"min":  spec.YAxis.Min,
			"max":  spec.YAxis.Max,
		},
		"series": series,
	}
}

func echartsSeries(s SeriesSpec) map[string]interface{} {
	data := make([]interface{}, len(s.Values))
	for i, v := range s.Values {
		if s.Style == StylePoints && !s.Present[i] {
			data[i] = "-"
			continue
		}
		data[i] = v
	}

	out := map[string]interface{}{
		"name":      s.Label,
		"data":      data,
		"itemStyle": map[string]interface{}{"color": s.Color},
	}
	if s.Style == StyleTrend {
		out["type"] = "line"
		out["showSymbol"] = false
		out["lineStyle"] = map[string]interface{}{"color": s.Color, "width": 3}
	} else {
		out["type"] = "scatter"
		out["symbol"] = echartsSymbol(s.Marker)
		out["symbolSize"] = 10
	}
	return out
}

func echartsSymbol(m Marker) string {
	if m == MarkerSquare {
		return "rect"
	}
	return "circle"
}

// rgba converts a #rrggbb color to a CSS rgba() string
func rgba(hex string, alpha float64) string {
	r, g, b := hexRGB(hex)
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", r, g, b, alpha)
}

func hexRGB(hex string) (uint8, uint8, uint8) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.TrimPrefix(hex, "#"), "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return r, g, b
}

// slug lowercases s and replaces anything but letters and digits with dashes
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
