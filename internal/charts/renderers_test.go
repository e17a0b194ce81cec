package charts

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec(t *testing.T) ChartSpec {
	t.Helper()
	spec, err := Compose(ComposeInput{
		Station:    "STRASBOURG Est",
		Pollutant:  no2(),
		WorkingDay: withPeak(fullSeries(14, 22, 35), 8, 61),
		Weekend:    withGaps(fullSeries(8, 9), 5, 6),
	})
	require.NoError(t, err)
	return spec
}

func TestBuildSnippet(t *testing.T) {
	snippet, err := BuildSnippet(testSpec(t))
	require.NoError(t, err)

	assert.Equal(t, "chart-strasbourg-est-no2", snippet.ID)
	assert.Contains(t, snippet.Div, `id="chart-strasbourg-est-no2"`)
	assert.Contains(t, snippet.Script, "echarts.init")
	assert.Contains(t, snippet.Script, "markArea")
	assert.Contains(t, snippet.HTML, echartsCDN)
}

func TestEchartsOptionSeries(t *testing.T) {
	opt := echartsOption(testSpec(t))

	raw, err := json.Marshal(opt)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"scatter"`)
	assert.Contains(t, string(raw), `"symbol":"circle"`)
	assert.Contains(t, string(raw), `"-"`)

	series := opt["series"].([]interface{})
	require.Len(t, series, 3)
	reference := series[2].(map[string]interface{})
	assert.Equal(t, ReferenceLabel, reference["name"])
	areas := reference["markArea"].(map[string]interface{})["data"].([]interface{})
	assert.Len(t, areas, 4)
}

func TestBuildSnippetRejectsInvalidSpec(t *testing.T) {
	_, err := BuildSnippet(ChartSpec{})
	assert.Error(t, err)
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPage(testSpec(t), &buf))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Working days")
	assert.Contains(t, html, "STRASBOURG Est")
	assert.Contains(t, html, `"showSymbol":false`)
	assert.Contains(t, html, `"stack":"risk-zones"`)
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(testSpec(t), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRenderPNGWithEmptyGroup(t *testing.T) {
	spec := testSpec(t)
	for h := range spec.Series[1].Present {
		spec.Series[1].Present[h] = false
	}
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(spec, &buf))
	assert.NotZero(t, buf.Len())
}

func TestRenderText(t *testing.T) {
	out, err := RenderText(testSpec(t), 72, 12)
	require.NoError(t, err)

	assert.Contains(t, out, "STRASBOURG Est")
	assert.Contains(t, out, "Working days (full)")
	assert.Contains(t, out, "Week-end (partial)")
	assert.Contains(t, out, ReferenceLabel)
	assert.True(t, strings.Contains(out, "extreme risk"))
}

func TestPaleColor(t *testing.T) {
	c := paleColor("#ff0000", 0.1)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(229), c.G)
	assert.Equal(t, uint8(255), c.A)
}
