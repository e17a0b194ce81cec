package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dailyair/internal/aggregation"
)

func TestClassifySeries(t *testing.T) {
	assert.Equal(t, Full, ClassifySeries(fullSeries()))
	assert.Equal(t, Partial, ClassifySeries(withGaps(fullSeries(), 7)))
	assert.Equal(t, Partial, ClassifySeries(aggregation.Series{}))
}

func TestSelectLayout(t *testing.T) {
	tests := []struct {
		name       string
		workingDay RenderMode
		weekend    RenderMode
		expected   Layout
	}{
		{
			name:       "both full",
			workingDay: Full,
			weekend:    Full,
			expected:   Layout{WorkingDay: SeriesLayout{Style: StyleTrend}, Weekend: SeriesLayout{Style: StyleTrend}},
		},
		{
			name:       "weekend partial",
			workingDay: Full,
			weekend:    Partial,
			expected:   Layout{WorkingDay: SeriesLayout{Style: StyleTrend}, Weekend: SeriesLayout{Style: StylePoints, Marker: MarkerCircle}},
		},
		{
			name:       "working days partial",
			workingDay: Partial,
			weekend:    Full,
			expected:   Layout{WorkingDay: SeriesLayout{Style: StylePoints, Marker: MarkerCircle}, Weekend: SeriesLayout{Style: StyleTrend}},
		},
		{
			name:       "both partial",
			workingDay: Partial,
			weekend:    Partial,
			expected:   Layout{WorkingDay: SeriesLayout{Style: StylePoints, Marker: MarkerCircle}, Weekend: SeriesLayout{Style: StylePoints, Marker: MarkerSquare}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SelectLayout(tt.workingDay, tt.weekend))
		})
	}
}

func TestRenderModeText(t *testing.T) {
	text, err := Partial.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "partial", string(text))
	assert.Equal(t, "full", Full.String())

	var m RenderMode
	assert.NoError(t, m.UnmarshalText([]byte("partial")))
	assert.Equal(t, Partial, m)
	assert.Error(t, m.UnmarshalText([]byte("half")))
}
