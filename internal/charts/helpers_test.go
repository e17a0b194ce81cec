package charts

import (
	"dailyair/internal/aggregation"
	"dailyair/internal/pollutants"
)

func fullSeries(values ...float64) aggregation.Series {
	var s aggregation.Series
	for h := range s {
		v := 10.0
		if h < len(values) {
			v = values[h]
		}
		s[h] = aggregation.HourlyAverage{Value: v, Valid: true}
	}
	return s
}

func withGaps(s aggregation.Series, hours ...int) aggregation.Series {
	for _, h := range hours {
		s[h] = aggregation.HourlyAverage{}
	}
	return s
}

func withPeak(s aggregation.Series, hour int, value float64) aggregation.Series {
	s[hour] = aggregation.HourlyAverage{Value: value, Valid: true}
	return s
}

func no2() pollutants.Pollutant {
	p, _ := pollutants.Default().Lookup("NO2")
	return p
}
