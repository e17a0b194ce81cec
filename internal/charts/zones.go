package charts

import (
	"fmt"

	"dailyair/internal/aggregation"
)

// RiskLevel names a health-risk band of the value axis
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskExtreme  RiskLevel = "extreme"
)

// Zone is one band [Lower, Upper) of the value axis
type Zone struct {
	Level RiskLevel `json:"level"`
	Lower float64   `json:"lower"`
	Upper float64   `json:"upper"`
	Color string    `json:"color"`
}

// ZoneBoundaries partitions the value axis from 0 to YUpperBound
type ZoneBoundaries struct {
	Reference   float64    `json:"reference"`
	Thresholds  [3]float64 `json:"thresholds"`
	Zones       []Zone     `json:"zones"`
	YUpperBound float64    `json:"y_upper_bound"`
	Extended    bool       `json:"extended"`
}

// ComputeZones derives the risk bands from a reference concentration R:
// low [0, 2R/3), moderate [2R/3, 4R/3), high [4R/3, 2R). The axis ends at 2R
// unless the working-day peak is higher, in which case an extreme band
// [2R, peak) is added. Only the working-day series is examined.
func ComputeZones(reference float64, workingDay aggregation.Series) (ZoneBoundaries, error) {
	if reference <= 0 {
		return ZoneBoundaries{}, fmt.Errorf("reference concentration must be positive, got %v", reference)
	}

	t := [3]float64{
		2 * reference / 3,
		4 * reference / 3,
		2 * reference,
	}
	zb := ZoneBoundaries{
		Reference:   reference,
		Thresholds:  t,
		YUpperBound: t[2],
		Zones: []Zone{
			{Level: RiskLow, Lower: 0, Upper: t[0], Color: ColorLowRisk},
			{Level: RiskModerate, Lower: t[0], Upper: t[1], Color: ColorModerateRisk},
			{Level: RiskHigh, Lower: t[1], Upper: t[2], Color: ColorHighRisk},
		},
	}

	if peak := workingDay.Max(); peak > t[2] {
		zb.YUpperBound = peak
		zb.Extended = true
		zb.Zones = append(zb.Zones, Zone{Level: RiskExtreme, Lower: t[2], Upper: peak, Color: ColorExtremeRisk})
	}
	return zb, nil
}
