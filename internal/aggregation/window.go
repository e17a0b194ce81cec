package aggregation

import (
	"time"

	"dailyair/internal/models"
)

// Options tunes how histories are windowed
type Options struct {
	// IncludeOldest disables the historical exclusion of the oldest reading
	// when the whole history lies inside the window. Off by default so
	// results match existing dashboards.
	IncludeOldest bool
}

// WindowMean averages the readings of one hour bucket recorded on or after
// the cutoff date.
//
// The history is walked newest first, counting readings until the first one
// recorded before the cutoff. When every reading is inside the window the
// count is reduced by one, so the oldest reading never contributes unless
// opts.IncludeOldest is set. If nothing is left an *EmptyWindowError is
// returned.
func WindowMean(hour int, history models.HourHistory, cutoff time.Time, opts Options) (float64, error) {
	start := models.CivilDate(cutoff)
	newest := history.Newest()

	j := 0
	for j < len(newest) && !models.CivilDate(newest[j].RecordedAt).Before(start) {
		j++
	}
	if j == len(newest) && !opts.IncludeOldest {
		j--
	}
	if j <= 0 {
		return 0, &EmptyWindowError{Hour: hour, Total: len(history)}
	}

	var sum float64
	for _, r := range newest[:j] {
		sum += r.Value
	}
	return sum / float64(j), nil
}
