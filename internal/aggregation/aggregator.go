package aggregation

import (
	"errors"
	"time"

	"dailyair/internal/logger"
	"dailyair/internal/models"
)

// GroupResult is the aggregation outcome for one day-type group
type GroupResult struct {
	Group     models.DayTypeGroup
	Series    Series
	Documents int
	// Missing is set when the group had no documents at all
	Missing *MissingGroupError
}

// Result is the aggregation outcome for both groups
type Result struct {
	WorkingDay   GroupResult
	Weekend      GroupResult
	MissingCount int
}

// Group returns the result of the given group
func (r Result) Group(g models.DayTypeGroup) GroupResult {
	if g == models.Weekend {
		return r.Weekend
	}
	return r.WorkingDay
}

// Warnings lists the non-fatal conditions met during aggregation
func (r Result) Warnings() []error {
	var out []error
	for _, g := range []GroupResult{r.WorkingDay, r.Weekend} {
		if g.Missing != nil {
			out = append(out, g.Missing)
		}
	}
	return out
}

// Aggregator builds hour-of-day series from stored hour documents
type Aggregator struct {
	opts Options
	log  *logger.Logger
}

// NewAggregator creates an aggregator with the given windowing options
func NewAggregator(opts Options) *Aggregator {
	return &Aggregator{
		opts: opts,
		log:  logger.Component("aggregation"),
	}
}

// AggregateGroup computes the 24-entry series of one group. Hours without a
// document, and hours whose window is empty, are left missing. Duplicate
// documents for the same hour are a DataIntegrityError.
func (a *Aggregator) AggregateGroup(group models.DayTypeGroup, docs []models.HourDocument, cutoff time.Time) (GroupResult, error) {
	res := GroupResult{Group: group, Documents: len(docs)}
	if len(docs) == 0 {
		res.Missing = &MissingGroupError{Group: group}
		return res, nil
	}

	var seen [models.HoursPerDay]bool
	for _, doc := range docs {
		hour := doc.ID.Hour
		if hour < 0 || hour >= models.HoursPerDay {
			return GroupResult{}, models.NewDataIntegrityError(doc.ID, "hour outside 0-23")
		}
		if seen[hour] {
			return GroupResult{}, models.NewDataIntegrityError(doc.ID, "duplicate document for hour in "+group.String())
		}
		seen[hour] = true

		mean, err := WindowMean(hour, doc.History, cutoff, a.opts)
		var empty *EmptyWindowError
		switch {
		case errors.As(err, &empty):
			a.log.Debug("hour left without data", logger.Fields{
				"group":   group.String(),
				"hour":    hour,
				"history": empty.Total,
			})
			continue
		case err != nil:
			return GroupResult{}, err
		}
		res.Series[hour] = HourlyAverage{Value: mean, Valid: true}
	}
	return res, nil
}

// Aggregate computes both group series. A group without documents is
// recorded as missing and counted; it never stops the other group.
func (a *Aggregator) Aggregate(workingDays, weekends []models.HourDocument, cutoff time.Time) (Result, error) {
	working, err := a.AggregateGroup(models.WorkingDay, workingDays, cutoff)
	if err != nil {
		return Result{}, err
	}
	weekend, err := a.AggregateGroup(models.Weekend, weekends, cutoff)
	if err != nil {
		return Result{}, err
	}
	return NewResult(working, weekend), nil
}

// NewResult combines the two group results and counts the missing groups
func NewResult(workingDay, weekend GroupResult) Result {
	res := Result{WorkingDay: workingDay, Weekend: weekend}
	for _, g := range []GroupResult{workingDay, weekend} {
		if g.Missing != nil {
			res.MissingCount++
		}
	}
	return res
}

// NoUsableData reports whether neither group has any data, in which case
// nothing should be rendered.
func NoUsableData(workingDayMissing, weekendMissing bool) bool {
	return workingDayMissing && weekendMissing
}

// NoUsableData reports whether both groups of the result are missing
func (r Result) NoUsableData() bool {
	return NoUsableData(r.WorkingDay.Missing != nil, r.Weekend.Missing != nil)
}
