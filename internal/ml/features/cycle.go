package features

import (
	"math"
	"sort"
	"time"

	"fembalance/internal/domain/cycle"
	"fembalance/pkg/errors"
)

// RegularityScaleDays is the cycle-length standard deviation at which
// the regularity score reaches its floor of 0
const RegularityScaleDays = 7.0

// ResolveCycleRecords sorts a cycle history ascending by start date and
// fills the documented defaults: a missing cycle length is the day
// difference from the previous record's start date (28 for the first
// record), a missing period length is 5. The input slice is not mutated
func ResolveCycleRecords(records []cycle.Record) []cycle.ResolvedRecord {
	sorted := make([]cycle.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	resolved := make([]cycle.ResolvedRecord, len(sorted))
	for i, rec := range sorted {
		length := cycle.DefaultCycleLength
		if rec.CycleLength != nil {
			length = *rec.CycleLength
		} else if i > 0 {
			length = daysBetween(sorted[i-1].StartDate, rec.StartDate)
		}

		period := cycle.DefaultPeriodLength
		if rec.PeriodLength != nil {
			period = *rec.PeriodLength
		}

		resolved[i] = cycle.ResolvedRecord{
			StartDate:    rec.StartDate,
			CycleLength:  length,
			PeriodLength: period,
		}
	}

	return resolved
}

// EngineerCycle derives the 9-dimensional cycle feature set from a
// cycle history. Histories shorter than 2 records yield a fixed default
// feature set; statistics over a single observation are undefined
func EngineerCycle(records []cycle.Record, now time.Time) (*cycle.Features, error) {
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrPredictionFailed, "no cycle records to engineer")
	}

	resolved := ResolveCycleRecords(records)

	if len(resolved) < 2 {
		return &cycle.Features{
			AvgCycleLength:  28.0,
			CycleRegularity: 0.5,
			AvgPeriodLength: 5.0,
			TrendSlope:      0.0,
			RecentAvg:       28.0,
			Season:          float64(Season(now)),
			CyclesCount:     float64(len(resolved)),
			DaysSinceLast:   0,
			CycleStd:        0,
		}, nil
	}

	lengths := make([]float64, len(resolved))
	periods := make([]float64, len(resolved))
	for i, rec := range resolved {
		lengths[i] = float64(rec.CycleLength)
		periods[i] = float64(rec.PeriodLength)
	}

	avgCycle := mean(lengths)
	avgPeriod := mean(periods)
	std := sampleStd(lengths, avgCycle)

	// Regularity degrades linearly with spread, floored at 0
	regularity := math.Max(0, 1-std/RegularityScaleDays)

	recentAvg := avgCycle
	trendSlope := 0.0
	if len(lengths) >= 4 {
		recentAvg = mean(lengths[len(lengths)-3:])
		olderAvg := mean(lengths[:len(lengths)-3])
		trendSlope = (recentAvg - olderAvg) / float64(len(lengths))
	}

	last := resolved[len(resolved)-1].StartDate

	return &cycle.Features{
		AvgCycleLength:  avgCycle,
		CycleRegularity: regularity,
		AvgPeriodLength: avgPeriod,
		TrendSlope:      trendSlope,
		RecentAvg:       recentAvg,
		Season:          float64(Season(last)),
		CyclesCount:     float64(len(resolved)),
		DaysSinceLast:   float64(daysBetween(last, now)),
		CycleStd:        std,
	}, nil
}

// Season maps a date to its calendar season:
// Dec-Feb=0, Mar-May=1, Jun-Aug=2, Sep-Nov=3
func Season(t time.Time) int {
	switch t.Month() {
	case time.December, time.January, time.February:
		return 0
	case time.March, time.April, time.May:
		return 1
	case time.June, time.July, time.August:
		return 2
	default:
		return 3
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd is the sample (n-1) standard deviation
func sampleStd(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
