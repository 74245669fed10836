package symptoms

import (
	"fmt"
	"sort"
	"time"

	"fembalance/internal/domain/symptom"
	"fembalance/pkg/errors"
)

// assumedCycleDays is used to estimate a cycle day from the calendar
// date when the record does not carry one
const assumedCycleDays = 28

// trendEpsilon is the smallest daily-count slope treated as a real trend
const trendEpsilon = 0.01

// Analyzer derives pattern insights from symptom logs. A lower-rigor
// analytics path than the predictors: pure aggregation, no model
type Analyzer struct{}

// New creates a symptom analyzer
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze summarizes a symptom log into a patterns report. Unknown
// symptom types are encoded as "other" here; rejecting them is the
// validator's job on the service path
func (a *Analyzer) Analyze(records []symptom.Record) (*symptom.PatternsReport, error) {
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrPredictionFailed, "no symptom records to analyze")
	}

	minDate, maxDate := dateRange(records)

	frequency := make(map[string]int)
	severitySum := make(map[string]float64)
	byPhase := make(map[string]int)
	dailyCounts := make(map[string]int)

	for _, rec := range records {
		name := rec.Type.Canonical().String()
		frequency[name]++
		severitySum[name] += float64(rec.Severity)

		day := estimateCycleDay(rec, minDate)
		byPhase[string(symptom.PhaseForDay(day))]++

		dailyCounts[rec.Date.Format("2006-01-02")]++
	}

	avgSeverity := make(map[string]float64, len(frequency))
	for name, sum := range severitySum {
		avgSeverity[name] = sum / float64(frequency[name])
	}

	mostCommon := mostCommonType(frequency)
	spanDays := int(maxDate.Sub(minDate).Hours()/24) + 1
	trend := countTrend(dailyCounts, minDate, spanDays)

	report := &symptom.PatternsReport{
		TotalSymptoms: len(records),
		UniqueTypes:   len(frequency),
		DateRange: symptom.DateRange{
			Start: minDate,
			End:   maxDate,
			Days:  spanDays - 1,
		},
		Frequency:       frequency,
		AverageSeverity: avgSeverity,
		MostCommonType:  mostCommon,
		ByPhase:         byPhase,
		Trend:           trend,
	}
	report.Insights = insights(report)

	return report, nil
}

func dateRange(records []symptom.Record) (time.Time, time.Time) {
	min, max := records[0].Date, records[0].Date
	for _, rec := range records[1:] {
		if rec.Date.Before(min) {
			min = rec.Date
		}
		if rec.Date.After(max) {
			max = rec.Date
		}
	}
	return min, max
}

// estimateCycleDay uses the reported cycle day when present, otherwise
// assumes 28-day cycles starting at the earliest logged date
func estimateCycleDay(rec symptom.Record, minDate time.Time) int {
	if rec.CycleDay != nil {
		return *rec.CycleDay
	}
	days := int(rec.Date.Sub(minDate).Hours() / 24)
	return days%assumedCycleDays + 1
}

// mostCommonType picks the highest-frequency type, breaking ties
// lexicographically so the report is deterministic
func mostCommonType(frequency map[string]int) string {
	names := make([]string, 0, len(frequency))
	for name := range frequency {
		names = append(names, name)
	}
	sort.Strings(names)

	best := ""
	bestCount := 0
	for _, name := range names {
		if frequency[name] > bestCount {
			best = name
			bestCount = frequency[name]
		}
	}
	return best
}

// countTrend fits a least-squares line to the daily symptom counts
// (absent days count as zero) and returns the sign of its slope.
// Spans shorter than 7 days are reported stable; there is too little
// signal for a trend
func countTrend(dailyCounts map[string]int, start time.Time, spanDays int) symptom.Trend {
	if spanDays < 7 {
		return symptom.TrendStable
	}

	n := float64(spanDays)
	var sumX, sumY, sumXY, sumXX float64
	for i := 0; i < spanDays; i++ {
		x := float64(i)
		y := float64(dailyCounts[start.AddDate(0, 0, i).Format("2006-01-02")])
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return symptom.TrendStable
	}
	slope := (n*sumXY - sumX*sumY) / denom

	switch {
	case slope > trendEpsilon:
		return symptom.TrendIncreasing
	case slope < -trendEpsilon:
		return symptom.TrendDecreasing
	default:
		return symptom.TrendStable
	}
}

func insights(r *symptom.PatternsReport) []string {
	var out []string

	if r.MostCommonType != "" {
		out = append(out, fmt.Sprintf("Your most frequent symptom is %s (%d occurrences)",
			r.MostCommonType, r.Frequency[r.MostCommonType]))
	}

	worst := ""
	worstSeverity := 0.0
	for name, avg := range r.AverageSeverity {
		if avg > worstSeverity || (avg == worstSeverity && name < worst) {
			worst = name
			worstSeverity = avg
		}
	}
	if worstSeverity >= 7 {
		out = append(out, fmt.Sprintf("%s is notably severe (average %.1f/10), consider discussing it with a healthcare provider",
			worst, worstSeverity))
	}

	switch r.Trend {
	case symptom.TrendIncreasing:
		out = append(out, "Your symptoms have been increasing over the logged period")
	case symptom.TrendDecreasing:
		out = append(out, "Your symptoms have been decreasing over the logged period")
	}

	if phase, count := peakPhase(r.ByPhase); count > 0 {
		out = append(out, fmt.Sprintf("Most symptoms cluster in the %s phase", phase))
	}

	return out
}

func peakPhase(byPhase map[string]int) (string, int) {
	names := make([]string, 0, len(byPhase))
	for name := range byPhase {
		names = append(names, name)
	}
	sort.Strings(names)

	best, bestCount := "", 0
	for _, name := range names {
		if byPhase[name] > bestCount {
			best, bestCount = name, byPhase[name]
		}
	}
	return best, bestCount
}
