package inference

import (
	"math"

	"fembalance/internal/domain/cycle"
	"fembalance/internal/domain/pcos"
	"fembalance/internal/ml/features"
)

// Rule-based guidance attached to prediction responses. Templates are
// general wellness text, not medical advice; wording is stable across
// model versions.

var pcosRecommendations = map[pcos.RiskLevel][]string{
	pcos.RiskLow: {
		"Maintain your current healthy lifestyle",
		"Continue regular exercise and balanced nutrition",
		"Monitor your cycle patterns regularly",
	},
	pcos.RiskModerate: {
		"Consider consulting with a healthcare provider",
		"Focus on stress management and regular exercise",
		"Monitor symptoms and cycle irregularities",
	},
	pcos.RiskHigh: {
		"Consult with a healthcare provider for evaluation",
		"Implement lifestyle changes including diet and exercise",
		"Consider tracking symptoms more closely",
	},
	pcos.RiskVeryHigh: {
		"Seek immediate consultation with a healthcare provider",
		"Implement comprehensive lifestyle modifications",
		"Consider medical evaluation and testing",
	},
}

var regularCycleRecommendations = []string{
	"Continue current healthy habits",
	"Use predictions for family planning if desired",
	"Monitor for any changes in patterns",
}

var irregularCycleRecommendations = []string{
	"Track your cycle more consistently",
	"Consider lifestyle factors affecting regularity",
	"Consult healthcare provider if irregularity persists",
}

// recommendForRisk returns guidance for a risk level. Unknown levels
// fall back to the moderate tier
func recommendForRisk(level pcos.RiskLevel) []string {
	recs, ok := pcosRecommendations[level]
	if !ok {
		recs = pcosRecommendations[pcos.RiskModerate]
	}
	out := make([]string, len(recs))
	copy(out, recs)
	return out
}

// recommendForCycle picks the regular or irregular template based on
// the spread of recent cycle lengths
func recommendForCycle(records []cycle.Record) []string {
	_, std := recentLengthStats(records)

	src := regularCycleRecommendations
	if std > irregularStdDays {
		src = irregularCycleRecommendations
	}

	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Spread thresholds over recent cycle lengths, in days
const (
	veryRegularStdDays = 2.0
	irregularStdDays   = 5.0
)

// cycleInsights narrates regularity and length trend from the last
// cycles. Histories shorter than three cycles yield no insights
func cycleInsights(records []cycle.Record) []string {
	var insights []string

	lengths := recentLengths(records)
	if len(lengths) < 3 {
		return insights
	}

	_, std := lengthStats(lengths)
	switch {
	case std <= veryRegularStdDays:
		insights = append(insights, "Your cycles are very regular")
	case std <= irregularStdDays:
		insights = append(insights, "Your cycles show moderate regularity")
	default:
		insights = append(insights, "Your cycles show some irregularity")
	}

	if len(lengths) >= 4 {
		recent := lengths[len(lengths)-3:]
		older := lengths[:len(lengths)-3]

		recentAvg, _ := lengthStats(recent)
		olderAvg, _ := lengthStats(older)

		if recentAvg > olderAvg+1 {
			insights = append(insights, "Your recent cycles have been getting longer")
		} else if recentAvg < olderAvg-1 {
			insights = append(insights, "Your recent cycles have been getting shorter")
		}
	}

	return insights
}

// recentLengths resolves up to the last six cycle lengths in
// chronological order
func recentLengths(records []cycle.Record) []float64 {
	resolved := features.ResolveCycleRecords(records)
	if len(resolved) > 6 {
		resolved = resolved[len(resolved)-6:]
	}

	lengths := make([]float64, len(resolved))
	for i, r := range resolved {
		lengths[i] = float64(r.CycleLength)
	}
	return lengths
}

func recentLengthStats(records []cycle.Record) (mean, std float64) {
	return lengthStats(recentLengths(records))
}

// lengthStats returns the mean and population standard deviation
func lengthStats(lengths []float64) (mean, std float64) {
	if len(lengths) == 0 {
		return 0, 0
	}

	for _, l := range lengths {
		mean += l
	}
	mean /= float64(len(lengths))

	var variance float64
	for _, l := range lengths {
		d := l - mean
		variance += d * d
	}
	variance /= float64(len(lengths))

	return mean, math.Sqrt(variance)
}
