package symptom

import "time"

// Phase is a menstrual cycle phase derived from a cycle day
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
)

// PhaseForDay maps a cycle day to its phase: menstrual days 1-5,
// follicular 6-13, ovulation 14-16, luteal beyond
func PhaseForDay(day int) Phase {
	switch {
	case day <= 5:
		return PhaseMenstrual
	case day <= 13:
		return PhaseFollicular
	case day <= 16:
		return PhaseOvulation
	default:
		return PhaseLuteal
	}
}

// Trend is the sign of a simple linear trend over daily symptom counts
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// DateRange bounds the analyzed symptom log
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
}

// PatternsReport summarizes patterns found in a symptom log
type PatternsReport struct {
	TotalSymptoms   int                `json:"total_symptoms"`
	UniqueTypes     int                `json:"unique_types"`
	DateRange       DateRange          `json:"date_range"`
	Frequency       map[string]int     `json:"frequency"`
	AverageSeverity map[string]float64 `json:"average_severity"`
	MostCommonType  string             `json:"most_common_type"`
	ByPhase         map[string]int     `json:"by_phase"`
	Trend           Trend              `json:"trend"`
	Insights        []string           `json:"insights"`
}
