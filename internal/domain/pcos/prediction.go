package pcos

// RiskLevel buckets a risk score into a categorical level
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// Valid checks if the risk level is one of the known buckets
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskModerate, RiskHigh, RiskVeryHigh:
		return true
	}
	return false
}

// String returns string representation
func (r RiskLevel) String() string {
	return string(r)
}

// LevelForScore maps a risk score in [0,1] to its bucket.
// The buckets are a total, non-overlapping partition of [0,1]:
// low [0,0.3), moderate [0.3,0.6), high [0.6,0.8), very_high [0.8,1.0].
// A score of exactly 1.0 falls into very_high
func LevelForScore(score float64) RiskLevel {
	switch {
	case score < 0.3:
		return RiskLow
	case score < 0.6:
		return RiskModerate
	case score < 0.8:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}

// RiskFactor is a named boolean flag derived from independent rule
// checks against raw profile fields, not from the ensemble model
type RiskFactor string

const (
	FactorElevatedBMI     RiskFactor = "elevated_bmi"
	FactorIrregularCycles RiskFactor = "irregular_cycles"
	FactorFamilyHistory   RiskFactor = "family_history"
	FactorLowExercise     RiskFactor = "low_exercise"
	FactorHighStress      RiskFactor = "high_stress"
	FactorPoorSleep       RiskFactor = "poor_sleep"
)

// Prediction is the result of a PCOS risk prediction
type Prediction struct {
	RiskScore    float64      `json:"risk_score"`
	RiskLevel    RiskLevel    `json:"risk_level"`
	Confidence   float64      `json:"confidence"`
	Factors      []RiskFactor `json:"factors"`
	ModelVersion string       `json:"model_version"`
}
