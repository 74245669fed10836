package pcos

// Documented valid ranges for user profile fields
const (
	MinAge, MaxAge                     = 12, 60
	MinBMI, MaxBMI                     = 10.0, 50.0
	MinCycleLength, MaxCycleLength     = 21, 45
	MinPeriodLength, MaxPeriodLength   = 1, 10
	MinExerciseFreq, MaxExerciseFreq   = 0, 7
	MinStressLevel, MaxStressLevel     = 1, 5
	MinSleepQuality, MaxSleepQuality   = 1, 4
)

// Fallback constants for optional lifestyle fields, applied during
// feature encoding when the caller omits them. Required numeric fields
// (age, bmi, cycle_length, period_length) are never imputed; the
// validator rejects their absence instead
const (
	DefaultExerciseFrequency = 3
	DefaultStressLevel       = 2
	DefaultSleepQuality      = 3
)

// Profile is a single user health profile row.
// Required numeric fields are pointers so absence is distinguishable
// from a zero value; BMI may alternatively be derived from height and
// weight when both are present
type Profile struct {
	Age          *int     `json:"age,omitempty"`
	BMI          *float64 `json:"bmi,omitempty"`
	HeightCM     *float64 `json:"height,omitempty"`
	WeightKG     *float64 `json:"weight,omitempty"`
	CycleLength  *int     `json:"cycle_length,omitempty"`
	PeriodLength *int     `json:"period_length,omitempty"`

	ExerciseFrequency *int `json:"exercise_frequency,omitempty"`
	StressLevel       *int `json:"stress_level,omitempty"`
	SleepQuality      *int `json:"sleep_quality,omitempty"`

	FamilyHistory bool `json:"family_history"`
}

// ResolvedBMI returns the profile's BMI, deriving it from height and
// weight when the explicit field is absent. The second return reports
// whether a BMI could be determined at all
func (p *Profile) ResolvedBMI() (float64, bool) {
	if p.BMI != nil {
		return *p.BMI, true
	}
	if p.HeightCM != nil && p.WeightKG != nil && *p.HeightCM > 0 {
		heightM := *p.HeightCM / 100
		return *p.WeightKG / (heightM * heightM), true
	}
	return 0, false
}
