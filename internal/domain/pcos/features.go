package pcos

// Features represents the encoded profile row consumed by the PCOS
// risk models: the raw numeric fields in declared order followed by
// the five derived ordinal fields
type Features struct {
	Age               float64 `json:"age"`
	BMI               float64 `json:"bmi"`
	CycleLength       float64 `json:"cycle_length"`
	PeriodLength      float64 `json:"period_length"`
	ExerciseFrequency float64 `json:"exercise_frequency"`
	StressLevel       float64 `json:"stress_level"`
	SleepQuality      float64 `json:"sleep_quality"`
	FamilyHistory     float64 `json:"family_history"`

	// Derived ordinal fields, recomputed on every call
	BMICategory    float64 `json:"bmi_category"`
	CycleIrregular float64 `json:"cycle_irregular"`
	PeriodCategory float64 `json:"period_category"`
	LifestyleRisk  float64 `json:"lifestyle_risk"`
	AgeGroup       float64 `json:"age_group"`
}

// Vector converts Features to a float64 slice for ML model input.
// Order must match the training pipeline feature order (13 features total)
func (f *Features) Vector() []float64 {
	return []float64{
		f.Age,
		f.BMI,
		f.CycleLength,
		f.PeriodLength,
		f.ExerciseFrequency,
		f.StressLevel,
		f.SleepQuality,
		f.FamilyHistory,
		f.BMICategory,
		f.CycleIrregular,
		f.PeriodCategory,
		f.LifestyleRisk,
		f.AgeGroup,
	}
}

// FeatureColumns returns the feature column names in vector order.
// A fresh slice is returned on every call so the base column list is
// never mutated by appending derived names
func FeatureColumns() []string {
	return []string{
		"age",
		"bmi",
		"cycle_length",
		"period_length",
		"exercise_frequency",
		"stress_level",
		"sleep_quality",
		"family_history",
		"bmi_category",
		"cycle_irregular",
		"period_category",
		"lifestyle_risk",
		"age_group",
	}
}
