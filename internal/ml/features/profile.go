package features

import (
	"fembalance/internal/domain/pcos"
	"fembalance/pkg/errors"
)

// EngineerProfile encodes a user profile into the 13-dimensional PCOS
// feature set: the raw numeric fields in declared order plus the five
// derived ordinal fields. The profile itself is never mutated and the
// feature column list is derived fresh per call.
//
// Required numeric fields must be present (the validator guarantees
// this on the service path); optional lifestyle fields fall back to
// the documented constants
func EngineerProfile(p *pcos.Profile) (*pcos.Features, error) {
	if p == nil {
		return nil, errors.Wrap(errors.ErrPredictionFailed, "no profile to engineer")
	}

	bmi, ok := p.ResolvedBMI()
	if !ok || p.Age == nil || p.CycleLength == nil || p.PeriodLength == nil {
		return nil, errors.Wrap(errors.ErrPredictionFailed, "profile missing required numeric fields")
	}

	age := *p.Age
	cycleLength := *p.CycleLength
	periodLength := *p.PeriodLength

	exercise := pcos.DefaultExerciseFrequency
	if p.ExerciseFrequency != nil {
		exercise = *p.ExerciseFrequency
	}
	stress := pcos.DefaultStressLevel
	if p.StressLevel != nil {
		stress = *p.StressLevel
	}
	sleep := pcos.DefaultSleepQuality
	if p.SleepQuality != nil {
		sleep = *p.SleepQuality
	}

	f := &pcos.Features{
		Age:               float64(age),
		BMI:               bmi,
		CycleLength:       float64(cycleLength),
		PeriodLength:      float64(periodLength),
		ExerciseFrequency: float64(exercise),
		StressLevel:       float64(stress),
		SleepQuality:      float64(sleep),
		FamilyHistory:     boolToFloat(p.FamilyHistory),

		BMICategory:    float64(bmiCategory(bmi)),
		CycleIrregular: boolToFloat(cycleLength < 21 || cycleLength > 35),
		PeriodCategory: float64(periodCategory(periodLength)),
		LifestyleRisk:  float64(lifestyleRisk(exercise, stress, sleep)),
		AgeGroup:       float64(ageGroup(age)),
	}

	return f, nil
}

// bmiCategory buckets BMI: 0 underweight, 1 normal, 2 overweight, 3 obese
func bmiCategory(bmi float64) int {
	switch {
	case bmi < 18.5:
		return 0
	case bmi < 25:
		return 1
	case bmi < 30:
		return 2
	default:
		return 3
	}
}

// periodCategory buckets period length: 0 short, 1 normal, 2 long
func periodCategory(days int) int {
	switch {
	case days <= 3:
		return 0
	case days <= 7:
		return 1
	default:
		return 2
	}
}

// lifestyleRisk sums three binary lifestyle flags: low exercise,
// high stress, poor sleep
func lifestyleRisk(exercise, stress, sleep int) int {
	risk := 0
	if exercise < 2 {
		risk++
	}
	if stress > 3 {
		risk++
	}
	if sleep < 3 {
		risk++
	}
	return risk
}

// ageGroup buckets age: 0 teen, 1 young adult, 2 adult, 3 mature
func ageGroup(age int) int {
	switch {
	case age < 18:
		return 0
	case age < 25:
		return 1
	case age < 35:
		return 2
	default:
		return 3
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
