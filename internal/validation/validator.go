package validation

import (
	"fmt"
	"time"

	"fembalance/internal/domain/cycle"
	"fembalance/internal/domain/pcos"
	"fembalance/internal/domain/symptom"
)

// MaxFutureDays bounds how far in the future a reported date may lie
const MaxFutureDays = 30

// Validator checks structural and range validity of incoming domain
// records before they reach feature engineering. It never returns an
// error value for malformed domain data; every check produces a
// field-level message instead
type Validator struct {
	// Now is injectable for tests; defaults to time.Now
	Now func() time.Time
}

// New creates a validator using the wall clock
func New() *Validator {
	return &Validator{Now: time.Now}
}

// ValidateCycleRecords validates a cycle history.
// At least one record is required; each record is validated independently
func (v *Validator) ValidateCycleRecords(records []cycle.Record) (bool, []string) {
	var errs []string

	if len(records) == 0 {
		errs = append(errs, "at least one cycle record is required")
		return false, errs
	}

	for i, rec := range records {
		prefix := fmt.Sprintf("cycle %d", i+1)

		if rec.StartDate.IsZero() {
			errs = append(errs, prefix+": missing required field: start_date")
		} else if msg := v.checkFuture(rec.StartDate); msg != "" {
			errs = append(errs, prefix+": start_date "+msg)
		}

		if rec.CycleLength != nil {
			if *rec.CycleLength < cycle.MinCycleLength || *rec.CycleLength > cycle.MaxCycleLength {
				errs = append(errs, fmt.Sprintf("%s: cycle_length must be between %d and %d",
					prefix, cycle.MinCycleLength, cycle.MaxCycleLength))
			}
		}

		if rec.PeriodLength != nil {
			if *rec.PeriodLength < pcos.MinPeriodLength || *rec.PeriodLength > pcos.MaxPeriodLength {
				errs = append(errs, fmt.Sprintf("%s: period_length must be between %d and %d",
					prefix, pcos.MinPeriodLength, pcos.MaxPeriodLength))
			}
		}
	}

	return len(errs) == 0, errs
}

// ValidateProfile validates a user profile for PCOS risk prediction.
// Required numeric fields are rejected when absent rather than imputed;
// single-row inference has no well-defined median to impute from
func (v *Validator) ValidateProfile(p *pcos.Profile) (bool, []string) {
	var errs []string

	if p == nil {
		return false, []string{"profile is required"}
	}

	if p.Age == nil {
		errs = append(errs, "missing required field: age")
	} else if *p.Age < pcos.MinAge || *p.Age > pcos.MaxAge {
		errs = append(errs, fmt.Sprintf("age must be between %d and %d", pcos.MinAge, pcos.MaxAge))
	}

	if bmi, ok := p.ResolvedBMI(); !ok {
		errs = append(errs, "missing required field: bmi (or height and weight)")
	} else if bmi < pcos.MinBMI || bmi > pcos.MaxBMI {
		errs = append(errs, fmt.Sprintf("bmi must be between %g and %g", pcos.MinBMI, pcos.MaxBMI))
	}

	if p.CycleLength == nil {
		errs = append(errs, "missing required field: cycle_length")
	} else if *p.CycleLength < pcos.MinCycleLength || *p.CycleLength > pcos.MaxCycleLength {
		errs = append(errs, fmt.Sprintf("cycle_length must be between %d and %d",
			pcos.MinCycleLength, pcos.MaxCycleLength))
	}

	if p.PeriodLength == nil {
		errs = append(errs, "missing required field: period_length")
	} else if *p.PeriodLength < pcos.MinPeriodLength || *p.PeriodLength > pcos.MaxPeriodLength {
		errs = append(errs, fmt.Sprintf("period_length must be between %d and %d",
			pcos.MinPeriodLength, pcos.MaxPeriodLength))
	}

	// Lifestyle fields are optional (the feature engineer fills
	// documented fallbacks) but must be in range when present
	if p.ExerciseFrequency != nil {
		if *p.ExerciseFrequency < pcos.MinExerciseFreq || *p.ExerciseFrequency > pcos.MaxExerciseFreq {
			errs = append(errs, fmt.Sprintf("exercise_frequency must be between %d and %d",
				pcos.MinExerciseFreq, pcos.MaxExerciseFreq))
		}
	}

	if p.StressLevel != nil {
		if *p.StressLevel < pcos.MinStressLevel || *p.StressLevel > pcos.MaxStressLevel {
			errs = append(errs, fmt.Sprintf("stress_level must be between %d and %d",
				pcos.MinStressLevel, pcos.MaxStressLevel))
		}
	}

	if p.SleepQuality != nil {
		if *p.SleepQuality < pcos.MinSleepQuality || *p.SleepQuality > pcos.MaxSleepQuality {
			errs = append(errs, fmt.Sprintf("sleep_quality must be between %d and %d",
				pcos.MinSleepQuality, pcos.MaxSleepQuality))
		}
	}

	return len(errs) == 0, errs
}

// ValidateSymptoms validates a symptom log.
// Unknown symptom types are an error here; coercion to "other" happens
// only inside feature encoding, a deliberately more permissive step
func (v *Validator) ValidateSymptoms(records []symptom.Record) (bool, []string) {
	var errs []string

	if len(records) == 0 {
		errs = append(errs, "at least one symptom record is required")
		return false, errs
	}

	for i, rec := range records {
		prefix := fmt.Sprintf("symptom %d", i+1)

		if rec.Type == "" {
			errs = append(errs, prefix+": missing required field: type")
		} else if !rec.Type.Known() {
			errs = append(errs, fmt.Sprintf("%s: unknown symptom type: %q", prefix, rec.Type))
		}

		if rec.Severity == 0 {
			errs = append(errs, prefix+": missing required field: severity")
		} else if rec.Severity < symptom.MinSeverity || rec.Severity > symptom.MaxSeverity {
			errs = append(errs, fmt.Sprintf("%s: severity must be between %d and %d",
				prefix, symptom.MinSeverity, symptom.MaxSeverity))
		}

		if rec.Date.IsZero() {
			errs = append(errs, prefix+": missing required field: date")
		} else if msg := v.checkFuture(rec.Date); msg != "" {
			errs = append(errs, prefix+": date "+msg)
		}

		if rec.CycleDay != nil {
			if *rec.CycleDay < symptom.MinCycleDay || *rec.CycleDay > symptom.MaxCycleDay {
				errs = append(errs, fmt.Sprintf("%s: cycle_day must be between %d and %d",
					prefix, symptom.MinCycleDay, symptom.MaxCycleDay))
			}
		}
	}

	return len(errs) == 0, errs
}

func (v *Validator) checkFuture(t time.Time) string {
	limit := v.Now().AddDate(0, 0, MaxFutureDays)
	if t.After(limit) {
		return fmt.Sprintf("must not be more than %d days in the future", MaxFutureDays)
	}
	return ""
}

// ParseDate parses a user-supplied date string. Both plain calendar
// dates and full RFC 3339 timestamps are accepted
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO-8601 date: %q", s)
	}
	return t, nil
}
