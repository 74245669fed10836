package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fembalance/internal/domain/cycle"
	"fembalance/internal/domain/pcos"
	"fembalance/internal/domain/symptom"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func newTestValidator() *Validator {
	v := New()
	v.Now = func() time.Time { return date(2023, 6, 1) }
	return v
}

func TestValidateCycleRecords_Empty(t *testing.T) {
	v := newTestValidator()

	ok, errs := v.ValidateCycleRecords(nil)
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "at least one cycle")
}

func TestValidateCycleRecords_Valid(t *testing.T) {
	v := newTestValidator()

	ok, errs := v.ValidateCycleRecords([]cycle.Record{
		{StartDate: date(2023, 1, 1), CycleLength: intPtr(28)},
		{StartDate: date(2023, 1, 29)},
	})
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidateCycleRecords_FieldErrors(t *testing.T) {
	v := newTestValidator()

	ok, errs := v.ValidateCycleRecords([]cycle.Record{
		{},
		{StartDate: date(2023, 1, 1), CycleLength: intPtr(50), PeriodLength: intPtr(15)},
		// 31 days ahead of the injected clock
		{StartDate: date(2023, 7, 2)},
	})
	assert.False(t, ok)

	assert.Contains(t, errs[0], "start_date")
	assert.Contains(t, errs[1], "cycle_length")
	assert.Contains(t, errs[2], "period_length")
	assert.Contains(t, errs[3], "future")
}

func TestValidateCycleRecords_FutureWithinGrace(t *testing.T) {
	v := newTestValidator()

	// 29 days ahead is still acceptable
	ok, _ := v.ValidateCycleRecords([]cycle.Record{
		{StartDate: date(2023, 6, 30)},
	})
	assert.True(t, ok)
}

func TestValidateProfile_Valid(t *testing.T) {
	v := newTestValidator()

	ok, errs := v.ValidateProfile(&pcos.Profile{
		Age:          intPtr(25),
		BMI:          floatPtr(22.5),
		CycleLength:  intPtr(28),
		PeriodLength: intPtr(5),
	})
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidateProfile_MissingRequired(t *testing.T) {
	v := newTestValidator()

	ok, errs := v.ValidateProfile(&pcos.Profile{})
	assert.False(t, ok)
	require.Len(t, errs, 4)
	assert.Contains(t, errs[0], "age")
	assert.Contains(t, errs[1], "bmi")
	assert.Contains(t, errs[2], "cycle_length")
	assert.Contains(t, errs[3], "period_length")

	ok, errs = v.ValidateProfile(nil)
	assert.False(t, ok)
	require.Len(t, errs, 1)
}

func TestValidateProfile_HeightWeightSatisfyBMI(t *testing.T) {
	v := newTestValidator()

	ok, errs := v.ValidateProfile(&pcos.Profile{
		Age:          intPtr(25),
		HeightCM:     floatPtr(165),
		WeightKG:     floatPtr(60),
		CycleLength:  intPtr(28),
		PeriodLength: intPtr(5),
	})
	assert.True(t, ok, "errors: %v", errs)
}

func TestValidateProfile_RangeErrors(t *testing.T) {
	v := newTestValidator()

	ok, errs := v.ValidateProfile(&pcos.Profile{
		Age:               intPtr(70),
		BMI:               floatPtr(60),
		CycleLength:       intPtr(10),
		PeriodLength:      intPtr(12),
		ExerciseFrequency: intPtr(9),
		StressLevel:       intPtr(6),
		SleepQuality:      intPtr(0),
	})
	assert.False(t, ok)
	assert.Len(t, errs, 7)
}

func TestValidateSymptoms_UnknownType(t *testing.T) {
	v := newTestValidator()

	ok, errs := v.ValidateSymptoms([]symptom.Record{
		{Type: "migraine", Severity: 5, Date: date(2023, 5, 1)},
	})
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `unknown symptom type: "migraine"`)

	// The encoder, bypassing validation, coerces the same value to "other"
	assert.Equal(t, symptom.TypeOther, symptom.Type("migraine").Canonical())
}

func TestValidateSymptoms_Valid(t *testing.T) {
	v := newTestValidator()

	ok, errs := v.ValidateSymptoms([]symptom.Record{
		{Type: symptom.TypeCramps, Severity: 7, Date: date(2023, 5, 1), CycleDay: intPtr(2)},
		{Type: symptom.TypeFatigue, Severity: 3, Date: date(2023, 5, 3)},
	})
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidateSymptoms_FieldErrors(t *testing.T) {
	v := newTestValidator()

	ok, errs := v.ValidateSymptoms([]symptom.Record{
		{Type: symptom.TypeCramps, Date: date(2023, 5, 1)},
		{Type: symptom.TypeCramps, Severity: 11, Date: date(2023, 5, 1)},
		{Type: symptom.TypeCramps, Severity: 5},
		{Type: symptom.TypeCramps, Severity: 5, Date: date(2023, 5, 1), CycleDay: intPtr(60)},
	})
	assert.False(t, ok)
	require.Len(t, errs, 4)
	assert.Contains(t, errs[0], "severity")
	assert.Contains(t, errs[1], "severity must be between")
	assert.Contains(t, errs[2], "date")
	assert.Contains(t, errs[3], "cycle_day")
}

func TestValidateSymptoms_Empty(t *testing.T) {
	v := newTestValidator()

	ok, errs := v.ValidateSymptoms(nil)
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "at least one symptom")
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2023-01-15")
	require.NoError(t, err)
	assert.Equal(t, date(2023, 1, 15), got)

	got, err = ParseDate("2023-01-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	_, err = ParseDate("15/01/2023")
	require.Error(t, err)
}
