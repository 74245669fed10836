package symptoms

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fembalance/internal/domain/symptom"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

func TestAnalyze_Empty(t *testing.T) {
	_, err := New().Analyze(nil)
	require.Error(t, err)
}

func TestAnalyze_Aggregates(t *testing.T) {
	records := []symptom.Record{
		{Type: symptom.TypeCramps, Severity: 8, Date: date(2023, 5, 1), CycleDay: intPtr(2)},
		{Type: symptom.TypeCramps, Severity: 6, Date: date(2023, 5, 2), CycleDay: intPtr(3)},
		{Type: symptom.TypeFatigue, Severity: 4, Date: date(2023, 5, 3), CycleDay: intPtr(20)},
	}

	report, err := New().Analyze(records)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalSymptoms)
	assert.Equal(t, 2, report.UniqueTypes)
	assert.Equal(t, "cramps", report.MostCommonType)
	assert.Equal(t, 2, report.Frequency["cramps"])
	assert.InDelta(t, 7.0, report.AverageSeverity["cramps"], 1e-9)
	assert.InDelta(t, 4.0, report.AverageSeverity["fatigue"], 1e-9)

	// Reported cycle days drive phase bucketing
	assert.Equal(t, 2, report.ByPhase[string(symptom.PhaseMenstrual)])
	assert.Equal(t, 1, report.ByPhase[string(symptom.PhaseLuteal)])

	assert.Equal(t, date(2023, 5, 1), report.DateRange.Start)
	assert.Equal(t, date(2023, 5, 3), report.DateRange.End)
	assert.Equal(t, 2, report.DateRange.Days)

	// Short spans never report a trend
	assert.Equal(t, symptom.TrendStable, report.Trend)
}

func TestAnalyze_EstimatesCycleDayWhenAbsent(t *testing.T) {
	// Without reported cycle days, days since the earliest record are
	// folded into an assumed 28-day cycle
	records := []symptom.Record{
		{Type: symptom.TypeCramps, Severity: 5, Date: date(2023, 5, 1)},
		{Type: symptom.TypeBloating, Severity: 5, Date: date(2023, 5, 15)},
	}

	report, err := New().Analyze(records)
	require.NoError(t, err)

	// Day 1 -> menstrual, day 15 -> ovulation
	assert.Equal(t, 1, report.ByPhase[string(symptom.PhaseMenstrual)])
	assert.Equal(t, 1, report.ByPhase[string(symptom.PhaseOvulation)])
}

func TestAnalyze_IncreasingTrend(t *testing.T) {
	var records []symptom.Record
	start := date(2023, 5, 1)
	// Daily counts ramp from 1 to 10 over ten days
	for day := 0; day < 10; day++ {
		for n := 0; n <= day; n++ {
			records = append(records, symptom.Record{
				Type:     symptom.TypeHeadache,
				Severity: 5,
				Date:     start.AddDate(0, 0, day),
			})
		}
	}

	report, err := New().Analyze(records)
	require.NoError(t, err)
	assert.Equal(t, symptom.TrendIncreasing, report.Trend)
	assert.Contains(t, report.Insights, "Your symptoms have been increasing over the logged period")
}

func TestAnalyze_UnknownTypeCoercedToOther(t *testing.T) {
	records := []symptom.Record{
		{Type: "migraine", Severity: 5, Date: date(2023, 5, 1)},
	}

	report, err := New().Analyze(records)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Frequency["other"])
	assert.Equal(t, "other", report.MostCommonType)
}

func TestAnalyze_SevereSymptomInsight(t *testing.T) {
	records := []symptom.Record{
		{Type: symptom.TypeCramps, Severity: 9, Date: date(2023, 5, 1)},
		{Type: symptom.TypeCramps, Severity: 8, Date: date(2023, 5, 2)},
	}

	report, err := New().Analyze(records)
	require.NoError(t, err)

	found := false
	for _, insight := range report.Insights {
		if strings.Contains(insight, "severe") {
			found = true
		}
	}
	assert.True(t, found, "expected a severity insight, got %v", report.Insights)
}
