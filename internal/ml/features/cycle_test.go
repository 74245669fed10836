package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fembalance/internal/domain/cycle"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

func threeCycleHistory() []cycle.Record {
	return []cycle.Record{
		{StartDate: date(2023, 1, 1), CycleLength: intPtr(28), PeriodLength: intPtr(5)},
		{StartDate: date(2023, 1, 29), CycleLength: intPtr(30), PeriodLength: intPtr(4)},
		{StartDate: date(2023, 2, 28), CycleLength: intPtr(27), PeriodLength: intPtr(6)},
	}
}

func TestEngineerCycle_Statistics(t *testing.T) {
	now := date(2023, 3, 10)

	feats, err := EngineerCycle(threeCycleHistory(), now)
	require.NoError(t, err)

	assert.InDelta(t, 28.33, feats.AvgCycleLength, 0.01)
	assert.InDelta(t, 1.53, feats.CycleStd, 0.01)
	assert.InDelta(t, 0.78, feats.CycleRegularity, 0.01)
	assert.InDelta(t, 5.0, feats.AvgPeriodLength, 1e-9)
	assert.Equal(t, 3.0, feats.CyclesCount)
	assert.Equal(t, 10.0, feats.DaysSinceLast)

	// Fewer than 4 cycles: no trend, recent average equals the overall
	assert.Equal(t, 0.0, feats.TrendSlope)
	assert.Equal(t, feats.AvgCycleLength, feats.RecentAvg)

	// Last record starts in February
	assert.Equal(t, 0.0, feats.Season)
}

func TestEngineerCycle_TrendSlope(t *testing.T) {
	records := []cycle.Record{
		{StartDate: date(2023, 1, 1), CycleLength: intPtr(28)},
		{StartDate: date(2023, 1, 29), CycleLength: intPtr(28)},
		{StartDate: date(2023, 2, 26), CycleLength: intPtr(30)},
		{StartDate: date(2023, 3, 28), CycleLength: intPtr(32)},
		{StartDate: date(2023, 4, 29), CycleLength: intPtr(34)},
	}

	feats, err := EngineerCycle(records, date(2023, 5, 10))
	require.NoError(t, err)

	// recent mean (30+32+34)/3 = 32, older mean (28+28)/2 = 28
	assert.InDelta(t, 32.0, feats.RecentAvg, 1e-9)
	assert.InDelta(t, (32.0-28.0)/5.0, feats.TrendSlope, 1e-9)
}

func TestEngineerCycle_ShortHistoryDefaults(t *testing.T) {
	records := []cycle.Record{
		{StartDate: date(2023, 7, 1), CycleLength: intPtr(25)},
	}

	feats, err := EngineerCycle(records, date(2023, 7, 15))
	require.NoError(t, err)

	assert.Equal(t, 28.0, feats.AvgCycleLength)
	assert.Equal(t, 0.5, feats.CycleRegularity)
	assert.Equal(t, 5.0, feats.AvgPeriodLength)
	assert.Equal(t, 1.0, feats.CyclesCount)
	assert.Equal(t, 0.0, feats.DaysSinceLast)

	// Season for a single-record default comes from the reference time
	assert.Equal(t, 2.0, feats.Season)
}

func TestEngineerCycle_Empty(t *testing.T) {
	_, err := EngineerCycle(nil, time.Now())
	require.Error(t, err)
}

func TestEngineerCycle_RegularityDegradesWithSpread(t *testing.T) {
	regular := []cycle.Record{
		{StartDate: date(2023, 1, 1), CycleLength: intPtr(28)},
		{StartDate: date(2023, 1, 29), CycleLength: intPtr(28)},
		{StartDate: date(2023, 2, 26), CycleLength: intPtr(28)},
	}
	irregular := []cycle.Record{
		{StartDate: date(2023, 1, 1), CycleLength: intPtr(21)},
		{StartDate: date(2023, 1, 22), CycleLength: intPtr(35)},
		{StartDate: date(2023, 2, 26), CycleLength: intPtr(24)},
	}

	now := date(2023, 3, 10)

	regFeats, err := EngineerCycle(regular, now)
	require.NoError(t, err)
	irregFeats, err := EngineerCycle(irregular, now)
	require.NoError(t, err)

	assert.Equal(t, 1.0, regFeats.CycleRegularity)
	assert.Less(t, irregFeats.CycleRegularity, regFeats.CycleRegularity)
	assert.GreaterOrEqual(t, irregFeats.CycleRegularity, 0.0)
}

func TestResolveCycleRecords_DerivesMissingLengths(t *testing.T) {
	records := []cycle.Record{
		// Deliberately out of order, no explicit lengths
		{StartDate: date(2023, 2, 1)},
		{StartDate: date(2023, 1, 1)},
		{StartDate: date(2023, 3, 5), PeriodLength: intPtr(6)},
	}

	resolved := ResolveCycleRecords(records)
	require.Len(t, resolved, 3)

	// Sorted ascending; first record assumes the default length
	assert.Equal(t, date(2023, 1, 1), resolved[0].StartDate)
	assert.Equal(t, cycle.DefaultCycleLength, resolved[0].CycleLength)
	assert.Equal(t, 31, resolved[1].CycleLength)
	assert.Equal(t, 32, resolved[2].CycleLength)

	assert.Equal(t, cycle.DefaultPeriodLength, resolved[0].PeriodLength)
	assert.Equal(t, 6, resolved[2].PeriodLength)

	// Input order untouched
	assert.Equal(t, date(2023, 2, 1), records[0].StartDate)
	assert.Nil(t, records[0].CycleLength)
}

func TestSeason(t *testing.T) {
	assert.Equal(t, 0, Season(date(2023, 12, 15)))
	assert.Equal(t, 0, Season(date(2023, 2, 1)))
	assert.Equal(t, 1, Season(date(2023, 4, 1)))
	assert.Equal(t, 2, Season(date(2023, 7, 1)))
	assert.Equal(t, 3, Season(date(2023, 10, 1)))
}

func TestFeatureColumns_FreshSlice(t *testing.T) {
	cols := cycle.FeatureColumns()
	require.Len(t, cols, 9)
	cols[0] = "mutated"

	again := cycle.FeatureColumns()
	assert.Equal(t, "avg_cycle_length", again[0])
}
