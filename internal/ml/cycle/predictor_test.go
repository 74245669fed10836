package cycle

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fembalance/internal/domain/cycle"
	"fembalance/internal/ml/model"
	"fembalance/internal/validation"
	"fembalance/pkg/errors"
	"fembalance/pkg/logger"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

func newTestPredictor(t *testing.T) *Predictor {
	t.Helper()

	v := validation.New()
	v.Now = func() time.Time { return date(2023, 3, 10) }

	p := New(v, logger.Get())
	p.now = v.Now
	return p
}

func testHistory() []cycle.Record {
	return []cycle.Record{
		{StartDate: date(2023, 1, 1), CycleLength: intPtr(28), PeriodLength: intPtr(5)},
		{StartDate: date(2023, 1, 29), CycleLength: intPtr(30), PeriodLength: intPtr(4)},
		{StartDate: date(2023, 2, 28), CycleLength: intPtr(27), PeriodLength: intPtr(6)},
	}
}

func TestPredict_NotLoaded(t *testing.T) {
	p := newTestPredictor(t)

	_, err := p.Predict(testHistory())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrModelNotLoaded))
	assert.False(t, p.Ready())
	assert.Empty(t, p.Version())
}

func TestPredict_DefaultBundle(t *testing.T) {
	p := newTestPredictor(t)
	p.Load("")
	require.True(t, p.Ready())
	assert.Equal(t, model.DefaultVersion, p.Version())

	pred, err := p.Predict(testHistory())
	require.NoError(t, err)

	// Next start anchors on the last record's own cycle length
	assert.Equal(t, date(2023, 3, 27), pred.PredictedStartDate)

	assert.GreaterOrEqual(t, pred.PredictedCycleLength, cycle.MinCycleLength)
	assert.LessOrEqual(t, pred.PredictedCycleLength, cycle.MaxCycleLength)
	assert.GreaterOrEqual(t, pred.Confidence, 0.0)
	assert.LessOrEqual(t, pred.Confidence, 1.0)
	assert.Equal(t, model.DefaultVersion, pred.ModelVersion)

	// Fertile window: ovulation 14 days before the following start,
	// window -5/+1 around it
	ovulation := pred.PredictedStartDate.AddDate(0, 0, pred.PredictedCycleLength-14)
	assert.Equal(t, ovulation, pred.FertileWindow.Peak)
	assert.Equal(t, ovulation.AddDate(0, 0, -5), pred.FertileWindow.Start)
	assert.Equal(t, ovulation.AddDate(0, 0, 1), pred.FertileWindow.End)

	// Phases are laid out from the predicted start
	assert.Equal(t, pred.PredictedStartDate, pred.Phases.Menstrual.Start)
	assert.Equal(t, pred.PredictedStartDate.AddDate(0, 0, pred.PredictedCycleLength), pred.Phases.Luteal.End)
}

func TestPredict_Idempotent(t *testing.T) {
	p := newTestPredictor(t)
	p.Load("")

	first, err := p.Predict(testHistory())
	require.NoError(t, err)
	second, err := p.Predict(testHistory())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPredict_ClampsExtremeModels(t *testing.T) {
	p := newTestPredictor(t)

	high := model.DefaultCycleBundle()
	high.Forest = model.Forest{Trees: []model.Tree{model.Leaf(200)}}
	high.Linear = model.Linear{Intercept: 200, Coefficients: make([]float64, model.CycleFeatureCount)}
	p.bundle.Store(high)

	pred, err := p.Predict(testHistory())
	require.NoError(t, err)
	assert.Equal(t, cycle.MaxCycleLength, pred.PredictedCycleLength)

	low := model.DefaultCycleBundle()
	low.Forest = model.Forest{Trees: []model.Tree{model.Leaf(1)}}
	low.Linear = model.Linear{Intercept: 1, Coefficients: make([]float64, model.CycleFeatureCount)}
	p.bundle.Store(low)

	pred, err = p.Predict(testHistory())
	require.NoError(t, err)
	assert.Equal(t, cycle.MinCycleLength, pred.PredictedCycleLength)
}

func TestPredict_InvalidInput(t *testing.T) {
	p := newTestPredictor(t)
	p.Load("")

	_, err := p.Predict(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	var inputErr *errors.InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Contains(t, inputErr.Details[0], "at least one cycle")
}

func TestLoad_FromDisk(t *testing.T) {
	bundle := model.DefaultCycleBundle()
	bundle.Version = "2.1.0"

	data, err := json.Marshal(bundle)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cycle.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p := newTestPredictor(t)
	p.Load(path)

	require.True(t, p.Ready())
	assert.Equal(t, "2.1.0", p.Version())
}

func TestModelInfo(t *testing.T) {
	p := newTestPredictor(t)
	assert.False(t, p.ModelInfo().Loaded)

	p.Load("")
	info := p.ModelInfo()
	require.True(t, info.Loaded)
	assert.Equal(t, model.DefaultVersion, info.ModelVersion)
	assert.Len(t, info.FeatureColumns, model.CycleFeatureCount)
	assert.Len(t, info.FeatureImportance, model.CycleFeatureCount)
}

func TestPredict_HotReloadSwapsVersion(t *testing.T) {
	p := newTestPredictor(t)
	p.Load("")

	pred, err := p.Predict(testHistory())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultVersion, pred.ModelVersion)

	next := model.DefaultCycleBundle()
	next.Version = "3.0.0"
	p.bundle.Store(next)

	pred, err = p.Predict(testHistory())
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", pred.ModelVersion)
}
