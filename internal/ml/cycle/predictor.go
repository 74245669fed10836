package cycle

import (
	"math"
	"sync/atomic"
	"time"

	"fembalance/internal/domain/cycle"
	"fembalance/internal/ml/features"
	"fembalance/internal/ml/model"
	"fembalance/internal/validation"
	"fembalance/pkg/errors"
	"fembalance/pkg/logger"
)

// Ensemble weights. The non-linear model is trusted more for capturing
// irregularity; the weights are a versioned constant tied to the model
// version and are re-derivable only by retraining
const (
	forestWeight = 0.7
	linearWeight = 0.3
)

// lutealPhaseDays is the fixed luteal-phase assumption anchoring the
// fertile window 14 days before the predicted next start. A documented
// simplification, not derived per user
const lutealPhaseDays = 14

// Predictor predicts the next menstrual cycle from a user's history
// using a two-model weighted ensemble. The loaded bundle is an
// immutable snapshot shared across concurrent requests; reloading is
// an atomic pointer swap
type Predictor struct {
	bundle    atomic.Pointer[model.CycleBundle]
	validator *validation.Validator
	log       *logger.Logger

	// now is injectable for tests; defaults to time.Now
	now func() time.Time
}

// New creates an unloaded cycle predictor
func New(validator *validation.Validator, log *logger.Logger) *Predictor {
	return &Predictor{
		validator: validator,
		log:       log,
		now:       time.Now,
	}
}

// Load deserializes the model bundle from disk. A missing or corrupt
// bundle falls back to a synthetic default so the service degrades
// gracefully instead of crashing; the predictor reaches the loaded
// state either way
func (p *Predictor) Load(path string) {
	bundle, err := model.LoadCycleBundle(path)
	if err != nil {
		p.log.Warnf("Cycle bundle unavailable at %s, using synthetic default: %v", path, err)
		bundle = model.DefaultCycleBundle()
	} else {
		p.log.Infof("Cycle model bundle loaded: version %s", bundle.Version)
	}

	p.bundle.Store(bundle)
}

// Ready reports whether the predictor holds a trained bundle
func (p *Predictor) Ready() bool {
	b := p.bundle.Load()
	return b != nil && b.Trained
}

// Version returns the loaded bundle version, or empty when unloaded
func (p *Predictor) Version() string {
	if b := p.bundle.Load(); b != nil {
		return b.Version
	}
	return ""
}

// Info describes the loaded model for diagnostics
type Info struct {
	Loaded            bool               `json:"loaded"`
	ModelVersion      string             `json:"model_version,omitempty"`
	FeatureColumns    []string           `json:"feature_columns,omitempty"`
	FeatureImportance map[string]float64 `json:"feature_importance,omitempty"`
}

// ModelInfo returns diagnostics about the loaded model
func (p *Predictor) ModelInfo() Info {
	b := p.bundle.Load()
	if b == nil || !b.Trained {
		return Info{Loaded: false}
	}

	cols := cycle.FeatureColumns()
	importance := b.Forest.FeatureImportance(len(cols))

	byName := make(map[string]float64, len(cols))
	for i, col := range cols {
		byName[col] = importance[i]
	}

	return Info{
		Loaded:            true,
		ModelVersion:      b.Version,
		FeatureColumns:    cols,
		FeatureImportance: byName,
	}
}

// Predict predicts the next cycle from the given history
func (p *Predictor) Predict(records []cycle.Record) (pred *cycle.Prediction, err error) {
	snap := p.bundle.Load()
	if snap == nil || !snap.Trained {
		return nil, errors.Wrap(errors.ErrModelNotLoaded, "cycle predictor")
	}

	if ok, details := p.validator.ValidateCycleRecords(records); !ok {
		return nil, errors.NewInputError(details)
	}

	// Degenerate histories must surface as a prediction failure, not a panic
	defer func() {
		if r := recover(); r != nil {
			pred = nil
			err = errors.Wrapf(errors.ErrPredictionFailed, "cycle inference panicked: %v", r)
		}
	}()

	feats, err := features.EngineerCycle(records, p.now())
	if err != nil {
		return nil, err
	}

	x := snap.Scaler.Transform(feats.Vector())

	forestPred := snap.Forest.Predict(x)
	linearPred := snap.Linear.Predict(x)

	raw := forestWeight*forestPred + linearWeight*linearPred
	// Hard domain bound on cycle length, applies to the model output only
	raw = clamp(raw, cycle.MinCycleLength, cycle.MaxCycleLength)
	length := int(math.Round(raw))

	// Anchor on the last known cycle: next start is the most recent
	// record's start plus its own length, not the predicted length
	resolved := features.ResolveCycleRecords(records)
	last := resolved[len(resolved)-1]
	start := last.StartDate.AddDate(0, 0, last.CycleLength)

	agreement := 1 - math.Abs(forestPred-linearPred)/math.Max(forestPred, math.Max(linearPred, 1))
	confidence := clamp((agreement+feats.CycleRegularity)/2, 0, 1)

	ovulation := start.AddDate(0, 0, length-lutealPhaseDays)

	return &cycle.Prediction{
		PredictedStartDate:   start,
		PredictedCycleLength: length,
		Confidence:           confidence,
		FertileWindow: cycle.FertileWindow{
			Start: ovulation.AddDate(0, 0, -5),
			End:   ovulation.AddDate(0, 0, 1),
			Peak:  ovulation,
		},
		Phases:       predictPhases(start, length),
		ModelVersion: snap.Version,
	}, nil
}

// predictPhases lays out the four phases as fixed offsets from the
// predicted start date
func predictPhases(start time.Time, length int) cycle.Phases {
	ovulationDay := length - lutealPhaseDays

	return cycle.Phases{
		Menstrual: cycle.PhaseWindow{
			Start: start,
			End:   start.AddDate(0, 0, 5),
		},
		Follicular: cycle.PhaseWindow{
			Start: start.AddDate(0, 0, 6),
			End:   start.AddDate(0, 0, 13),
		},
		Ovulation: cycle.PhaseWindow{
			Start: start.AddDate(0, 0, ovulationDay-1),
			End:   start.AddDate(0, 0, ovulationDay+1),
		},
		Luteal: cycle.PhaseWindow{
			Start: start.AddDate(0, 0, ovulationDay+2),
			End:   start.AddDate(0, 0, length),
		},
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
