package pcos

import (
	"math"
	"sync/atomic"

	"fembalance/internal/domain/pcos"
	"fembalance/internal/ml/features"
	"fembalance/internal/ml/model"
	"fembalance/internal/validation"
	"fembalance/pkg/errors"
	"fembalance/pkg/logger"
)

// Predictor predicts PCOS risk from a user profile using a two-model
// averaged ensemble (bagging + boosting). Unlike the cycle predictor's
// weighted scheme the average is deliberately symmetric; neither base
// model is assumed superior. The loaded bundle is an immutable
// snapshot; reloading is an atomic pointer swap
type Predictor struct {
	bundle    atomic.Pointer[model.PCOSBundle]
	validator *validation.Validator
	log       *logger.Logger
}

// New creates an unloaded PCOS risk predictor
func New(validator *validation.Validator, log *logger.Logger) *Predictor {
	return &Predictor{
		validator: validator,
		log:       log,
	}
}

// Load deserializes the model bundle from disk, falling back to a
// synthetic default when the artifact is missing or corrupt
func (p *Predictor) Load(path string) {
	bundle, err := model.LoadPCOSBundle(path)
	if err != nil {
		p.log.Warnf("PCOS bundle unavailable at %s, using synthetic default: %v", path, err)
		bundle = model.DefaultPCOSBundle()
	} else {
		p.log.Infof("PCOS model bundle loaded: version %s", bundle.Version)
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

	cols := pcos.FeatureColumns()
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

// Predict predicts PCOS risk for a single profile
func (p *Predictor) Predict(profile *pcos.Profile) (pred *pcos.Prediction, err error) {
	snap := p.bundle.Load()
	if snap == nil || !snap.Trained {
		return nil, errors.Wrap(errors.ErrModelNotLoaded, "pcos predictor")
	}

	if ok, details := p.validator.ValidateProfile(profile); !ok {
		return nil, errors.NewInputError(details)
	}

	defer func() {
		if r := recover(); r != nil {
			pred = nil
			err = errors.Wrapf(errors.ErrPredictionFailed, "pcos inference panicked: %v", r)
		}
	}()

	feats, err := features.EngineerProfile(profile)
	if err != nil {
		return nil, err
	}

	x := snap.Scaler.Transform(feats.Vector())

	forestProba := snap.Forest.Predict(x)
	boostProba := snap.Boosting.PredictProba(x)

	score := clamp((forestProba+boostProba)/2, 0, 1)

	return &pcos.Prediction{
		RiskScore:    score,
		RiskLevel:    pcos.LevelForScore(score),
		Confidence:   confidence(forestProba, boostProba),
		Factors:      riskFactors(profile),
		ModelVersion: snap.Version,
	}, nil
}

// confidence blends model agreement with distance from the decision
// boundary, clamped to [0,1]
func confidence(p1, p2 float64) float64 {
	agreement := 1 - math.Abs(p1-p2)
	certainty := math.Abs((p1+p2)/2-0.5) * 2
	return clamp((agreement+certainty)/2, 0, 1)
}

// riskFactors tests six independent rules against the raw profile,
// not the encoded features. All matching rules are included
func riskFactors(p *pcos.Profile) []pcos.RiskFactor {
	var factors []pcos.RiskFactor

	if bmi, ok := p.ResolvedBMI(); ok && bmi > 25 {
		factors = append(factors, pcos.FactorElevatedBMI)
	}
	if p.CycleLength != nil && (*p.CycleLength < 21 || *p.CycleLength > 35) {
		factors = append(factors, pcos.FactorIrregularCycles)
	}
	if p.FamilyHistory {
		factors = append(factors, pcos.FactorFamilyHistory)
	}
	if p.ExerciseFrequency != nil && *p.ExerciseFrequency < 2 {
		factors = append(factors, pcos.FactorLowExercise)
	}
	if p.StressLevel != nil && *p.StressLevel > 3 {
		factors = append(factors, pcos.FactorHighStress)
	}
	if p.SleepQuality != nil && *p.SleepQuality < 3 {
		factors = append(factors, pcos.FactorPoorSleep)
	}

	return factors
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
