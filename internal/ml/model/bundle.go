package model

import (
	"encoding/json"
	"math/rand"
	"os"

	"fembalance/pkg/errors"
)

// Feature vector sizes baked into the model contracts
const (
	CycleFeatureCount = 9
	PCOSFeatureCount  = 13
)

// DefaultVersion tags the synthetic fallback bundles so their
// predictions are distinguishable from real trained artifacts
const DefaultVersion = "1.0.0-default"

// CycleBundle is the two-model cycle regression artifact: a non-linear
// forest, a linear regressor, the shared feature scaler they were
// trained with, and a version tag. Immutable after load
type CycleBundle struct {
	Version string  `json:"version"`
	Trained bool    `json:"trained"`
	Scaler  Scaler  `json:"scaler"`
	Forest  Forest  `json:"forest"`
	Linear  Linear  `json:"linear"`
}

// PCOSBundle is the two-model PCOS classification artifact: a bagging
// forest and a boosting ensemble with their shared scaler
type PCOSBundle struct {
	Version  string   `json:"version"`
	Trained  bool     `json:"trained"`
	Scaler   Scaler   `json:"scaler"`
	Forest   Forest   `json:"forest"`
	Boosting Boosting `json:"boosting"`
}

// LoadCycleBundle reads a cycle model bundle from disk
func LoadCycleBundle(path string) (*CycleBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cycle bundle")
	}

	var b CycleBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(err, "failed to decode cycle bundle")
	}
	if len(b.Scaler.Mean) != CycleFeatureCount {
		return nil, errors.Wrapf(errors.ErrInvalidModelOutput,
			"cycle bundle scaler has %d columns, want %d", len(b.Scaler.Mean), CycleFeatureCount)
	}

	return &b, nil
}

// LoadPCOSBundle reads a PCOS model bundle from disk
func LoadPCOSBundle(path string) (*PCOSBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read pcos bundle")
	}

	var b PCOSBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(err, "failed to decode pcos bundle")
	}
	if len(b.Scaler.Mean) != PCOSFeatureCount {
		return nil, errors.Wrapf(errors.ErrInvalidModelOutput,
			"pcos bundle scaler has %d columns, want %d", len(b.Scaler.Mean), PCOSFeatureCount)
	}

	return &b, nil
}

// DefaultCycleBundle builds the fallback bundle used when no trained
// artifact is available on disk. It is fit on synthetic cycle lengths
// around 28 days from a fixed seed, so the service degrades into a
// deterministic mean predictor instead of crashing
func DefaultCycleBundle() *CycleBundle {
	rng := rand.New(rand.NewSource(42))

	samples := make([][]float64, 100)
	mean := 0.0
	for i := range samples {
		row := make([]float64, CycleFeatureCount)
		for j := range row {
			row[j] = rng.Float64()
		}
		samples[i] = row

		length := 28 + 3*rng.NormFloat64()
		mean += length
	}
	mean /= float64(len(samples))

	return &CycleBundle{
		Version: DefaultVersion,
		Trained: true,
		Scaler:  *FitScaler(samples),
		Forest:  Forest{Trees: []Tree{Leaf(mean)}},
		Linear:  Linear{Intercept: mean, Coefficients: make([]float64, CycleFeatureCount)},
	}
}

// DefaultPCOSBundle builds the fallback PCOS bundle: both ensemble
// members predict the synthetic class prior
func DefaultPCOSBundle() *PCOSBundle {
	rng := rand.New(rand.NewSource(42))

	samples := make([][]float64, 100)
	positives := 0
	for i := range samples {
		row := make([]float64, PCOSFeatureCount)
		for j := range row {
			row[j] = rng.Float64()
		}
		samples[i] = row

		if rng.Float64() < 0.3 {
			positives++
		}
	}
	prior := float64(positives) / float64(len(samples))

	return &PCOSBundle{
		Version:  DefaultVersion,
		Trained:  true,
		Scaler:   *FitScaler(samples),
		Forest:   Forest{Trees: []Tree{Leaf(prior)}},
		Boosting: Boosting{BaseScore: logit(prior), LearningRate: 0.1},
	}
}
