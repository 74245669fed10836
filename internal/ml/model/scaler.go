package model

import "math"

// Scaler standardizes feature vectors with the per-column mean and
// standard deviation recorded at training time. It is immutable after
// load and shared across concurrent requests
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Transform returns a standardized copy of the feature vector.
// A zero (or missing) standard deviation leaves the column centered
// but unscaled
func (s *Scaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		mean := 0.0
		if i < len(s.Mean) {
			mean = s.Mean[i]
		}
		std := 1.0
		if i < len(s.Std) && s.Std[i] > 0 {
			std = s.Std[i]
		}
		out[i] = (v - mean) / std
	}
	return out
}

// FitScaler computes a scaler from column-major training samples
func FitScaler(samples [][]float64) *Scaler {
	if len(samples) == 0 {
		return &Scaler{}
	}

	dims := len(samples[0])
	mean := make([]float64, dims)
	std := make([]float64, dims)

	for _, row := range samples {
		for i := 0; i < dims && i < len(row); i++ {
			mean[i] += row[i]
		}
	}
	n := float64(len(samples))
	for i := range mean {
		mean[i] /= n
	}

	for _, row := range samples {
		for i := 0; i < dims && i < len(row); i++ {
			d := row[i] - mean[i]
			std[i] += d * d
		}
	}
	for i := range std {
		std[i] = math.Sqrt(std[i] / n)
	}

	return &Scaler{Mean: mean, Std: std}
}
