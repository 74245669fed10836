package model

import "math"

// Node is a single decision-tree node in array form, as exported by the
// offline training pipeline. Feature < 0 marks a leaf
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is a decision tree over a fixed-order feature vector
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Predict walks the tree for a single feature vector.
// An empty tree predicts 0
func (t *Tree) Predict(x []float64) float64 {
	if len(t.Nodes) == 0 {
		return 0
	}

	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Feature < 0 {
			return node.Value
		}
		if node.Feature >= len(x) || node.Left < 0 || node.Left >= len(t.Nodes) ||
			node.Right < 0 || node.Right >= len(t.Nodes) {
			// Malformed node, stop at its value rather than panic
			return node.Value
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// Leaf builds a single-leaf tree predicting a constant value
func Leaf(value float64) Tree {
	return Tree{Nodes: []Node{{Feature: -1, Value: value}}}
}

// Forest is a bagging ensemble of decision trees. For regression the
// leaf values are targets; for classification they are class-1
// probabilities. Either way the forest output is the tree mean
type Forest struct {
	Trees []Tree `json:"trees"`
}

// Predict returns the mean prediction over all trees
func (f *Forest) Predict(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	sum := 0.0
	for i := range f.Trees {
		sum += f.Trees[i].Predict(x)
	}
	return sum / float64(len(f.Trees))
}

// FeatureImportance approximates per-feature importance as the
// normalized split count across all trees. Zero when the forest has
// no internal splits (e.g. the synthetic default bundle)
func (f *Forest) FeatureImportance(numFeatures int) []float64 {
	counts := make([]float64, numFeatures)
	total := 0.0
	for i := range f.Trees {
		for _, node := range f.Trees[i].Nodes {
			if node.Feature >= 0 && node.Feature < numFeatures {
				counts[node.Feature]++
				total++
			}
		}
	}
	if total > 0 {
		for i := range counts {
			counts[i] /= total
		}
	}
	return counts
}

// Boosting is a gradient-boosting ensemble with a sigmoid link. The
// raw score is the base score plus the learning-rate-scaled sum of
// tree outputs
type Boosting struct {
	BaseScore    float64 `json:"base_score"`
	LearningRate float64 `json:"learning_rate"`
	Trees        []Tree  `json:"trees"`
}

// PredictProba returns the class-1 probability
func (b *Boosting) PredictProba(x []float64) float64 {
	score := b.BaseScore
	for i := range b.Trees {
		score += b.LearningRate * b.Trees[i].Predict(x)
	}
	return sigmoid(score)
}

// Linear is an ordinary linear regressor
type Linear struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// Predict returns the linear combination of the feature vector.
// Extra features beyond the coefficient count are ignored
func (l *Linear) Predict(x []float64) float64 {
	y := l.Intercept
	for i, c := range l.Coefficients {
		if i >= len(x) {
			break
		}
		y += c * x[i]
	}
	return y
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// logit is the inverse of sigmoid, clamped away from 0 and 1
func logit(p float64) float64 {
	const eps = 1e-9
	if p < eps {
		p = eps
	}
	if p > 1-eps {
		p = 1 - eps
	}
	return math.Log(p / (1 - p))
}
