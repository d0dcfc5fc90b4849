// Package ensemble implements the soft-voting classifier behind the local
// inference path: a regularized logistic regression, a calibrated linear
// SVM, and a bounded-depth random forest voting with weights 2:2:1. Every
// member uses balanced class weights because merged training data can be
// label-skewed. Training is deterministic under fixed seeds; a fitted model
// is immutable and safe for concurrent prediction.
package ensemble

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/LegendarySumit/TruthShield/internal/feature"
)

// LogisticRegression is a binary L2-regularized logistic classifier trained
// with stochastic gradient descent.
type LogisticRegression struct {
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	C            float64   `json:"c"`
	Epochs       int       `json:"epochs"`
	LearningRate float64   `json:"learning_rate"`
	Seed         int64     `json:"seed"`
}

// NewLogisticRegression returns an untrained model with the shipped
// hyperparameters.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		C:            1.0,
		Epochs:       100,
		LearningRate: 0.5,
		Seed:         42,
	}
}

// Fit trains the model on sparse feature vectors and binary labels.
func (l *LogisticRegression) Fit(X []feature.SparseVector, y []int) error {
	if err := checkTrainingSet(X, y); err != nil {
		return fmt.Errorf("logistic regression: %w", err)
	}

	dim := X[0].Dim
	n := len(X)
	sw := sampleWeights(y)
	lambda := 1 / (l.C * float64(n))

	l.Weights = make([]float64, dim)
	l.Bias = 0
	rng := rand.New(rand.NewSource(l.Seed))

	for epoch := 0; epoch < l.Epochs; epoch++ {
		lr := l.LearningRate / (1 + 0.02*float64(epoch))
		for _, i := range rng.Perm(n) {
			p := sigmoid(X[i].Dot(l.Weights) + l.Bias)
			g := (p - float64(y[i])) * sw[i]
			for k, idx := range X[i].Indices {
				l.Weights[idx] -= lr * g * X[i].Values[k]
			}
			l.Bias -= lr * g
		}
		// L2 shrinkage applied once per epoch.
		shrink := 1 - lr*lambda
		if shrink > 0 && shrink < 1 {
			for j := range l.Weights {
				l.Weights[j] *= shrink
			}
		}
	}
	return nil
}

// PredictProba returns the class distribution [P(credible), P(non-credible)].
func (l *LogisticRegression) PredictProba(x feature.SparseVector) [2]float64 {
	p1 := sigmoid(x.Dot(l.Weights) + l.Bias)
	return [2]float64{1 - p1, p1}
}

// Predict returns the most probable class.
func (l *LogisticRegression) Predict(x feature.SparseVector) int {
	if p := l.PredictProba(x); p[1] > p[0] {
		return 1
	}
	return 0
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// sampleWeights implements balanced class weighting: each sample of class c
// receives n / (2 * count(c)).
func sampleWeights(y []int) []float64 {
	n1 := 0
	for _, v := range y {
		if v == 1 {
			n1++
		}
	}
	n := len(y)
	n0 := n - n1

	w0, w1 := 1.0, 1.0
	if n0 > 0 {
		w0 = float64(n) / (2 * float64(n0))
	}
	if n1 > 0 {
		w1 = float64(n) / (2 * float64(n1))
	}

	out := make([]float64, n)
	for i, v := range y {
		if v == 1 {
			out[i] = w1
		} else {
			out[i] = w0
		}
	}
	return out
}

func checkTrainingSet(X []feature.SparseVector, y []int) error {
	if len(X) == 0 {
		return fmt.Errorf("empty training set")
	}
	if len(X) != len(y) {
		return fmt.Errorf("feature/label length mismatch: %d vs %d", len(X), len(y))
	}
	seen := [2]bool{}
	for i, v := range y {
		if v != 0 && v != 1 {
			return fmt.Errorf("label %d at row %d is not binary", v, i)
		}
		seen[v] = true
	}
	if !seen[0] || !seen[1] {
		return fmt.Errorf("training set must contain both classes")
	}
	for i := range X {
		if X[i].Dim != X[0].Dim {
			return fmt.Errorf("inconsistent vector dimensionality at row %d", i)
		}
	}
	return nil
}
