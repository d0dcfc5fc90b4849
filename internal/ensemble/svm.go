package ensemble

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/LegendarySumit/TruthShield/internal/feature"
)

// LinearSVM is a binary large-margin classifier trained by stochastic
// subgradient descent on the hinge loss. It emits raw margins, not
// probabilities; wrap it in a CalibratedSVM for probability output.
type LinearSVM struct {
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	C            float64   `json:"c"`
	Epochs       int       `json:"epochs"`
	LearningRate float64   `json:"learning_rate"`
	Seed         int64     `json:"seed"`
}

// NewLinearSVM returns an untrained model with the shipped hyperparameters.
func NewLinearSVM() *LinearSVM {
	return &LinearSVM{
		C:            0.5,
		Epochs:       100,
		LearningRate: 0.2,
		Seed:         42,
	}
}

// Fit trains the margin classifier on binary labels.
func (s *LinearSVM) Fit(X []feature.SparseVector, y []int) error {
	if err := checkTrainingSet(X, y); err != nil {
		return fmt.Errorf("linear svm: %w", err)
	}

	n := len(X)
	sw := sampleWeights(y)
	lambda := 1 / (s.C * float64(n))

	s.Weights = make([]float64, X[0].Dim)
	s.Bias = 0
	rng := rand.New(rand.NewSource(s.Seed))

	for epoch := 0; epoch < s.Epochs; epoch++ {
		lr := s.LearningRate / (1 + 0.02*float64(epoch))
		for _, i := range rng.Perm(n) {
			yi := float64(2*y[i] - 1) // map {0,1} -> {-1,+1}
			if yi*s.Decision(X[i]) < 1 {
				for k, idx := range X[i].Indices {
					s.Weights[idx] += lr * sw[i] * yi * X[i].Values[k]
				}
				s.Bias += lr * sw[i] * yi
			}
		}
		shrink := 1 - lr*lambda
		if shrink > 0 && shrink < 1 {
			for j := range s.Weights {
				s.Weights[j] *= shrink
			}
		}
	}
	return nil
}

// Decision returns the signed margin for x; positive means class 1.
func (s *LinearSVM) Decision(x feature.SparseVector) float64 {
	return x.Dot(s.Weights) + s.Bias
}

// Calibrator maps raw margins to probabilities with a Platt sigmoid
// P(y=1|f) = 1 / (1 + exp(A*f + B)).
type Calibrator struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Fit estimates A and B by gradient descent on the cross-entropy of
// Platt-smoothed targets.
func (c *Calibrator) Fit(scores []float64, y []int) error {
	if len(scores) == 0 || len(scores) != len(y) {
		return fmt.Errorf("calibrator: bad input lengths %d/%d", len(scores), len(y))
	}

	n1 := 0
	for _, v := range y {
		if v == 1 {
			n1++
		}
	}
	n0 := len(y) - n1
	tPos := (float64(n1) + 1) / (float64(n1) + 2)
	tNeg := 1 / (float64(n0) + 2)

	c.A = -1
	c.B = math.Log((float64(n0) + 1) / (float64(n1) + 1))

	const iters = 500
	lr := 0.01
	for it := 0; it < iters; it++ {
		var gA, gB float64
		for i, f := range scores {
			t := tNeg
			if y[i] == 1 {
				t = tPos
			}
			p := sigmoid(-(c.A*f + c.B))
			gA += (t - p) * f
			gB += (t - p)
		}
		c.A -= lr * gA / float64(len(scores))
		c.B -= lr * gB / float64(len(scores))
	}
	return nil
}

// Prob returns P(y=1) for a raw margin.
func (c *Calibrator) Prob(score float64) float64 {
	return sigmoid(-(c.A*score + c.B))
}

// CalibratedSVM pairs a LinearSVM with a Platt calibration layer so it can
// participate in soft voting.
type CalibratedSVM struct {
	SVM *LinearSVM  `json:"svm"`
	Cal *Calibrator `json:"calibrator"`
}

// NewCalibratedSVM returns an untrained calibrated classifier.
func NewCalibratedSVM() *CalibratedSVM {
	return &CalibratedSVM{SVM: NewLinearSVM(), Cal: &Calibrator{}}
}

// Fit trains the margin classifier, then fits the sigmoid on its decision
// values over the training set.
func (c *CalibratedSVM) Fit(X []feature.SparseVector, y []int) error {
	if err := c.SVM.Fit(X, y); err != nil {
		return err
	}
	scores := make([]float64, len(X))
	for i := range X {
		scores[i] = c.SVM.Decision(X[i])
	}
	return c.Cal.Fit(scores, y)
}

// PredictProba returns the calibrated class distribution.
func (c *CalibratedSVM) PredictProba(x feature.SparseVector) [2]float64 {
	p1 := c.Cal.Prob(c.SVM.Decision(x))
	return [2]float64{1 - p1, p1}
}

// Predict returns the most probable class.
func (c *CalibratedSVM) Predict(x feature.SparseVector) int {
	if p := c.PredictProba(x); p[1] > p[0] {
		return 1
	}
	return 0
}
