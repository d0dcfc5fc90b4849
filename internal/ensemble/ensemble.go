package ensemble

import (
	"fmt"

	"github.com/LegendarySumit/TruthShield/internal/feature"
)

// Member is a probabilistic binary classifier that can join the soft vote.
type Member interface {
	Fit(X []feature.SparseVector, y []int) error
	PredictProba(x feature.SparseVector) [2]float64
}

// Ensemble soft-votes a logistic regression, a calibrated linear SVM, and a
// random forest. The forest carries half the weight of the linear members.
type Ensemble struct {
	LR          *LogisticRegression `json:"lr"`
	SVM         *CalibratedSVM      `json:"svm"`
	RF          *RandomForest       `json:"rf"`
	VoteWeights [3]float64          `json:"vote_weights"`
}

// New returns an untrained ensemble with the shipped members and vote
// weights.
func New() *Ensemble {
	return &Ensemble{
		LR:          NewLogisticRegression(),
		SVM:         NewCalibratedSVM(),
		RF:          NewRandomForest(),
		VoteWeights: [3]float64{2, 2, 1},
	}
}

// Fit trains every member on the same data.
func (e *Ensemble) Fit(X []feature.SparseVector, y []int) error {
	if err := checkTrainingSet(X, y); err != nil {
		return fmt.Errorf("ensemble: %w", err)
	}
	for _, m := range []Member{e.LR, e.SVM, e.RF} {
		if err := m.Fit(X, y); err != nil {
			return err
		}
	}
	return nil
}

// PredictProba returns the weight-normalized average of the members' class
// distributions. It never fails for a well-formed vector.
func (e *Ensemble) PredictProba(x feature.SparseVector) [2]float64 {
	members := []Member{e.LR, e.SVM, e.RF}

	var sum [2]float64
	var wTotal float64
	for i, m := range members {
		w := e.VoteWeights[i]
		p := m.PredictProba(x)
		sum[0] += w * p[0]
		sum[1] += w * p[1]
		wTotal += w
	}
	if wTotal == 0 {
		return [2]float64{0.5, 0.5}
	}
	return [2]float64{sum[0] / wTotal, sum[1] / wTotal}
}

// Predict returns the most probable class.
func (e *Ensemble) Predict(x feature.SparseVector) int {
	if p := e.PredictProba(x); p[1] > p[0] {
		return 1
	}
	return 0
}
