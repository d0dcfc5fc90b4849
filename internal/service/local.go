package service

import (
	"fmt"

	"github.com/LegendarySumit/TruthShield/internal/ensemble"
	"github.com/LegendarySumit/TruthShield/internal/feature"
	"github.com/LegendarySumit/TruthShield/internal/model"
	"github.com/LegendarySumit/TruthShield/internal/textnorm"
)

// LocalClassifier is the style-based fallback path: normalizer, fitted
// vectorizer and ensemble composed into a single text classifier. It judges
// writing style, not truth.
type LocalClassifier struct {
	vectorizer *feature.Vectorizer
	ensemble   *ensemble.Ensemble
}

// NewLocalClassifier wraps a trained artifact pair.
func NewLocalClassifier(v *feature.Vectorizer, e *ensemble.Ensemble) (*LocalClassifier, error) {
	if v == nil || e == nil {
		return nil, fmt.Errorf("local classifier: nil artifact")
	}
	if !v.Fitted() {
		return nil, fmt.Errorf("local classifier: vectorizer is not fitted")
	}
	return &LocalClassifier{vectorizer: v, ensemble: e}, nil
}

// Classify runs text through normalize, vectorize and the ensemble vote.
func (l *LocalClassifier) Classify(text string) (*model.Verdict, error) {
	normalized := textnorm.Normalize(text)
	vec := l.vectorizer.Transform(normalized)

	proba := l.ensemble.PredictProba(vec)
	label := model.LabelCredible
	if proba[1] > proba[0] {
		label = model.LabelNonCredible
	}
	confidence := proba[label]

	return &model.Verdict{
		Prediction:  label.String(),
		Confidence:  confidence,
		Explanation: localExplanation(label, confidence),
	}, nil
}

// localExplanation produces the confidence-banded wording for the local
// path.
func localExplanation(label model.Label, confidence float64) string {
	if label == model.LabelCredible {
		if confidence > 0.9 {
			return "The model is highly confident that this is a real news article based on its textual content and structure."
		}
		return "The model predicts this is a real news article, but with some uncertainty. It shares some characteristics with both real and fake news."
	}
	if confidence > 0.9 {
		return "The model is highly confident that this is a fake news article. It likely contains language patterns commonly found in fabricated stories."
	}
	return "The model predicts this is a fake news article, but with some uncertainty. It's advisable to cross-reference with other sources."
}
