package service

import (
	"strings"
	"testing"

	"github.com/LegendarySumit/TruthShield/internal/ensemble"
	"github.com/LegendarySumit/TruthShield/internal/feature"
	"github.com/LegendarySumit/TruthShield/internal/model"
	"github.com/LegendarySumit/TruthShield/internal/textnorm"
)

// trainTinyModel fits a small but representative artifact pair: templated
// sensational texts against sober factual ones.
func trainTinyModel(t *testing.T) *LocalClassifier {
	t.Helper()

	fake := []string{
		"BREAKING: Secret cure they don't want you to know about!!! Share NOW!!!",
		"SHOCKING truth EXPOSED: the government is hiding everything from you!!!",
		"BREAKING ALERT: Doctors hate this trick! They don't want you to see it!!!",
		"EXPOSED: Leaked documents PROVE the shocking conspiracy!!! Wake up people!!!",
		"URGENT WARNING: Share this before they delete it!!! The truth is banned!!!",
		"You won't BELIEVE what was leaked! SHOCKING bombshell they are hiding!!!",
		"BREAKING: Miracle cure doctors won't tell you about!!! Banned everywhere!!!",
		"WAKE UP: The shocking truth about vaccines EXPOSED in leaked files!!!",
	}
	real := []string{
		"The Federal Reserve raised interest rates by 0.25% on Wednesday, citing persistent inflation concerns.",
		"The Federal Reserve held interest rates steady on Wednesday, citing easing inflation concerns.",
		"Researchers published a peer-reviewed study on inflation trends in the journal Nature on Wednesday.",
		"City officials announced the interest rates decision after a scheduled policy meeting on Wednesday.",
		"Economists said persistent inflation concerns shaped the central bank policy decision this quarter.",
		"Researchers at the university published a study citing data from the national statistics office.",
		"The committee raised its growth forecast on Wednesday, citing stronger consumer spending data.",
		"Officials announced the infrastructure budget after the council vote on Wednesday morning.",
	}

	docs := make([]string, 0, len(fake)+len(real))
	labels := make([]int, 0, len(fake)+len(real))
	for _, s := range fake {
		docs = append(docs, textnorm.Normalize(s))
		labels = append(labels, 1)
	}
	for _, s := range real {
		docs = append(docs, textnorm.Normalize(s))
		labels = append(labels, 0)
	}

	v := feature.NewVectorizer(feature.Options{
		StopWords:   true,
		MinDF:       1,
		NgramMax:    2,
		SublinearTF: true,
	})
	if err := v.Fit(docs); err != nil {
		t.Fatalf("fit vectorizer: %v", err)
	}

	e := ensemble.New()
	e.RF.NumTrees = 10
	if err := e.Fit(v.TransformAll(docs), labels); err != nil {
		t.Fatalf("fit ensemble: %v", err)
	}

	lc, err := NewLocalClassifier(v, e)
	if err != nil {
		t.Fatalf("NewLocalClassifier: %v", err)
	}
	return lc
}

func TestLocalClassifierConspiracyText(t *testing.T) {
	lc := trainTinyModel(t)

	in := "BREAKING: Government caught putting mind control drugs in tap water!!! They don't want you to know! Share NOW!!!"
	v, err := lc.Classify(in)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if v.Prediction != "Fake" {
		t.Errorf("prediction = %q, want Fake (verdict %+v)", v.Prediction, v)
	}
	if v.Confidence < 0.5 || v.Confidence > 1 {
		t.Errorf("confidence %f outside [0.5, 1]", v.Confidence)
	}
}

func TestLocalClassifierCredibleText(t *testing.T) {
	lc := trainTinyModel(t)

	in := "The Federal Reserve raised interest rates by 0.25% on Wednesday, citing persistent inflation concerns."
	v, err := lc.Classify(in)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if v.Prediction != "Real" {
		t.Errorf("prediction = %q, want Real (verdict %+v)", v.Prediction, v)
	}
}

func TestLocalClassifierEmptyAfterNormalization(t *testing.T) {
	lc := trainTinyModel(t)

	// Normalizes to nothing the vectorizer knows; must still return a
	// well-formed verdict, never an error.
	v, err := lc.Classify("... --- ...")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if v.Prediction != "Real" && v.Prediction != "Fake" {
		t.Errorf("prediction = %q", v.Prediction)
	}
	if v.Explanation == "" {
		t.Error("explanation must not be empty")
	}
}

func TestLocalClassifierExplanationBands(t *testing.T) {
	tests := []struct {
		label      model.Label
		confidence float64
		wantPhrase string
	}{
		{label: model.LabelCredible, confidence: 0.95, wantPhrase: "highly confident that this is a real"},
		{label: model.LabelCredible, confidence: 0.7, wantPhrase: "some uncertainty"},
		{label: model.LabelNonCredible, confidence: 0.95, wantPhrase: "highly confident that this is a fake"},
		{label: model.LabelNonCredible, confidence: 0.7, wantPhrase: "cross-reference"},
	}

	for _, tt := range tests {
		got := localExplanation(tt.label, tt.confidence)
		if !strings.Contains(got, tt.wantPhrase) {
			t.Errorf("localExplanation(%d, %f) = %q, want phrase %q", tt.label, tt.confidence, got, tt.wantPhrase)
		}
	}
}

func TestNewLocalClassifierValidation(t *testing.T) {
	if _, err := NewLocalClassifier(nil, nil); err == nil {
		t.Error("expected error for nil artifacts")
	}
	if _, err := NewLocalClassifier(feature.NewVectorizer(feature.DefaultOptions()), ensemble.New()); err == nil {
		t.Error("expected error for unfitted vectorizer")
	}
}
