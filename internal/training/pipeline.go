// Package training builds the local classification artifacts from CSV
// datasets: it normalizes the corpus, fits the TF-IDF vectorizer and the
// voting ensemble on a stratified training split, evaluates on the held-out
// split and persists the result.
package training

import (
	"fmt"
	"log"
	"math/rand"
	"unicode/utf8"

	"github.com/LegendarySumit/TruthShield/internal/dataset"
	"github.com/LegendarySumit/TruthShield/internal/ensemble"
	"github.com/LegendarySumit/TruthShield/internal/feature"
	"github.com/LegendarySumit/TruthShield/internal/model"
	"github.com/LegendarySumit/TruthShield/internal/store"
	"github.com/LegendarySumit/TruthShield/internal/textnorm"
)

// Texts shorter than this after normalization carry no usable signal.
const minNormalizedLength = 6

// Config controls a training run. Zero values fall back to the defaults the
// shipped model was trained with.
type Config struct {
	// DataDir is the directory scanned for CSV datasets.
	DataDir string

	// ModelPath is the bbolt file the trained artifacts are written to.
	// Empty skips persistence, which the tests rely on.
	ModelPath string

	// TestFraction is the held-out share of the corpus.
	TestFraction float64

	// Seed drives the split and every stochastic fit.
	Seed int64

	// CVFolds is the fold count for the cross-validated baseline.
	CVFolds int
}

func (c *Config) applyDefaults() {
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		c.TestFraction = 0.15
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.CVFolds <= 1 {
		c.CVFolds = 5
	}
}

// ClassMetrics holds the per-class slice of the evaluation report.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report summarizes a completed training run.
type Report struct {
	Samples   int
	TrainSize int
	TestSize  int
	Features  int

	Accuracy float64
	// F1 treats the non-credible class as positive.
	F1 float64
	// Confusion is indexed [actual][predicted].
	Confusion [2][2]int
	PerClass  [2]ClassMetrics

	// CVScores are per-fold F1 scores of a logistic regression baseline
	// fit on the full corpus.
	CVScores []float64

	Sanity *SanityReport
}

// MeanCV returns the average of the cross-validation scores.
func (r *Report) MeanCV() float64 {
	if len(r.CVScores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range r.CVScores {
		sum += s
	}
	return sum / float64(len(r.CVScores))
}

// Run executes the full pipeline: load, normalize, split, fit, evaluate,
// persist, sanity-check. The sanity battery never fails the run; its result
// is reported for inspection.
func Run(cfg Config) (*Report, error) {
	cfg.applyDefaults()

	samples, err := dataset.Load(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	docs, labels := normalizeCorpus(samples)
	if err := checkCorpus(labels); err != nil {
		return nil, err
	}
	log.Printf("[INFO] training: %d usable samples (real=%d fake=%d)",
		len(docs), count(labels, 0), count(labels, 1))

	trainIdx, testIdx := stratifiedSplit(labels, cfg.TestFraction, cfg.Seed)

	trainDocs := pick(docs, trainIdx)
	trainY := pickInt(labels, trainIdx)

	vectorizer := feature.NewVectorizer(feature.DefaultOptions())
	if err := vectorizer.Fit(trainDocs); err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}
	log.Printf("[INFO] training: vectorizer fitted, %d features", vectorizer.NumFeatures())

	trainX := vectorizer.TransformAll(trainDocs)
	testX := vectorizer.TransformAll(pick(docs, testIdx))
	testY := pickInt(labels, testIdx)

	ens := ensemble.New()
	if err := ens.Fit(trainX, trainY); err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}

	report := &Report{
		Samples:   len(docs),
		TrainSize: len(trainIdx),
		TestSize:  len(testIdx),
		Features:  vectorizer.NumFeatures(),
	}
	evaluate(report, ens, testX, testY)

	report.CVScores = crossValidate(vectorizer.TransformAll(docs), labels, cfg.CVFolds, cfg.Seed)

	if cfg.ModelPath != "" {
		if err := persist(cfg.ModelPath, vectorizer, ens); err != nil {
			return nil, err
		}
		log.Printf("[INFO] training: artifacts saved to %s", cfg.ModelPath)
	}

	report.Sanity = runSanityBattery(vectorizer, ens)
	return report, nil
}

func normalizeCorpus(samples []model.Sample) ([]string, []int) {
	docs := make([]string, 0, len(samples))
	labels := make([]int, 0, len(samples))
	for _, s := range samples {
		normalized := textnorm.Normalize(s.Text)
		if utf8.RuneCountInString(normalized) < minNormalizedLength {
			continue
		}
		docs = append(docs, normalized)
		labels = append(labels, int(s.Label))
	}
	return docs, labels
}

func checkCorpus(labels []int) error {
	if count(labels, 0) == 0 || count(labels, 1) == 0 {
		return fmt.Errorf("training: corpus must contain both classes")
	}
	return nil
}

// stratifiedSplit partitions indices per class so the test split preserves
// the class balance of the corpus.
func stratifiedSplit(labels []int, testFraction float64, seed int64) (train, test []int) {
	rng := rand.New(rand.NewSource(seed))

	byClass := [2][]int{}
	for i, y := range labels {
		byClass[y] = append(byClass[y], i)
	}

	for _, idx := range byClass {
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		nTest := int(float64(len(idx)) * testFraction)
		if nTest < 1 && len(idx) > 1 {
			nTest = 1
		}
		test = append(test, idx[:nTest]...)
		train = append(train, idx[nTest:]...)
	}
	return train, test
}

func evaluate(r *Report, ens *ensemble.Ensemble, X []feature.SparseVector, y []int) {
	for i, x := range X {
		r.Confusion[y[i]][ens.Predict(x)]++
	}

	correct := r.Confusion[0][0] + r.Confusion[1][1]
	if len(y) > 0 {
		r.Accuracy = float64(correct) / float64(len(y))
	}

	for c := 0; c < 2; c++ {
		tp := float64(r.Confusion[c][c])
		fp := float64(r.Confusion[1-c][c])
		fn := float64(r.Confusion[c][1-c])
		m := ClassMetrics{Support: r.Confusion[c][0] + r.Confusion[c][1]}
		if tp+fp > 0 {
			m.Precision = tp / (tp + fp)
		}
		if tp+fn > 0 {
			m.Recall = tp / (tp + fn)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.PerClass[c] = m
	}
	r.F1 = r.PerClass[1].F1
}

// crossValidate scores a logistic regression baseline with stratified
// k-fold F1, mirroring the evaluation the shipped model was tuned with.
func crossValidate(X []feature.SparseVector, y []int, folds int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))

	assign := make([]int, len(y))
	byClass := [2][]int{}
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	for _, idx := range byClass {
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		for pos, i := range idx {
			assign[i] = pos % folds
		}
	}

	scores := make([]float64, 0, folds)
	for fold := 0; fold < folds; fold++ {
		var trainX, testX []feature.SparseVector
		var trainY, testY []int
		for i := range y {
			if assign[i] == fold {
				testX = append(testX, X[i])
				testY = append(testY, y[i])
			} else {
				trainX = append(trainX, X[i])
				trainY = append(trainY, y[i])
			}
		}

		lr := ensemble.NewLogisticRegression()
		if err := lr.Fit(trainX, trainY); err != nil {
			log.Printf("[WARN] training: cv fold %d skipped: %v", fold, err)
			continue
		}

		var tp, fp, fn float64
		for i, x := range testX {
			pred := lr.Predict(x)
			switch {
			case pred == 1 && testY[i] == 1:
				tp++
			case pred == 1 && testY[i] == 0:
				fp++
			case pred == 0 && testY[i] == 1:
				fn++
			}
		}
		var f1 float64
		if 2*tp+fp+fn > 0 {
			f1 = 2 * tp / (2*tp + fp + fn)
		}
		scores = append(scores, f1)
	}
	return scores
}

func persist(path string, v *feature.Vectorizer, e *ensemble.Ensemble) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Save(v, e, textnorm.Version)
}

func pick(src []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}

func pickInt(src []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}

func count(labels []int, class int) int {
	n := 0
	for _, y := range labels {
		if y == class {
			n++
		}
	}
	return n
}
