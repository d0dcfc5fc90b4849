package ensemble

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/LegendarySumit/TruthShield/internal/feature"
)

// treeNode is one node of a decision tree. Feature == -1 marks a leaf; for
// internal nodes, samples with value <= Threshold go left.
type treeNode struct {
	Feature   int        `json:"f"`
	Threshold float64    `json:"t"`
	Left      int        `json:"l"`
	Right     int        `json:"r"`
	Proba     [2]float64 `json:"p"`
}

type decisionTree struct {
	Nodes []treeNode `json:"nodes"`
}

// RandomForest is a bagged ensemble of depth-bounded decision trees with
// per-node feature subsampling. It captures nonlinear feature interactions
// the linear members miss, at the cost of overfitting templated phrasing,
// which is why the vote down-weights it.
type RandomForest struct {
	NumTrees int            `json:"num_trees"`
	MaxDepth int            `json:"max_depth"`
	Seed     int64          `json:"seed"`
	Trees    []decisionTree `json:"trees"`
}

// NewRandomForest returns an untrained forest with the shipped
// hyperparameters.
func NewRandomForest() *RandomForest {
	return &RandomForest{
		NumTrees: 50,
		MaxDepth: 20,
		Seed:     42,
	}
}

// Fit grows the forest from bootstrap samples of the training data.
func (f *RandomForest) Fit(X []feature.SparseVector, y []int) error {
	if err := checkTrainingSet(X, y); err != nil {
		return fmt.Errorf("random forest: %w", err)
	}

	n := len(X)
	sw := sampleWeights(y)
	dim := X[0].Dim
	mtry := int(math.Sqrt(float64(dim)))
	if mtry < 1 {
		mtry = 1
	}

	f.Trees = make([]decisionTree, f.NumTrees)
	for t := 0; t < f.NumTrees; t++ {
		rng := rand.New(rand.NewSource(f.Seed + int64(t)))

		sample := make([]int, n)
		for i := range sample {
			sample[i] = rng.Intn(n)
		}

		b := &treeBuilder{
			X:        X,
			y:        y,
			sw:       sw,
			dim:      dim,
			mtry:     mtry,
			maxDepth: f.MaxDepth,
			rng:      rng,
		}
		b.grow(sample, 0)
		f.Trees[t] = decisionTree{Nodes: b.nodes}
	}
	return nil
}

// PredictProba averages the leaf class distributions across all trees.
func (f *RandomForest) PredictProba(x feature.SparseVector) [2]float64 {
	var sum [2]float64
	for i := range f.Trees {
		p := f.Trees[i].proba(x)
		sum[0] += p[0]
		sum[1] += p[1]
	}
	k := float64(len(f.Trees))
	if k == 0 {
		return [2]float64{0.5, 0.5}
	}
	return [2]float64{sum[0] / k, sum[1] / k}
}

// Predict returns the most probable class.
func (f *RandomForest) Predict(x feature.SparseVector) int {
	if p := f.PredictProba(x); p[1] > p[0] {
		return 1
	}
	return 0
}

func (t *decisionTree) proba(x feature.SparseVector) [2]float64 {
	i := 0
	for {
		node := t.Nodes[i]
		if node.Feature < 0 {
			return node.Proba
		}
		if x.At(node.Feature) <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

type treeBuilder struct {
	X        []feature.SparseVector
	y        []int
	sw       []float64
	dim      int
	mtry     int
	maxDepth int
	rng      *rand.Rand
	nodes    []treeNode
}

// grow builds the subtree for the given sample indices and returns its node
// index.
func (b *treeBuilder) grow(samples []int, depth int) int {
	var wsum [2]float64
	for _, i := range samples {
		wsum[b.y[i]] += b.sw[i]
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, treeNode{Feature: -1, Proba: leafProba(wsum)})

	if depth >= b.maxDepth || len(samples) < 2 || wsum[0] == 0 || wsum[1] == 0 {
		return idx
	}

	featIdx, threshold, ok := b.bestSplit(samples, wsum)
	if !ok {
		return idx
	}

	var left, right []int
	for _, i := range samples {
		if b.X[i].At(featIdx) <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return idx
	}

	b.nodes[idx].Feature = featIdx
	b.nodes[idx].Threshold = threshold
	b.nodes[idx].Left = b.grow(left, depth+1)
	b.nodes[idx].Right = b.grow(right, depth+1)
	return idx
}

// bestSplit searches a random subset of features for the threshold with the
// lowest weighted Gini impurity.
func (b *treeBuilder) bestSplit(samples []int, total [2]float64) (int, float64, bool) {
	bestGini := gini(total)
	bestFeat, bestThr := -1, 0.0

	for _, feat := range b.rng.Perm(b.dim)[:b.mtry] {
		values := make([]float64, 0, len(samples))
		for _, i := range samples {
			values = append(values, b.X[i].At(feat))
		}
		sort.Float64s(values)

		for k := 1; k < len(values); k++ {
			if values[k] == values[k-1] {
				continue
			}
			thr := (values[k] + values[k-1]) / 2

			var lw, rw [2]float64
			for _, i := range samples {
				if b.X[i].At(feat) <= thr {
					lw[b.y[i]] += b.sw[i]
				} else {
					rw[b.y[i]] += b.sw[i]
				}
			}
			lt := lw[0] + lw[1]
			rt := rw[0] + rw[1]
			if lt == 0 || rt == 0 {
				continue
			}
			g := (lt*gini(lw) + rt*gini(rw)) / (lt + rt)
			if g < bestGini-1e-12 {
				bestGini = g
				bestFeat = feat
				bestThr = thr
			}
		}
	}
	return bestFeat, bestThr, bestFeat >= 0
}

func gini(w [2]float64) float64 {
	total := w[0] + w[1]
	if total == 0 {
		return 0
	}
	p0 := w[0] / total
	p1 := w[1] / total
	return 1 - p0*p0 - p1*p1
}

func leafProba(w [2]float64) [2]float64 {
	total := w[0] + w[1]
	if total == 0 {
		return [2]float64{0.5, 0.5}
	}
	return [2]float64{w[0] / total, w[1] / total}
}
