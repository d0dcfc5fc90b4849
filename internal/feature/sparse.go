package feature

import (
	"math"
	"sort"
)

// SparseVector is a fixed-dimension vector storing only its nonzero entries,
// with indices kept in ascending order.
type SparseVector struct {
	Dim     int       `json:"dim"`
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

// At returns the value at index i, zero when the entry is absent.
func (v SparseVector) At(i int) float64 {
	pos := sort.SearchInts(v.Indices, i)
	if pos < len(v.Indices) && v.Indices[pos] == i {
		return v.Values[pos]
	}
	return 0
}

// Norm returns the L2 norm of the vector.
func (v SparseVector) Norm() float64 {
	sum := 0.0
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product with a dense weight slice. Indices beyond
// len(w) are ignored.
func (v SparseVector) Dot(w []float64) float64 {
	sum := 0.0
	for k, i := range v.Indices {
		if i < len(w) {
			sum += v.Values[k] * w[i]
		}
	}
	return sum
}

// scale multiplies every stored value in place.
func (v SparseVector) scale(s float64) {
	for i := range v.Values {
		v.Values[i] *= s
	}
}
