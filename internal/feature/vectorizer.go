// Package feature turns normalized documents into fixed-dimension TF-IDF
// vectors. The vectorizer is fit once at training time; after that its state
// is immutable and Transform is safe for concurrent use.
package feature

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Options configures vocabulary construction and term weighting.
type Options struct {
	// StopWords removes the fixed English stop-word list before n-gram
	// construction.
	StopWords bool `json:"stop_words"`

	// MaxDF excludes terms appearing in more than this fraction of
	// documents. Zero means no upper cutoff.
	MaxDF float64 `json:"max_df"`

	// MinDF excludes terms appearing in fewer than this many documents.
	MinDF int `json:"min_df"`

	// NgramMax includes contiguous word sequences of length 1 up to this
	// value. Zero or one means unigrams only.
	NgramMax int `json:"ngram_max"`

	// MaxFeatures caps the vocabulary size, keeping the terms with the
	// highest corpus frequency. Zero means unbounded.
	MaxFeatures int `json:"max_features"`

	// SublinearTF replaces raw term frequency with 1+ln(tf).
	SublinearTF bool `json:"sublinear_tf"`

	// StripAccents folds accented characters to their base form.
	StripAccents bool `json:"strip_accents"`
}

// DefaultOptions matches the configuration the shipped model was trained
// with.
func DefaultOptions() Options {
	return Options{
		StopWords:    true,
		MaxDF:        0.90,
		MinDF:        2,
		NgramMax:     2,
		MaxFeatures:  10000,
		SublinearTF:  true,
		StripAccents: true,
	}
}

// Vectorizer is a two-phase TF-IDF transform: Fit learns the vocabulary and
// IDF weights, Transform maps documents onto that fixed vocabulary.
type Vectorizer struct {
	Opts       Options        `json:"options"`
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer(opts Options) *Vectorizer {
	return &Vectorizer{Opts: opts}
}

// Fitted reports whether Fit has been run.
func (v *Vectorizer) Fitted() bool {
	return len(v.Vocabulary) > 0
}

// NumFeatures returns the fixed output dimensionality.
func (v *Vectorizer) NumFeatures() int {
	return len(v.Vocabulary)
}

// Fit learns the vocabulary and IDF weights from the given documents.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("vectorizer: cannot fit on zero documents")
	}

	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)
	for _, doc := range docs {
		terms := v.analyze(doc)
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			corpusFreq[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	n := len(docs)
	maxCount := n
	if v.Opts.MaxDF > 0 {
		maxCount = int(v.Opts.MaxDF * float64(n))
	}
	minCount := v.Opts.MinDF
	if minCount < 1 {
		minCount = 1
	}

	kept := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df > maxCount || df < minCount {
			continue
		}
		kept = append(kept, term)
	}
	if len(kept) == 0 {
		return fmt.Errorf("vectorizer: no terms survive document-frequency pruning")
	}

	if v.Opts.MaxFeatures > 0 && len(kept) > v.Opts.MaxFeatures {
		// Rank by corpus frequency, ties broken lexicographically so the
		// cut is deterministic.
		sort.Slice(kept, func(i, j int) bool {
			if corpusFreq[kept[i]] != corpusFreq[kept[j]] {
				return corpusFreq[kept[i]] > corpusFreq[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:v.Opts.MaxFeatures]
	}

	sort.Strings(kept)
	v.Vocabulary = make(map[string]int, len(kept))
	v.IDF = make([]float64, len(kept))
	for i, term := range kept {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}
	return nil
}

// Transform maps one document onto the fitted vocabulary as an L2-normalized
// TF-IDF vector. Documents with no known terms yield an all-zero vector of
// the fitted dimensionality.
func (v *Vectorizer) Transform(doc string) SparseVector {
	counts := make(map[int]float64)
	for _, t := range v.analyze(doc) {
		if i, ok := v.Vocabulary[t]; ok {
			counts[i]++
		}
	}

	vec := SparseVector{Dim: len(v.Vocabulary)}
	if len(counts) == 0 {
		return vec
	}

	vec.Indices = make([]int, 0, len(counts))
	for i := range counts {
		vec.Indices = append(vec.Indices, i)
	}
	sort.Ints(vec.Indices)

	vec.Values = make([]float64, len(vec.Indices))
	for k, i := range vec.Indices {
		tf := counts[i]
		if v.Opts.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		vec.Values[k] = tf * v.IDF[i]
	}

	if norm := vec.Norm(); norm > 0 {
		vec.scale(1 / norm)
	}
	return vec
}

// TransformAll transforms a batch of documents.
func (v *Vectorizer) TransformAll(docs []string) []SparseVector {
	out := make([]SparseVector, len(docs))
	for i, doc := range docs {
		out[i] = v.Transform(doc)
	}
	return out
}

// analyze splits a normalized document into vocabulary terms: accent
// folding, word tokens of two or more characters, optional stop-word
// removal, then n-gram expansion.
func (v *Vectorizer) analyze(doc string) []string {
	if v.Opts.StripAccents {
		doc = stripAccents(doc)
	}

	words := make([]string, 0, 32)
	for _, w := range strings.Fields(doc) {
		if utf8.RuneCountInString(w) < 2 {
			continue
		}
		if v.Opts.StopWords && isStopWord(w) {
			continue
		}
		words = append(words, w)
	}

	nmax := v.Opts.NgramMax
	if nmax < 2 {
		return words
	}

	terms := make([]string, 0, len(words)*nmax)
	for n := 1; n <= nmax; n++ {
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
