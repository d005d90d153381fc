package embedding

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/raphaelgruber/movierec/internal/parser"
)

// TFIDFModel is the name reported by TFIDF.Model.
const TFIDFModel = "tfidf"

// ctxCheckEvery is how many documents are processed between context checks.
const ctxCheckEvery = 512

// TFIDF is a term-frequency / inverse-document-frequency vectorizer.
//
// Terms come from parser.Tokenize. The vocabulary is sorted, so the same
// corpus always produces the same feature indices. Weights are raw counts
// scaled by the smoothed idf ln((1+n)/(1+df))+1, and each vector is
// L2-normalized. A text with no known terms maps to the zero vector.
//
// After Fit, TFIDF is safe for concurrent use.
type TFIDF struct {
	mu     sync.RWMutex
	vocab  map[string]int
	terms  []string
	idf    []float64
	docs   int
	fitted bool
}

// NewTFIDF creates an unfitted vectorizer.
func NewTFIDF() *TFIDF {
	return &TFIDF{}
}

// Fit learns the vocabulary and idf weights from corpus.
// An empty corpus, or one with no tokens, yields a zero-dimensional space.
func (t *TFIDF) Fit(ctx context.Context, corpus []string) error {
	df := make(map[string]int)
	for i, doc := range corpus {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		seen := make(map[string]bool)
		for _, tok := range parser.Tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	t.mu.Lock()
	t.vocab = vocab
	t.terms = terms
	t.idf = idf
	t.docs = len(corpus)
	t.fitted = true
	t.mu.Unlock()
	return nil
}

// FitTransform fits the corpus and returns one vector per document.
func (t *TFIDF) FitTransform(ctx context.Context, corpus []string) ([]SparseVector, error) {
	if err := t.Fit(ctx, corpus); err != nil {
		return nil, err
	}
	return t.EmbedBatch(ctx, corpus)
}

// Embed vectorizes a single text with the fitted vocabulary.
// Terms not seen during Fit are ignored.
func (t *TFIDF) Embed(ctx context.Context, text string) (SparseVector, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.fitted {
		return SparseVector{}, ErrNotFitted
	}
	if err := ctx.Err(); err != nil {
		return SparseVector{}, err
	}
	return t.transform(text), nil
}

// EmbedBatch vectorizes texts in order.
func (t *TFIDF) EmbedBatch(ctx context.Context, texts []string) ([]SparseVector, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.fitted {
		return nil, ErrNotFitted
	}

	out := make([]SparseVector, len(texts))
	for i, text := range texts {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out[i] = t.transform(text)
	}
	return out, nil
}

// transform builds the normalized vector for text. Caller must hold a read lock.
func (t *TFIDF) transform(text string) SparseVector {
	counts := make(map[int]int)
	for _, tok := range parser.Tokenize(text) {
		if idx, ok := t.vocab[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	var norm float64
	for k, idx := range indices {
		w := float64(counts[idx]) * t.idf[idx]
		values[k] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for k := range values {
			values[k] /= norm
		}
	}

	return SparseVector{Indices: indices, Values: values}
}

// Model returns the vectorizer name.
func (t *TFIDF) Model() string {
	return TFIDFModel
}

// Dimension returns the vocabulary size.
func (t *TFIDF) Dimension() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.terms)
}

// Documents returns the number of documents seen by Fit.
func (t *TFIDF) Documents() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.docs
}

// Vocabulary returns the sorted vocabulary. Position is the feature index.
func (t *TFIDF) Vocabulary() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.terms))
	copy(out, t.terms)
	return out
}

// IDF returns the idf weight of term and whether it is in the vocabulary.
func (t *TFIDF) IDF(term string) (float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	idx, ok := t.vocab[term]
	if !ok {
		return 0, false
	}
	return t.idf[idx], true
}
