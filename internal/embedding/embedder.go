// Package embedding converts text into numeric feature vectors.
package embedding

import (
	"context"
	"errors"
)

// ErrNotFitted is returned when a vectorizer is used before Fit.
var ErrNotFitted = errors.New("vectorizer not fitted")

// Embedder defines the interface for text vectorizers.
type Embedder interface {
	// Embed generates a feature vector for a single text.
	Embed(ctx context.Context, text string) (SparseVector, error)

	// EmbedBatch generates feature vectors for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([]SparseVector, error)

	// Model returns the name of the vectorizer.
	Model() string

	// Dimension returns the size of the shared vector space.
	Dimension() int
}
