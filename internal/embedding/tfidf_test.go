package embedding_test

import (
	"context"
	"math"
	"testing"

	"github.com/raphaelgruber/movierec/internal/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedderInterface(t *testing.T) {
	var _ embedding.Embedder = (*embedding.TFIDF)(nil)
}

func TestTFIDFWeights(t *testing.T) {
	ctx := context.Background()
	v := embedding.NewTFIDF()

	vecs, err := v.FitTransform(ctx, []string{"apple banana", "apple cherry"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)

	assert.Equal(t, []string{"apple", "banana", "cherry"}, v.Vocabulary())
	assert.Equal(t, 3, v.Dimension())
	assert.Equal(t, 2, v.Documents())
	assert.Equal(t, embedding.TFIDFModel, v.Model())

	idfApple, ok := v.IDF("apple")
	require.True(t, ok)
	assert.InDelta(t, 1.0, idfApple, 1e-12)

	idfBanana, ok := v.IDF("banana")
	require.True(t, ok)
	assert.InDelta(t, math.Log(3.0/2.0)+1, idfBanana, 1e-12)

	// doc 0 = [apple, banana], L2-normalized.
	norm := math.Sqrt(1 + idfBanana*idfBanana)
	assert.Equal(t, []int{0, 1}, vecs[0].Indices)
	assert.InDelta(t, 1/norm, vecs[0].Values[0], 1e-12)
	assert.InDelta(t, idfBanana/norm, vecs[0].Values[1], 1e-12)
	assert.InDelta(t, 1.0, vecs[0].Norm(), 1e-12)

	_, ok = v.IDF("durian")
	assert.False(t, ok)
}

func TestTFIDFTermCounts(t *testing.T) {
	ctx := context.Background()
	v := embedding.NewTFIDF()
	vecs, err := v.FitTransform(ctx, []string{"war war peace", "peace"})
	require.NoError(t, err)

	// "war" appears twice in doc 0 and has the higher idf, so it dominates.
	dense := vecs[0].Dense(v.Dimension())
	assert.Greater(t, dense[1], dense[0])
}

func TestTFIDFDeterministic(t *testing.T) {
	ctx := context.Background()
	corpus := []string{
		"Action Adventure Fantasy Sam Worthington James Cameron",
		"Adventure Fantasy Action Johnny Depp Gore Verbinski",
		"Action Adventure Crime Daniel Craig Sam Mendes",
	}

	first, err := embedding.NewTFIDF().FitTransform(ctx, corpus)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := embedding.NewTFIDF().FitTransform(ctx, corpus)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTFIDFEmptyCorpus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		corpus []string
	}{
		{"no documents", nil},
		{"blank documents", []string{"    ", "", " a "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := embedding.NewTFIDF()
			vecs, err := v.FitTransform(ctx, tt.corpus)
			require.NoError(t, err)
			assert.Len(t, vecs, len(tt.corpus))
			assert.Equal(t, 0, v.Dimension())
			for _, vec := range vecs {
				assert.True(t, vec.IsZero())
			}
		})
	}
}

func TestTFIDFUnknownTerms(t *testing.T) {
	ctx := context.Background()
	v := embedding.NewTFIDF()
	require.NoError(t, v.Fit(ctx, []string{"alpha beta"}))

	vec, err := v.Embed(ctx, "gamma delta")
	require.NoError(t, err)
	assert.True(t, vec.IsZero())
	assert.Equal(t, 0.0, vec.Norm())
}

func TestTFIDFNotFitted(t *testing.T) {
	ctx := context.Background()
	v := embedding.NewTFIDF()

	_, err := v.Embed(ctx, "alpha")
	assert.ErrorIs(t, err, embedding.ErrNotFitted)

	_, err = v.EmbedBatch(ctx, []string{"alpha"})
	assert.ErrorIs(t, err, embedding.ErrNotFitted)
}

func TestTFIDFCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := embedding.NewTFIDF().FitTransform(ctx, []string{"alpha beta"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSparseVectorDot(t *testing.T) {
	a := embedding.SparseVector{Indices: []int{0, 2, 5}, Values: []float64{1, 2, 3}}
	b := embedding.SparseVector{Indices: []int{2, 3, 5}, Values: []float64{4, 7, 1}}

	assert.InDelta(t, 2*4+3*1, a.Dot(b), 1e-12)
	assert.InDelta(t, a.Dot(b), b.Dot(a), 1e-12)
	assert.Equal(t, 0.0, a.Dot(embedding.SparseVector{}))
	assert.Equal(t, []float64{1, 0, 2, 0, 0, 3}, a.Dense(6))
	assert.Equal(t, 3, a.Len())
}
