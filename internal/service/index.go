package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/raphaelgruber/movierec/internal/dataset"
	"github.com/raphaelgruber/movierec/internal/embedding"
	"github.com/raphaelgruber/movierec/internal/match"
	"github.com/raphaelgruber/movierec/internal/metrics"
	"github.com/raphaelgruber/movierec/internal/models"
	"github.com/raphaelgruber/movierec/internal/parser"
	"github.com/raphaelgruber/movierec/internal/similarity"
)

// Index is the read-only state every query shares: the movies, their
// vectors and the pairwise similarity matrix.
type Index struct {
	Dataset    *dataset.Dataset
	Vectorizer *embedding.TFIDF
	Matrix     *similarity.Matrix

	matcher *match.Matcher
	// firstRow maps a title to the first row carrying it.
	firstRow map[string]int
	titled   int
}

// BuildIndex combines features, fits the vectorizer and computes the
// similarity matrix for ds. collector may be nil.
func BuildIndex(ctx context.Context, ds *dataset.Dataset, collector *metrics.Collector, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}
	total := time.Now()

	start := time.Now()
	corpus := parser.CombineAll(ds.Movies)
	collector.RecordTiming(metrics.OpFeatureCombine, time.Since(start))

	start = time.Now()
	vectorizer := embedding.NewTFIDF()
	vectors, err := vectorizer.FitTransform(ctx, corpus)
	collector.RecordResult(metrics.OpVectorize, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("vectorize: %w", err)
	}

	start = time.Now()
	matrix, err := similarity.Cosine(ctx, vectors)
	collector.RecordResult(metrics.OpSimilarity, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("similarity: %w", err)
	}

	idx := &Index{
		Dataset:    ds,
		Vectorizer: vectorizer,
		Matrix:     matrix,
		firstRow:   make(map[string]int),
	}
	var titles []string
	for i, m := range ds.Movies {
		if !m.HasTitle {
			continue
		}
		titles = append(titles, m.Title)
		if _, ok := idx.firstRow[m.Title]; !ok {
			idx.firstRow[m.Title] = i
		}
	}
	idx.titled = len(titles)
	idx.matcher = match.NewMatcher(titles)

	logger.Info("similarity index built",
		"movies", len(ds.Movies),
		"titled", idx.titled,
		"vocabulary", vectorizer.Dimension(),
		"duration_ms", time.Since(total).Milliseconds(),
	)
	return idx, nil
}

// Movie returns the movie at row i.
func (idx *Index) Movie(i int) models.Movie {
	return idx.Dataset.Movies[i]
}

// Row returns the first row whose title is exactly title.
func (idx *Index) Row(title string) (int, bool) {
	i, ok := idx.firstRow[title]
	return i, ok
}

// Stats describes the size of the index.
type Stats struct {
	Ready       bool   `json:"ready"`
	Movies      int    `json:"movies"`
	Titled      int    `json:"titled"`
	Vocabulary  int    `json:"vocabulary"`
	HasOverview bool   `json:"has_overview"`
	Model       string `json:"model,omitempty"`
	Dataset     string `json:"dataset"`
}

func (idx *Index) stats() Stats {
	return Stats{
		Ready:       true,
		Movies:      idx.Dataset.Len(),
		Titled:      idx.titled,
		Vocabulary:  idx.Vectorizer.Dimension(),
		HasOverview: idx.Dataset.HasOverview,
		Model:       idx.Vectorizer.Model(),
		Dataset:     idx.Dataset.Path,
	}
}
