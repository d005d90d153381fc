package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/raphaelgruber/movierec/internal/dataset"
	"github.com/raphaelgruber/movierec/internal/match"
	"github.com/raphaelgruber/movierec/internal/metrics"
	"github.com/raphaelgruber/movierec/internal/models"
)

// DefaultLimit is the number of rows in a recommendation table.
const DefaultLimit = 30

// DatasetSource provides the movie table.
type DatasetSource interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// Options configures a RecommendService.
type Options struct {
	// Limit is the table size including the queried movie.
	Limit int
	// Cutoff is the minimum title similarity for a fuzzy match.
	Cutoff float64
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Cutoff <= 0 || o.Cutoff > 1 {
		o.Cutoff = match.DefaultCutoff
	}
	return o
}

// RecommendService answers recommendation queries. The index is built once,
// on the first query or on Warm, and shared by all callers afterwards.
// A failed build is retried on the next call.
type RecommendService struct {
	source  DatasetSource
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Collector

	mu  sync.Mutex
	idx *Index
}

// NewRecommendService creates a service over source. logger and collector may be nil.
func NewRecommendService(source DatasetSource, opts Options, logger *slog.Logger, collector *metrics.Collector) *RecommendService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecommendService{
		source:  source,
		opts:    opts.withDefaults(),
		logger:  logger,
		metrics: collector,
	}
}

// Options returns the effective options.
func (s *RecommendService) Options() Options {
	return s.opts
}

// Warm loads the dataset and builds the index ahead of the first query.
func (s *RecommendService) Warm(ctx context.Context) error {
	_, err := s.index(ctx)
	return err
}

// Ready reports whether the index has been built.
func (s *RecommendService) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx != nil
}

// Stats describes the index, or reports it as not ready.
func (s *RecommendService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idx == nil {
		return Stats{}
	}
	return s.idx.stats()
}

func (s *RecommendService) index(ctx context.Context) (*Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idx != nil {
		return s.idx, nil
	}
	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	idx, err := BuildIndex(ctx, ds, s.metrics, s.logger)
	if err != nil {
		s.logger.Error("failed to build similarity index", "error", err)
		return nil, err
	}
	s.idx = idx
	return idx, nil
}

// Recommend resolves query to a known title and returns the movies most
// similar to it. The matched movie is always the first row.
func (s *RecommendService) Recommend(ctx context.Context, query string) (*models.RecommendationSet, error) {
	start := time.Now()
	set, err := s.recommend(ctx, query)
	s.metrics.RecordResult(metrics.OpRecommend, time.Since(start), err)
	s.metrics.RecordOutcome(Outcome(err))

	if err != nil {
		s.logger.Debug("recommendation failed", "query", query, "outcome", Outcome(err), "error", err)
		return nil, err
	}
	s.logger.Debug("recommendation served",
		"query", query,
		"matched", set.MatchedTitle,
		"results", set.Count,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return set, nil
}

func (s *RecommendService) recommend(ctx context.Context, query string) (*models.RecommendationSet, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrInvalidInput
	}

	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}

	best, ok := idx.matcher.BestWithCutoff(q, s.opts.Cutoff)
	if !ok {
		return nil, ErrNoMatch
	}
	row, ok := idx.Row(best.Title)
	if !ok {
		return nil, fmt.Errorf("matched title %q has no row", best.Title)
	}

	scores := idx.Matrix.Row(row)
	results := rank(idx, row, scores, s.opts.Limit)

	return &models.RecommendationSet{
		Query:        query,
		MatchedTitle: best.Title,
		MatchedIndex: row,
		Results:      results,
		Count:        len(results),
	}, nil
}

// rank orders all rows by similarity to row, descending, keeping table
// order among equal scores. row itself comes first.
func rank(idx *Index, row int, scores []float64, limit int) []models.Recommendation {
	order := make([]int, 0, len(scores)-1)
	for j := range scores {
		if j != row {
			order = append(order, j)
		}
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})
	order = append([]int{row}, order...)
	if len(order) > limit {
		order = order[:limit]
	}

	out := make([]models.Recommendation, len(order))
	for i, j := range order {
		out[i] = models.NewRecommendation(i+1, idx.Movie(j), scores[j])
	}
	return out
}

// Suggest returns up to limit known titles that closely match query, best first.
func (s *RecommendService) Suggest(ctx context.Context, query string, limit int) ([]models.TitleSuggestion, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrInvalidInput
	}
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = match.DefaultN
	}

	found := idx.matcher.CloseMatches(q, limit, s.opts.Cutoff)
	out := make([]models.TitleSuggestion, len(found))
	for i, m := range found {
		out[i] = models.TitleSuggestion{Title: m.Title, Score: m.Score}
	}
	return out, nil
}
