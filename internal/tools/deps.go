// Package tools provides MCP tool handlers and registration.
package tools

import (
	"context"
	"log/slog"

	"github.com/raphaelgruber/movierec/internal/models"
)

// Recommender answers movie queries.
type Recommender interface {
	Recommend(ctx context.Context, query string) (*models.RecommendationSet, error)
	Suggest(ctx context.Context, query string, limit int) ([]models.TitleSuggestion, error)
}

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Recommender Recommender
	Logger      *slog.Logger
}

func (d *Dependencies) logger() *slog.Logger {
	if d == nil || d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}
