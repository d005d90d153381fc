package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchTitlesInput defines the input schema for the search_titles tool.
type SearchTitlesInput struct {
	Query string `json:"query" jsonschema:"Approximate movie title"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max titles 1-100, default 10"`
}

// NewSearchTitlesHandler creates the search_titles tool handler.
// Returns one "title (score)" line per close match, best first.
func NewSearchTitlesHandler(deps *Dependencies) mcp.ToolHandlerFor[SearchTitlesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchTitlesInput) (
		*mcp.CallToolResult, any, error,
	) {
		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}
		if limit > maxToolResults {
			return ErrorResult("Limit must be 1-100", "Reduce limit value"), nil, nil
		}

		found, err := deps.Recommender.Suggest(ctx, input.Query, limit)
		if err != nil {
			return QueryErrorResult(err), nil, nil
		}
		if len(found) == 0 {
			return TextResult("No titles found"), nil, nil
		}

		lines := make([]string, len(found))
		for i, s := range found {
			lines[i] = fmt.Sprintf("%s (%.2f)", s.Title, s.Score)
		}
		return TextResult(strings.Join(lines, "\n")), nil, nil
	}
}
