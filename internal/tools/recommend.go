package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxToolResults caps the limit argument of the query tools.
const maxToolResults = 100

// RecommendInput defines the input schema for the recommend tool.
type RecommendInput struct {
	Query string `json:"query" jsonschema:"Movie title to find similar movies for; typos are tolerated"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max rows including the matched movie, default 30"`
}

// NewRecommendHandler creates the recommend tool handler.
func NewRecommendHandler(deps *Dependencies) mcp.ToolHandlerFor[RecommendInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RecommendInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Limit < 0 || input.Limit > maxToolResults {
			return ErrorResult("Limit must be 1-100", "Reduce limit value"), nil, nil
		}

		set, err := deps.Recommender.Recommend(ctx, input.Query)
		if err != nil {
			deps.logger().Debug("recommend tool failed", "query", input.Query, "error", err)
			return QueryErrorResult(err), nil, nil
		}

		if input.Limit > 0 && len(set.Results) > input.Limit {
			set.Results = set.Results[:input.Limit]
			set.Count = len(set.Results)
		}

		jsonBytes, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return nil, nil, err
		}

		deps.logger().Info("recommend completed", "query", truncateQuery(input.Query), "matched", set.MatchedTitle, "count", set.Count)
		return TextResult(string(jsonBytes)), nil, nil
	}
}

// truncateQuery shortens a query for log lines.
func truncateQuery(q string) string {
	if len(q) > 30 {
		return q[:30] + "..."
	}
	return q
}
