package tools

import (
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/movierec/internal/service"
)

// ErrorResult creates a tool error result with optional recovery hint.
// If hint is non-empty, formats as "{msg}. {hint}".
// Returns IsError=true so LLM can see the error and self-correct.
func ErrorResult(msg, hint string) *mcp.CallToolResult {
	text := msg
	if hint != "" {
		text = strings.TrimSuffix(msg, ".") + ". " + hint
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

// TextResult creates a success result with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// QueryErrorResult turns a recommender error into a tool error with a hint.
func QueryErrorResult(err error) *mcp.CallToolResult {
	switch {
	case service.IsInvalidInput(err):
		return ErrorResult(service.ErrInvalidInput.Error(), "Provide a movie title in the query field")
	case service.IsNoMatch(err):
		return ErrorResult(service.ErrNoMatch.Error(), "Use search_titles with a shorter query to find a known title")
	case service.IsDataUnavailable(err):
		return ErrorResult("Movie data is unavailable", "Check that MOVIEREC_DATASET points to a readable movies.csv")
	default:
		return ErrorResult("Recommendation failed", "Retry the call")
	}
}
