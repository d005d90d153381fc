package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping",
		Description: "Test tool - responds with pong or echoes input",
	}, NewPingHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recommend",
		Description: "Recommend movies similar to a title. The closest known title is matched first and listed as row 1",
	}, NewRecommendHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_titles",
		Description: "List known movie titles that closely match the query",
	}, NewSearchTitlesHandler(deps))
}
