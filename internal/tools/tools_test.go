package tools_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/movierec/internal/dataset"
	"github.com/raphaelgruber/movierec/internal/models"
	"github.com/raphaelgruber/movierec/internal/service"
	"github.com/raphaelgruber/movierec/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moviesCSV = `title,genres,keywords,tagline,cast,director,overview
Avatar,Action Adventure Fantasy,space war,Enter the World of Pandora.,Sam Worthington,James Cameron,A Marine on Pandora.
Aliens,Horror Action Science Fiction,alien space marine,This time it's war.,Sigourney Weaver,James Cameron,Ripley returns.
Heat,Action Crime Drama,heist robbery,A Los Angeles Crime Saga,Al Pacino,Michael Mann,A cop hunts a thief.
`

// testLogger creates a logger for test visibility.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// connect registers all tools over a recommender reading csvContent and
// returns a connected client session. An empty csvContent leaves the
// dataset file missing.
func connect(t *testing.T, csvContent string) (*mcp.ClientSession, context.Context) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	if csvContent != "" {
		require.NoError(t, os.WriteFile(path, []byte(csvContent), 0o644))
	}
	svc := service.NewRecommendService(dataset.NewLoader(path, dataset.ReadOptions{}, nil, nil), service.Options{}, nil, nil)

	server := mcp.NewServer(&mcp.Implementation{Name: "test-movierec", Version: "0.0.1-test"}, nil)
	tools.RegisterAll(server, &tools.Dependencies{Recommender: svc, Logger: testLogger()})

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	go func() {
		_ = server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	t.Cleanup(func() { session.Close() })
	return session, ctx
}

func call(t *testing.T, ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content should be TextContent")
	return text.Text, result.IsError
}

func TestListTools(t *testing.T) {
	session, ctx := connect(t, moviesCSV)

	result, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"ping", "recommend", "search_titles"}, names)
}

func TestPingTool(t *testing.T) {
	session, ctx := connect(t, moviesCSV)

	text, isErr := call(t, ctx, session, "ping", map[string]any{})
	assert.Equal(t, "pong", text)
	assert.False(t, isErr)

	text, _ = call(t, ctx, session, "ping", map[string]any{"echo": "hello world"})
	assert.Equal(t, "hello world", text)
}

func TestRecommendTool(t *testing.T) {
	session, ctx := connect(t, moviesCSV)

	text, isErr := call(t, ctx, session, "recommend", map[string]any{"query": "avtaar"})
	require.False(t, isErr, text)

	var set models.RecommendationSet
	require.NoError(t, json.Unmarshal([]byte(text), &set))
	assert.Equal(t, "Avatar", set.MatchedTitle)
	require.Len(t, set.Results, 3)
	assert.Equal(t, "Avatar", set.Results[0].Title)

	text, isErr = call(t, ctx, session, "recommend", map[string]any{"query": "heat", "limit": 1})
	require.False(t, isErr, text)
	require.NoError(t, json.Unmarshal([]byte(text), &set))
	assert.Len(t, set.Results, 1)
	assert.Equal(t, 1, set.Count)
}

func TestRecommendToolErrors(t *testing.T) {
	session, ctx := connect(t, moviesCSV)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"empty query", map[string]any{"query": "  "}, "Please enter a valid movie name. Provide a movie title"},
		{"no match", map[string]any{"query": "zzzzzzzz"}, "No close match found for your movie. Please try another movie. Use search_titles"},
		{"limit too large", map[string]any{"query": "heat", "limit": 500}, "Limit must be 1-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, ctx, session, "recommend", tt.args)
			assert.True(t, isErr)
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestRecommendToolDataUnavailable(t *testing.T) {
	session, ctx := connect(t, "")

	text, isErr := call(t, ctx, session, "recommend", map[string]any{"query": "Avatar"})
	assert.True(t, isErr)
	assert.Contains(t, text, "Movie data is unavailable")
}

func TestSearchTitlesTool(t *testing.T) {
	session, ctx := connect(t, moviesCSV)

	text, isErr := call(t, ctx, session, "search_titles", map[string]any{"query": "alien", "limit": 2})
	require.False(t, isErr)
	assert.Contains(t, text, "Aliens (0.91)")

	text, isErr = call(t, ctx, session, "search_titles", map[string]any{"query": "qqqqqq"})
	assert.False(t, isErr)
	assert.Equal(t, "No titles found", text)
}

func TestErrorResult(t *testing.T) {
	res := tools.ErrorResult("Something failed.", "Try again")
	assert.True(t, res.IsError)
	assert.Equal(t, "Something failed. Try again", res.Content[0].(*mcp.TextContent).Text)

	res = tools.ErrorResult("Plain", "")
	assert.Equal(t, "Plain", res.Content[0].(*mcp.TextContent).Text)
}
