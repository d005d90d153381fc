package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/raphaelgruber/movierec/internal/dataset"
	"github.com/raphaelgruber/movierec/internal/metrics"
	"github.com/raphaelgruber/movierec/internal/models"
	"github.com/raphaelgruber/movierec/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moviesCSV = `title,genres,keywords,tagline,cast,director,overview
Avatar,Action Adventure Fantasy,space war,Enter the World of Pandora.,Sam Worthington,James Cameron,A Marine on Pandora.
Aliens,Horror Action Science Fiction,alien space marine,This time it's war.,Sigourney Weaver,James Cameron,Ripley returns.
Heat,Action Crime Drama,heist robbery,A Los Angeles Crime Saga,Al Pacino,Michael Mann,A cop hunts a thief.
`

func newTestServer(t *testing.T, csvContent string) *httptest.Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	if csvContent != "" {
		require.NoError(t, os.WriteFile(path, []byte(csvContent), 0o644))
	}

	collector := metrics.NewCollector()
	loader := dataset.NewLoader(path, dataset.ReadOptions{}, nil, collector)
	svc := service.NewRecommendService(loader, service.Options{}, nil, collector)

	srv, err := New(svc, collector, nil, "test")
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, rawURL string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestPage(t *testing.T) {
	ts := newTestServer(t, moviesCSV)

	tests := []struct {
		name     string
		path     string
		contains []string
		absent   []string
	}{
		{
			name:     "empty form",
			path:     "/",
			contains: []string{"Movie Recommendation System", "Enter your favorite movie name:", "Please enter a valid movie name."},
			absent:   []string{"Movies suggested for you:"},
		},
		{
			name:     "results",
			path:     "/?movie=" + url.QueryEscape("avtaar"),
			contains: []string{"Movies suggested for you:", "Movie Name", "Genre", "Overview", "Avatar", "A Marine on Pandora."},
		},
		{
			name:     "no match",
			path:     "/?movie=zzzzzzzz",
			contains: []string{"No close match found for your movie. Please try another movie."},
		},
		{
			name:     "blank",
			path:     "/?movie=+",
			contains: []string{"Please enter a valid movie name."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
			assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestPageDataUnavailable(t *testing.T) {
	ts := newTestServer(t, "")
	resp, body := get(t, ts.URL+"/?movie=Avatar")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Movie data could not be loaded")
}

func TestAPIRecommend(t *testing.T) {
	ts := newTestServer(t, moviesCSV)

	resp, body := get(t, ts.URL+"/api/recommend?q=aliens")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var set models.RecommendationSet
	require.NoError(t, json.Unmarshal([]byte(body), &set))
	assert.Equal(t, "Aliens", set.MatchedTitle)
	require.Len(t, set.Results, 3)
	assert.Equal(t, "Aliens", set.Results[0].Title)
	assert.Equal(t, "Avatar", set.Results[1].Title)
}

func TestAPIRecommendErrors(t *testing.T) {
	ts := newTestServer(t, moviesCSV)
	missing := newTestServer(t, "")

	tests := []struct {
		name    string
		url     string
		status  int
		outcome string
	}{
		{"empty", ts.URL + "/api/recommend?q=", http.StatusBadRequest, metrics.OutcomeInvalidInput},
		{"no match", ts.URL + "/api/recommend?q=zzzzzzzz", http.StatusNotFound, metrics.OutcomeNoMatch},
		{"data unavailable", missing.URL + "/api/recommend?q=Avatar", http.StatusServiceUnavailable, metrics.OutcomeDataUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, tt.url)
			assert.Equal(t, tt.status, resp.StatusCode)

			var e ErrorResponse
			require.NoError(t, json.Unmarshal([]byte(body), &e))
			assert.Equal(t, tt.outcome, e.Outcome)
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestAPITitles(t *testing.T) {
	ts := newTestServer(t, moviesCSV)

	resp, body := get(t, ts.URL+"/api/titles?q=heet&limit=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var titles TitlesResponse
	require.NoError(t, json.Unmarshal([]byte(body), &titles))
	require.NotEmpty(t, titles.Titles)
	assert.Equal(t, "Heat", titles.Titles[0].Title)
	assert.LessOrEqual(t, len(titles.Titles), 2)

	resp, _ = get(t, ts.URL+"/api/titles?q=heat&limit=abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = get(t, ts.URL+"/api/titles?q=qqqqqq")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"titles":[]`)
}

func TestHealthStatsMetrics(t *testing.T) {
	ts := newTestServer(t, moviesCSV)

	_, body := get(t, ts.URL+"/health")
	var health HealthResponse
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	assert.Equal(t, "ok", health.Status)
	assert.False(t, health.Ready)

	get(t, ts.URL+"/api/recommend?q=heat")

	_, body = get(t, ts.URL+"/stats")
	var stats StatsResponse
	require.NoError(t, json.Unmarshal([]byte(body), &stats))
	assert.True(t, stats.Index.Ready)
	assert.Equal(t, 3, stats.Index.Movies)
	require.NotNil(t, stats.Metrics.Recommend)
	assert.Equal(t, int64(1), stats.Metrics.Recommend.Count)

	resp, body := get(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `movierec_queries_total{outcome="ok"} 1`)
	assert.Contains(t, body, "movierec_operation_duration_seconds")
}

func TestStaticAssets(t *testing.T) {
	ts := newTestServer(t, moviesCSV)
	resp, body := get(t, ts.URL+"/static/app.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "WebSocket")
}

func TestRequestIDPropagates(t *testing.T) {
	ts := newTestServer(t, moviesCSV)
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestWebSocketSession(t *testing.T) {
	ts := newTestServer(t, moviesCSV)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	exchange := func(query string) QueryResult {
		require.NoError(t, conn.WriteJSON(QueryMessage{Query: query}))
		var res QueryResult
		require.NoError(t, conn.ReadJSON(&res))
		return res
	}

	res := exchange("avtaar")
	assert.Equal(t, metrics.OutcomeOK, res.Outcome)
	require.NotNil(t, res.Result)
	assert.Equal(t, "Avatar", res.Result.Results[0].Title)

	res = exchange("")
	assert.Equal(t, metrics.OutcomeInvalidInput, res.Outcome)
	assert.Equal(t, "Please enter a valid movie name.", res.Message)
	assert.Nil(t, res.Result)

	res = exchange("zzzzzzzz")
	assert.Equal(t, metrics.OutcomeNoMatch, res.Outcome)
	assert.Equal(t, "No close match found for your movie. Please try another movie.", res.Message)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(service.ErrInvalidInput))
	assert.Equal(t, http.StatusNotFound, StatusFor(service.ErrNoMatch))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(dataset.ErrDataUnavailable))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(io.ErrUnexpectedEOF))
}
