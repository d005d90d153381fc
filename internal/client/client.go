// Package client talks to a running movierec server over HTTP and websocket.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/raphaelgruber/movierec/internal/dataset"
	"github.com/raphaelgruber/movierec/internal/httpapi"
	"github.com/raphaelgruber/movierec/internal/metrics"
	"github.com/raphaelgruber/movierec/internal/models"
	"github.com/raphaelgruber/movierec/internal/service"
)

// DefaultEndpoint is used when neither the argument nor MOVIEREC_SERVER_URL is set.
const DefaultEndpoint = "http://localhost:8501"

// Client is an HTTP client for the movierec server.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a new client.
// If endpoint is empty, uses MOVIEREC_SERVER_URL env var or defaults to localhost:8501.
// Timeout can be configured via MOVIEREC_CLIENT_TIMEOUT env var (default 2m, the
// first query may build the index).
func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = os.Getenv("MOVIEREC_SERVER_URL")
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	timeout := 2 * time.Minute
	if t := os.Getenv("MOVIEREC_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint returns the server base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// APIError is a non-2xx answer from the server. It unwraps to the matching
// service or dataset sentinel so callers can use errors.Is.
type APIError struct {
	Status  int
	Message string
	Outcome string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// Unwrap maps the outcome back to a sentinel error.
func (e *APIError) Unwrap() error {
	switch e.Outcome {
	case metrics.OutcomeInvalidInput:
		return service.ErrInvalidInput
	case metrics.OutcomeNoMatch:
		return service.ErrNoMatch
	case metrics.OutcomeDataUnavailable:
		return dataset.ErrDataUnavailable
	default:
		return nil
	}
}

// get performs a GET on path and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e httpapi.ErrorResponse
		if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
			return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error, Outcome: e.Outcome}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// Recommend asks the server for recommendations for query.
func (c *Client) Recommend(ctx context.Context, query string) (*models.RecommendationSet, error) {
	var set models.RecommendationSet
	if err := c.get(ctx, "/api/recommend", url.Values{"q": {query}}, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// Titles returns up to limit titles close to query.
func (c *Client) Titles(ctx context.Context, query string, limit int) ([]models.TitleSuggestion, error) {
	params := url.Values{"q": {query}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var resp httpapi.TitlesResponse
	if err := c.get(ctx, "/api/titles", params, &resp); err != nil {
		return nil, err
	}
	return resp.Titles, nil
}

// Stats returns index and runtime statistics.
func (c *Client) Stats(ctx context.Context) (*httpapi.StatsResponse, error) {
	var resp httpapi.StatsResponse
	if err := c.get(ctx, "/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health returns the server health.
func (c *Client) Health(ctx context.Context) (*httpapi.HealthResponse, error) {
	var resp httpapi.HealthResponse
	if err := c.get(ctx, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Session is a live query channel over the server's websocket.
// Queries on one Session are answered in order; it is not safe for
// concurrent Query calls.
type Session struct {
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
}

// Dial opens a websocket session.
func (c *Client) Dial(ctx context.Context) (*Session, error) {
	wsEndpoint := c.endpoint
	wsEndpoint = strings.Replace(wsEndpoint, "http://", "ws://", 1)
	wsEndpoint = strings.Replace(wsEndpoint, "https://", "wss://", 1)

	u, err := url.Parse(wsEndpoint + "/ws")
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("websocket connect: %w", err)
	}
	return &Session{conn: conn}, nil
}

// Query sends one query and waits for its answer.
func (s *Session) Query(ctx context.Context, query string) (*httpapi.QueryResult, error) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-done:
		}
	}()

	if err := s.conn.WriteJSON(httpapi.QueryMessage{Query: query}); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("send query: %w", err)
	}

	var res httpapi.QueryResult
	if err := s.conn.ReadJSON(&res); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("read result: %w", err)
	}
	return &res, nil
}

// Recommend runs query over the session and converts a failed outcome
// into an *APIError.
func (s *Session) Recommend(ctx context.Context, query string) (*models.RecommendationSet, error) {
	res, err := s.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	if res.Result == nil {
		return nil, &APIError{Message: res.Message, Outcome: res.Outcome}
	}
	return res.Result, nil
}

// Close closes the session. Safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return s.conn.Close()
}
