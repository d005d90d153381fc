package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/raphaelgruber/movierec/internal/metrics"
	"github.com/raphaelgruber/movierec/internal/models"
	"github.com/raphaelgruber/movierec/internal/service"
)

// maxTitleLimit caps /api/titles results.
const maxTitleLimit = 50

// ErrorResponse is the JSON body of a failed API call.
type ErrorResponse struct {
	Error   string `json:"error"`
	Outcome string `json:"outcome"`
}

// TitlesResponse is the JSON body of /api/titles.
type TitlesResponse struct {
	Query  string                   `json:"query"`
	Titles []models.TitleSuggestion `json:"titles"`
}

// HealthResponse is the JSON body of /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Ready   bool   `json:"ready"`
	Version string `json:"version,omitempty"`
}

// StatsResponse is the JSON body of /stats.
type StatsResponse struct {
	Index   service.Stats    `json:"index"`
	Metrics metrics.Snapshot `json:"metrics"`
}

type pageData struct {
	Query   string
	Set     *models.RecommendationSet
	Message string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{}
	if query, ok := r.URL.Query()["movie"]; ok && len(query) > 0 {
		data.Query = query[0]
		set, err := s.recommender.Recommend(r.Context(), data.Query)
		if err != nil {
			if service.IsDataUnavailable(err) {
				s.logger.Error("page query failed", "query", data.Query, "error", err)
			}
			data.Message = service.Message(err)
		} else {
			data.Set = set
		}
	} else {
		data.Message = service.ErrInvalidInput.Error()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	set, err := s.recommender.Recommend(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleTitles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "limit must be a positive integer",
				Outcome: metrics.OutcomeInvalidInput,
			})
			return
		}
		limit = min(n, maxTitleLimit)
	}

	titles, err := s.recommender.Suggest(r.Context(), query, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if titles == nil {
		titles = []models.TitleSuggestion{}
	}
	s.writeJSON(w, http.StatusOK, TitlesResponse{Query: query, Titles: titles})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Ready:   s.recommender.Ready(),
		Version: s.version,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{Index: s.recommender.Stats()}
	if s.metrics != nil {
		resp.Metrics = s.metrics.Snapshot()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// StatusFor maps a query error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case service.IsInvalidInput(err):
		return http.StatusBadRequest
	case service.IsNoMatch(err):
		return http.StatusNotFound
	case service.IsDataUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("query failed", "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{
		Error:   service.Message(err),
		Outcome: service.Outcome(err),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}
