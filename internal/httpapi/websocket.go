package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/raphaelgruber/movierec/internal/models"
	"github.com/raphaelgruber/movierec/internal/service"
)

const (
	wsMaxMessageSize = 4096
	wsWriteTimeout   = 10 * time.Second
)

// QueryMessage is what a websocket client sends for each interaction.
type QueryMessage struct {
	Query string `json:"query"`
}

// QueryResult is the answer to one QueryMessage. Result is nil when the
// query failed; Message then holds the text to display.
type QueryResult struct {
	Query   string                    `json:"query"`
	Outcome string                    `json:"outcome"`
	Message string                    `json:"message,omitempty"`
	Result  *models.RecommendationSet `json:"result,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleWebSocket re-runs the query for every message on the connection.
// Each connection is an independent session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	session := uuid.NewString()[:8]
	logger := s.logger.With("session", session)
	logger.Debug("websocket session opened")
	conn.SetReadLimit(wsMaxMessageSize)

	for {
		var msg QueryMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read failed", "error", err)
			}
			break
		}

		set, err := s.recommender.Recommend(r.Context(), msg.Query)
		resp := QueryResult{
			Query:   msg.Query,
			Outcome: service.Outcome(err),
			Message: service.Message(err),
			Result:  set,
		}

		if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			break
		}
		if err := conn.WriteJSON(resp); err != nil {
			logger.Warn("websocket write failed", "error", err)
			break
		}
	}
	logger.Debug("websocket session closed")
}
