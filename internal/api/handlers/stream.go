package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Dashboards connect cross-origin in development.
		return true
	},
}

// streamMessage is one frame on the analysis progress stream.
type streamMessage struct {
	Type       string      `json:"type"` // progress | result | complete | error
	Index      int         `json:"index,omitempty"`
	Total      int         `json:"total,omitempty"`
	PropertyID string      `json:"property_id,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Stream pushes per-property analysis results over a websocket as a stored
// query result set is worked through, finishing with the batch summary.
// GET /api/analyze/stream?query_id=...
func (h *AnalysisHandler) Stream(w http.ResponseWriter, r *http.Request) {
	queryID := r.URL.Query().Get("query_id")
	if queryID == "" {
		respondError(w, http.StatusBadRequest, "query_id is required")
		return
	}

	records, err := h.store.Get(r.Context(), queryID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Query results not found or expired")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	if len(records) > h.batchLimit {
		records = records[:h.batchLimit]
	}

	writeDeadline := func() {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	}

	for i, rec := range records {
		result := h.analyzer.AnalyzeProperty(rec)

		writeDeadline()
		msg := streamMessage{
			Type:       "result",
			Index:      i + 1,
			Total:      len(records),
			PropertyID: rec.ID(),
			Payload:    result,
		}
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.WithError(err).Debug("stream client went away")
			return
		}
	}

	summary := h.analyzer.AnalyzeBatch(records)
	writeDeadline()
	if err := conn.WriteJSON(streamMessage{Type: "complete", Total: len(records), Payload: summary}); err != nil {
		return
	}

	writeDeadline()
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
}
