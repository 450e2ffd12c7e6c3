package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/external/scoutgpt"
	"github.com/blacklandcg/scoutiq/internal/signals"
	"github.com/blacklandcg/scoutiq/pkg/logger"
)

// OracleHandler serves the external-classification endpoints and the audit
// log views over them.
type OracleHandler struct {
	properties contracts.PropertyRepository
	deriver    *signals.Deriver
	oracle     *scoutgpt.Client
	logs       contracts.InteractionLogRepository
	logger     *logger.Logger
}

// NewOracleHandler creates a new oracle handler
func NewOracleHandler(
	properties contracts.PropertyRepository,
	deriver *signals.Deriver,
	oracle *scoutgpt.Client,
	logs contracts.InteractionLogRepository,
	log *logger.Logger,
) *OracleHandler {
	return &OracleHandler{
		properties: properties,
		deriver:    deriver,
		oracle:     oracle,
		logs:       logs,
		logger:     log,
	}
}

// OracleBatchRequest selects properties for oracle classification: stored
// ids, inline records, or both.
type OracleBatchRequest struct {
	PropertyIDs []string                   `json:"property_ids"`
	Properties  []contracts.PropertyRecord `json:"properties"`
	Context     map[string]any             `json:"context"`
}

// Batch derives signals over the selected properties and asks the oracle to
// classify each one. Oracle failures surface as Error-classified entries in
// the result list, never as a failed request.
// POST /api/ai/batch
func (h *OracleHandler) Batch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OracleBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	records := make([]contracts.PropertyRecord, 0, len(req.PropertyIDs)+len(req.Properties))
	for _, id := range req.PropertyIDs {
		rec, err := h.properties.GetByID(ctx, id)
		if err != nil {
			h.logger.WithError(err).Error("property lookup failed")
			respondError(w, http.StatusInternalServerError, "Property lookup failed")
			return
		}
		if rec != nil {
			records = append(records, rec)
		}
	}
	records = append(records, req.Properties...)

	h.deriver.DeriveBatch(records)

	results := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		summary := h.oracle.Analyze(ctx, []contracts.PropertyRecord{rec}, req.Context, "", "")
		results = append(results, map[string]any{
			"property_id": rec.ID(),
			"ai_summary":  summary,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results":   results,
		"count":     len(results),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Logs returns recent oracle interaction logs, newest first.
// GET /api/ai-logs?property_id=...&limit=100
func (h *OracleHandler) Logs(w http.ResponseWriter, r *http.Request) {
	propertyID := r.URL.Query().Get("property_id")
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	logs, err := h.logs.List(r.Context(), propertyID, limit)
	if err != nil {
		h.logger.WithError(err).Error("failed to list interaction logs")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve logs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"logs":      logs,
		"count":     len(logs),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Statistics returns aggregate oracle usage numbers.
// GET /api/ai-statistics
func (h *OracleHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.logs.Stats(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to compute interaction stats")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve statistics")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"statistics": stats,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
