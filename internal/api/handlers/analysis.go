package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/blacklandcg/scoutiq/internal/analysis"
	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/property"
	"github.com/blacklandcg/scoutiq/internal/signals"
	"github.com/blacklandcg/scoutiq/pkg/logger"
)

// AnalysisHandler serves the query and analysis endpoints. Query results are
// parked in the result store under a query id that follow-up analysis calls
// reference explicitly.
type AnalysisHandler struct {
	properties contracts.PropertyRepository
	deriver    *signals.Deriver
	analyzer   *analysis.Analyzer
	store      *analysis.ResultStore
	batchLimit int
	logger     *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(
	properties contracts.PropertyRepository,
	deriver *signals.Deriver,
	analyzer *analysis.Analyzer,
	store *analysis.ResultStore,
	batchLimit int,
	log *logger.Logger,
) *AnalysisHandler {
	if batchLimit <= 0 {
		batchLimit = 50
	}
	return &AnalysisHandler{
		properties: properties,
		deriver:    deriver,
		analyzer:   analyzer,
		store:      store,
		batchLimit: batchLimit,
		logger:     log,
	}
}

// QueryRequest is the filter body for POST /api/query.
type QueryRequest struct {
	County        string  `json:"county"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	ValuationMin  float64 `json:"valuation_min"`
	ValuationMax  float64 `json:"valuation_max"`
	OwnershipType string  `json:"ownership_type"`
	Limit         int     `json:"limit"`
	Offset        int     `json:"offset"`
}

// Query loads properties matching the filter, derives signals over them,
// stores the enriched set, and returns it along with a signal summary and
// the query id.
// POST /api/query
func (h *AnalysisHandler) Query(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	filter := contracts.PropertyFilter{
		County:       req.County,
		City:         req.City,
		State:        req.State,
		ValuationMin: req.ValuationMin,
		ValuationMax: req.ValuationMax,
		Limit:        req.Limit,
		Offset:       req.Offset,
	}

	records, total, err := h.properties.Query(ctx, filter)
	if err != nil {
		h.logger.WithError(err).Error("property query failed")
		respondError(w, http.StatusInternalServerError, "Query failed")
		return
	}

	derived := h.deriver.DeriveBatch(records)

	// Ownership type depends on derived signals, so it filters here rather
	// than in SQL.
	if req.OwnershipType != "" {
		filtered := records[:0:0]
		filteredSignals := derived[:0:0]
		for i, rec := range records {
			if string(derived[i].OwnershipType) == req.OwnershipType {
				filtered = append(filtered, rec)
				filteredSignals = append(filteredSignals, derived[i])
			}
		}
		records, derived = filtered, filteredSignals
	}

	queryID, err := h.store.Put(ctx, records)
	if err != nil {
		h.logger.WithError(err).Error("failed to store query results")
		respondError(w, http.StatusInternalServerError, "Query failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"query_id":   queryID,
		"properties": records,
		"pagination": map[string]interface{}{
			"total_count":    total,
			"returned_count": len(records),
			"offset":         req.Offset,
			"limit":          req.Limit,
		},
		"filters_applied": map[string]interface{}{
			"county":         req.County,
			"valuation_min":  req.ValuationMin,
			"valuation_max":  req.ValuationMax,
			"ownership_type": req.OwnershipType,
		},
		"signal_summary": signals.Summarize(derived),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

// AnalyzeRequest names a single property out of a stored query result, or
// carries the record inline.
type AnalyzeRequest struct {
	QueryID    string                   `json:"query_id"`
	PropertyID string                   `json:"property_id"`
	Property   contracts.PropertyRecord `json:"property"`
}

// Analyze runs the scoring pipeline for one property.
// POST /api/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec := req.Property
	if rec == nil {
		if req.QueryID == "" || req.PropertyID == "" {
			respondError(w, http.StatusBadRequest, "query_id and property_id are required when no property is inlined")
			return
		}
		records, err := h.store.Get(ctx, req.QueryID)
		if err != nil {
			respondError(w, http.StatusNotFound, "Query results not found or expired")
			return
		}
		for _, candidate := range records {
			if candidate.ID() == req.PropertyID {
				rec = candidate
				break
			}
		}
		if rec == nil {
			respondError(w, http.StatusNotFound, "Property not found in query results")
			return
		}
	}

	result := h.analyzer.AnalyzeProperty(rec)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"property_id": rec.ID(),
		"analysis":    result,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// BatchRequest selects the records for a batch analysis: a stored query id,
// inline records, or both.
type BatchRequest struct {
	QueryID    string                     `json:"query_id"`
	Properties []contracts.PropertyRecord `json:"properties"`
}

// AnalyzeBatch runs the pipeline over a record set and aggregates a
// portfolio summary.
// POST /api/analyze/batch
func (h *AnalysisHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	records, ok := h.collectRecords(w, ctx, &req)
	if !ok {
		return
	}
	if len(records) > h.batchLimit {
		records = records[:h.batchLimit]
	}

	summary := h.analyzer.AnalyzeBatch(records)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"batch":     summary,
		"results":   summary.Results,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Upload accepts a CSV of properties, derives signals, and parks the
// enriched set under a query id. Nothing is persisted.
// POST /api/upload-properties
func (h *AnalysisHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file upload")
		return
	}
	defer file.Close()

	records, err := property.ReadCSV(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid upload: "+err.Error())
		return
	}

	derived := h.deriver.DeriveBatch(records)

	queryID, err := h.store.Put(ctx, records)
	if err != nil {
		h.logger.WithError(err).Error("failed to store uploaded records")
		respondError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"query_id":       queryID,
		"properties":     records,
		"signal_summary": signals.Summarize(derived),
		"count":          len(records),
	})
}

func (h *AnalysisHandler) collectRecords(w http.ResponseWriter, ctx context.Context, req *BatchRequest) ([]contracts.PropertyRecord, bool) {
	records := req.Properties
	if req.QueryID != "" {
		stored, err := h.store.Get(ctx, req.QueryID)
		if err != nil {
			respondError(w, http.StatusNotFound, "Query results not found or expired")
			return nil, false
		}
		records = append(stored, records...)
	}
	return records, true
}
