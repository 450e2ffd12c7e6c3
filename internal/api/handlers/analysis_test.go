package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacklandcg/scoutiq/internal/analysis"
	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/scoring"
	"github.com/blacklandcg/scoutiq/internal/signals"
	"github.com/blacklandcg/scoutiq/pkg/logger"
	"github.com/blacklandcg/scoutiq/pkg/redis"
)

type fakePropertyRepo struct {
	records []contracts.PropertyRecord
}

func (f *fakePropertyRepo) Query(_ context.Context, filter contracts.PropertyFilter) ([]contracts.PropertyRecord, int, error) {
	return f.records, len(f.records), nil
}

func (f *fakePropertyRepo) GetByID(_ context.Context, attomID string) (contracts.PropertyRecord, error) {
	for _, rec := range f.records {
		if rec.ID() == attomID {
			return rec, nil
		}
	}
	return nil, nil
}

func newTestHandler(t *testing.T, records []contracts.PropertyRecord) *AnalysisHandler {
	t.Helper()
	log := logger.NewWriter(io.Discard, "error")
	deriver := signals.NewDeriver(log, signals.Options{
		Now: func() time.Time {
			return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		},
	})
	analyzer := analysis.NewAnalyzer(deriver, scoring.NewScorer(false), log)
	store := analysis.NewResultStore(redis.NewCache(redis.Disabled(), "scoutiq"), time.Minute, log)
	return NewAnalysisHandler(&fakePropertyRepo{records: records}, deriver, analyzer, store, 50, log)
}

func testRecords() []contracts.PropertyRecord {
	return []contracts.PropertyRecord{
		{
			"attom_id":               "A1",
			"estimated_value":        "200000",
			"year_built":             "2016",
			"party_owner1_name_full": "RIVER OAKS LLC",
			"property_address_city":  "Austin",
			"flood_zone":             "X",
		},
		{
			"attom_id":               "A2",
			"estimated_value":        "950000",
			"year_built":             "1970",
			"party_owner1_name_full": "MARIA ORTEGA",
			"property_address_city":  "Austin",
			"flood_zone":             "VE",
		},
	}
}

func TestQuery(t *testing.T) {
	h := newTestHandler(t, testRecords())

	body := bytes.NewBufferString(`{"county":"Travis","limit":10}`)
	req := httptest.NewRequest(http.MethodPost, "/api/query", body)
	w := httptest.NewRecorder()
	h.Query(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		QueryID    string                     `json:"query_id"`
		Properties []contracts.PropertyRecord `json:"properties"`
		Pagination struct {
			TotalCount    int `json:"total_count"`
			ReturnedCount int `json:"returned_count"`
		} `json:"pagination"`
		SignalSummary contracts.SignalSummary `json:"signal_summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.QueryID)
	assert.Len(t, resp.Properties, 2)
	assert.Equal(t, 2, resp.Pagination.TotalCount)
	assert.Equal(t, 2, resp.SignalSummary.TotalProperties)

	// Signals were merged onto the returned records.
	assert.Equal(t, "Low", resp.Properties[0]["valuation_band"])
	assert.Equal(t, "LLC", resp.Properties[0]["ownership_type"])
	assert.Equal(t, "High", resp.Properties[1]["valuation_band"])
}

func TestQuery_OwnershipFilter(t *testing.T) {
	h := newTestHandler(t, testRecords())

	body := bytes.NewBufferString(`{"ownership_type":"LLC"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/query", body)
	w := httptest.NewRecorder()
	h.Query(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Properties []contracts.PropertyRecord `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Properties, 1)
	assert.Equal(t, "A1", resp.Properties[0].ID())
}

func TestAnalyze_FromStoredQuery(t *testing.T) {
	h := newTestHandler(t, testRecords())

	// Run a query first to get a query id.
	queryReq := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewBufferString(`{}`))
	queryW := httptest.NewRecorder()
	h.Query(queryW, queryReq)
	require.Equal(t, http.StatusOK, queryW.Code)

	var queryResp struct {
		QueryID string `json:"query_id"`
	}
	require.NoError(t, json.Unmarshal(queryW.Body.Bytes(), &queryResp))

	body := bytes.NewBufferString(`{"query_id":"` + queryResp.QueryID + `","property_id":"A2"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	w := httptest.NewRecorder()
	h.Analyze(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		PropertyID string                   `json:"property_id"`
		Analysis   contracts.AnalysisResult `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "A2", resp.PropertyID)
	// 950000 valuation, 56 years old, individual owner, VE flood zone:
	// 50 - 10 - 15 + 5 - 20 = 10.
	assert.Equal(t, 10, resp.Analysis.InvestmentScore)
	assert.Equal(t, contracts.ClassifyWatch, resp.Analysis.Classification)
	assert.Equal(t, contracts.RiskHigh, resp.Analysis.RiskLevel)
}

func TestAnalyze_UnknownQueryID(t *testing.T) {
	h := newTestHandler(t, nil)

	body := bytes.NewBufferString(`{"query_id":"nope","property_id":"A1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	w := httptest.NewRecorder()
	h.Analyze(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyze_InlineProperty(t *testing.T) {
	h := newTestHandler(t, nil)

	body := bytes.NewBufferString(`{"property":{"attom_id":"X9","estimated_value":"150000","year_built":"2014","flood_zone":"X"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	w := httptest.NewRecorder()
	h.Analyze(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Analysis contracts.AnalysisResult `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// 50 + 15 + 20 + 0 + 10 = 95.
	assert.Equal(t, 95, resp.Analysis.InvestmentScore)
	assert.Equal(t, contracts.ClassifyBuy, resp.Analysis.Classification)
}

func TestAnalyzeBatch_Inline(t *testing.T) {
	h := newTestHandler(t, nil)

	body := bytes.NewBufferString(`{"properties":[
		{"attom_id":"1","estimated_value":"100000","year_built":"2015","flood_zone":"X"},
		{"attom_id":"2","estimated_value":"900000","year_built":"1975","flood_zone":"VE"}
	]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze/batch", body)
	w := httptest.NewRecorder()
	h.AnalyzeBatch(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Batch   contracts.BatchSummary     `json:"batch"`
		Results []contracts.AnalysisResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Batch.PropertiesAnalyzed)
	assert.Equal(t, contracts.ClassifyMixed, resp.Batch.Classification)
	assert.Len(t, resp.Results, 2)
}

func TestAnalyzeBatch_EmptyBody(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/batch", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	h.AnalyzeBatch(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Batch contracts.BatchSummary `json:"batch"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Batch.PropertiesAnalyzed)
	assert.Equal(t, contracts.ClassifyUnknown, resp.Batch.Classification)
}

func TestUpload(t *testing.T) {
	h := newTestHandler(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "props.csv")
	require.NoError(t, err)
	_, err = io.Copy(fw, strings.NewReader(
		"attom_id,estimated_value,year_built\nU1,250000,2008\nU2,800000,1960\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-properties", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.Upload(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		QueryID    string                     `json:"query_id"`
		Properties []contracts.PropertyRecord `json:"properties"`
		Count      int                        `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.QueryID)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "Mid", resp.Properties[0]["valuation_band"])
	assert.Equal(t, "High", resp.Properties[1]["valuation_band"])
}

func TestUpload_MissingFile(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/upload-properties", strings.NewReader("nope"))
	w := httptest.NewRecorder()
	h.Upload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
