package analysis

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/scoring"
	"github.com/blacklandcg/scoutiq/internal/signals"
	"github.com/blacklandcg/scoutiq/pkg/logger"
)

func testAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	log := logger.NewWriter(io.Discard, "error")
	deriver := signals.NewDeriver(log, signals.Options{
		Now: func() time.Time {
			return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		},
	})
	return NewAnalyzer(deriver, scoring.NewScorer(false), log)
}

func TestAnalyzeProperty_EnrichedRecord(t *testing.T) {
	a := testAnalyzer(t)

	// Pre-enriched record, the shape a follow-up analysis call receives.
	rec := contracts.PropertyRecord{
		"attom_id":              "TEST001",
		"property_address_city": "Austin",
		"primary_valuation":     350000.0,
		"valuation_band":        "Mid",
		"ownership_type":        "Individual",
		"property_age":          15,
		"flood_risk":            "Low",
	}

	got := a.AnalyzeProperty(rec)
	if got.InvestmentScore != 90 {
		t.Errorf("InvestmentScore = %d, want 90", got.InvestmentScore)
	}
	if got.Classification != contracts.ClassifyBuy {
		t.Errorf("Classification = %v, want Buy", got.Classification)
	}
	if got.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", got.Confidence)
	}
	if got.RiskLevel != contracts.RiskLow {
		t.Errorf("RiskLevel = %v, want Low", got.RiskLevel)
	}
	if got.Valuation != 350000 {
		t.Errorf("Valuation = %v, want 350000", got.Valuation)
	}
	if got.PropertyAge != 15 {
		t.Errorf("PropertyAge = %d, want 15", got.PropertyAge)
	}
	if !strings.Contains(got.Summary, "Austin") {
		t.Errorf("Summary missing city: %q", got.Summary)
	}
	if len(got.Insights) == 0 || len(got.Insights) > 6 {
		t.Errorf("len(Insights) = %d, want 1..6", len(got.Insights))
	}
}

func TestAnalyzeProperty_RawRecordDerivesFirst(t *testing.T) {
	a := testAnalyzer(t)

	rec := contracts.PropertyRecord{
		"attom_id":               "TEST002",
		"estimated_value":        "900000",
		"year_built":             "1981",
		"party_owner1_name_full": "JOHN SMITH",
		"flood_zone":             "FLOODWAY",
		"property_address_city":  "Austin",
	}

	got := a.AnalyzeProperty(rec)
	// 50 - 10 - 15 + 5 - 20
	if got.InvestmentScore != 10 {
		t.Errorf("InvestmentScore = %d, want 10", got.InvestmentScore)
	}
	if got.Classification != contracts.ClassifyWatch {
		t.Errorf("Classification = %v, want Watch", got.Classification)
	}
	if got.Confidence != 0.52 {
		t.Errorf("Confidence = %v, want 0.52", got.Confidence)
	}
	if got.RiskLevel != contracts.RiskHigh {
		t.Errorf("RiskLevel = %v, want High", got.RiskLevel)
	}
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	a := testAnalyzer(t)

	got := a.AnalyzeBatch(nil)
	if got.PropertiesAnalyzed != 0 {
		t.Errorf("PropertiesAnalyzed = %d, want 0", got.PropertiesAnalyzed)
	}
	if got.Classification != contracts.ClassifyUnknown {
		t.Errorf("Classification = %v, want Unknown", got.Classification)
	}
	if got.Confidence != 0.0 {
		t.Errorf("Confidence = %v, want 0.0", got.Confidence)
	}
	if got.Insights == nil || len(got.Insights) != 0 {
		t.Errorf("Insights = %v, want empty non-nil", got.Insights)
	}
	if got.Summary != "No properties provided for analysis." {
		t.Errorf("Summary = %q", got.Summary)
	}
	if got.Breakdown != nil {
		t.Errorf("Breakdown = %+v, want nil", got.Breakdown)
	}
}

func TestAnalyzeBatch_Aggregation(t *testing.T) {
	a := testAnalyzer(t)

	records := []contracts.PropertyRecord{
		{
			"primary_valuation": 350000.0,
			"valuation_band":    "Mid",
			"ownership_type":    "Individual",
			"property_age":      15,
			"flood_risk":        "Low",
		}, // score 90, Buy, 0.95
		{
			"primary_valuation": 900000.0,
			"valuation_band":    "High",
			"ownership_type":    "Individual",
			"property_age":      45,
			"flood_risk":        "High",
		}, // score 10, Watch, 0.52
		{
			"primary_valuation": 400000.0,
			"valuation_band":    "Mid",
			"ownership_type":    "Unknown",
			"flood_risk":        "Unknown",
		}, // score 55, Hold, 0.63
	}

	got := a.AnalyzeBatch(records)
	if got.PropertiesAnalyzed != 3 {
		t.Errorf("PropertiesAnalyzed = %d, want 3", got.PropertiesAnalyzed)
	}
	if got.Classification != contracts.ClassifyMixed {
		t.Errorf("Classification = %v, want Mixed Portfolio", got.Classification)
	}
	if got.Breakdown == nil {
		t.Fatal("Breakdown = nil")
	}
	if got.Breakdown.BuyOpportunities != 1 || got.Breakdown.HoldCandidates != 1 || got.Breakdown.WatchList != 1 {
		t.Errorf("Breakdown = %+v, want 1/1/1", got.Breakdown)
	}

	wantAvg := (350000.0 + 900000.0 + 400000.0) / 3
	if got.AverageValuation != wantAvg {
		t.Errorf("AverageValuation = %v, want %v", got.AverageValuation, wantAvg)
	}

	wantConf := (0.95 + 0.52 + 0.63) / 3
	if diff := got.Confidence - wantConf; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Confidence = %v, want %v", got.Confidence, wantConf)
	}

	if len(got.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3", len(got.Results))
	}
	// Order follows the input.
	if got.Results[0].Classification != contracts.ClassifyBuy ||
		got.Results[1].Classification != contracts.ClassifyWatch ||
		got.Results[2].Classification != contracts.ClassifyHold {
		t.Errorf("Results order = %v/%v/%v",
			got.Results[0].Classification, got.Results[1].Classification, got.Results[2].Classification)
	}

	if !strings.Contains(got.Summary, "Analyzed 3 properties") {
		t.Errorf("Summary = %q", got.Summary)
	}
}

func TestEnrichAndAnalyze_RawBatch(t *testing.T) {
	a := testAnalyzer(t)

	records := []contracts.PropertyRecord{
		{"attom_id": "1", "estimated_value": "100000", "year_built": "2015", "flood_zone": "X"},
		{"attom_id": "2", "estimated_value": "600000"},
	}

	got := a.EnrichAndAnalyze(records)
	if got.PropertiesAnalyzed != 2 {
		t.Errorf("PropertiesAnalyzed = %d, want 2", got.PropertiesAnalyzed)
	}
	// Enrichment wrote primary_valuation onto the inputs, so the batch
	// average sees the derived values.
	if got.AverageValuation != 350000 {
		t.Errorf("AverageValuation = %v, want 350000", got.AverageValuation)
	}
	if records[0][contracts.KeyValuationBand] != "Low" {
		t.Errorf("record 0 band = %v, want Low", records[0][contracts.KeyValuationBand])
	}
}

func TestAnalyzeBatch_DegradesFailedDerivation(t *testing.T) {
	log := logger.NewWriter(io.Discard, "error")
	deriver := signals.NewDeriver(log, signals.Options{
		Now: func() time.Time { panic("clock unavailable") },
	})
	a := NewAnalyzer(deriver, scoring.NewScorer(false), log)

	records := []contracts.PropertyRecord{
		// Enriched record, analyzed without touching the deriver.
		{
			"attom_id":          "OK1",
			"primary_valuation": 150000.0,
			"valuation_band":    "Low",
			"property_age":      10,
			"flood_risk":        "Low",
		},
		// Raw record whose derivation blows up.
		{
			"attom_id":        "BAD1",
			"estimated_value": "100000",
		},
	}

	summary := a.AnalyzeBatch(records)

	if summary.PropertiesAnalyzed != 2 {
		t.Fatalf("PropertiesAnalyzed = %d, want 2", summary.PropertiesAnalyzed)
	}

	// 50 + 15 + 20 + 10 = 95
	if summary.Results[0].InvestmentScore != 95 {
		t.Errorf("Results[0].InvestmentScore = %d, want 95", summary.Results[0].InvestmentScore)
	}
	if summary.Results[0].Classification != contracts.ClassifyBuy {
		t.Errorf("Results[0].Classification = %v, want Buy", summary.Results[0].Classification)
	}

	// The failed record degrades to all-Unknown signals: base score only.
	if summary.Results[1].InvestmentScore != 50 {
		t.Errorf("Results[1].InvestmentScore = %d, want 50", summary.Results[1].InvestmentScore)
	}
	if summary.Results[1].Classification != contracts.ClassifyHold {
		t.Errorf("Results[1].Classification = %v, want Hold", summary.Results[1].Classification)
	}
	if summary.Results[1].Valuation != 0 {
		t.Errorf("Results[1].Valuation = %v, want 0", summary.Results[1].Valuation)
	}
}
