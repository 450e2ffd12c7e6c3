// Package analysis runs the full per-property pipeline: signal derivation,
// heuristic scoring, and narrative generation, plus batch aggregation.
package analysis

import (
	"math"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/narrative"
	"github.com/blacklandcg/scoutiq/internal/reconcile"
	"github.com/blacklandcg/scoutiq/internal/scoring"
	"github.com/blacklandcg/scoutiq/internal/signals"
	"github.com/blacklandcg/scoutiq/pkg/logger"
)

// Analyzer wires the deriver and scorer into the analysis entrypoints.
type Analyzer struct {
	deriver *signals.Deriver
	scorer  *scoring.Scorer
	logger  *logger.Logger
}

func NewAnalyzer(deriver *signals.Deriver, scorer *scoring.Scorer, log *logger.Logger) *Analyzer {
	return &Analyzer{
		deriver: deriver,
		scorer:  scorer,
		logger:  log,
	}
}

// AnalyzeProperty runs the full pipeline over one record. Records that
// already carry derived signal fields keep them; raw records are derived
// first. The record is not modified.
func (a *Analyzer) AnalyzeProperty(rec contracts.PropertyRecord) contracts.AnalysisResult {
	var sig contracts.DerivedSignals
	if rec.Has(contracts.KeyPrimaryValuation) {
		sig = signalsFromRecord(rec)
	} else {
		sig = a.deriver.Derive(rec)
	}
	return a.buildResult(rec, sig)
}

// analyzeSafe is the batch-path variant of AnalyzeProperty: raw records go
// through the panic-recovering deriver so one bad record degrades to safe
// defaults instead of aborting the batch.
func (a *Analyzer) analyzeSafe(rec contracts.PropertyRecord) contracts.AnalysisResult {
	var sig contracts.DerivedSignals
	if rec.Has(contracts.KeyPrimaryValuation) {
		sig = signalsFromRecord(rec)
	} else {
		sig = a.deriver.DeriveSafe(rec)
	}
	return a.buildResult(rec, sig)
}

func (a *Analyzer) buildResult(rec contracts.PropertyRecord, sig contracts.DerivedSignals) contracts.AnalysisResult {
	score := a.scorer.Score(&sig)
	text := narrative.Narrate(rec, score, &sig)

	return contracts.AnalysisResult{
		Summary:         text.Summary,
		Classification:  score.Classification,
		Confidence:      score.Confidence,
		Insights:        text.Insights,
		RiskLevel:       score.RiskLevel,
		InvestmentScore: score.InvestmentScore,
		Valuation:       sig.PrimaryValuation,
		PropertyAge:     sig.AgeOrZero(),
	}
}

// AnalyzeBatch analyzes every record and aggregates a portfolio summary.
// An empty input returns the defined no-data result rather than an error.
func (a *Analyzer) AnalyzeBatch(records []contracts.PropertyRecord) contracts.BatchSummary {
	if len(records) == 0 {
		return contracts.BatchSummary{
			Summary:            "No properties provided for analysis.",
			Classification:     contracts.ClassifyUnknown,
			Confidence:         0.0,
			Insights:           []string{},
			PropertiesAnalyzed: 0,
		}
	}

	results := make([]contracts.AnalysisResult, len(records))
	breakdown := contracts.BatchBreakdown{}
	confSum := 0.0
	for i, rec := range records {
		results[i] = a.analyzeSafe(rec)
		confSum += results[i].Confidence

		switch results[i].Classification {
		case contracts.ClassifyBuy:
			breakdown.BuyOpportunities++
		case contracts.ClassifyHold:
			breakdown.HoldCandidates++
		case contracts.ClassifyWatch:
			breakdown.WatchList++
		}
	}

	// The average reads primary_valuation off the input records, which for
	// batch callers are expected to arrive signal-enriched. Records without
	// the field contribute zero to the mean.
	valSum := 0.0
	for _, rec := range records {
		valSum += reconcile.Number(rec, contracts.KeyPrimaryValuation)
	}
	avgValuation := valSum / float64(len(records))

	return contracts.BatchSummary{
		Summary:            narrative.MarketSummary(len(records), breakdown, avgValuation),
		Classification:     contracts.ClassifyMixed,
		Confidence:         confSum / float64(len(results)),
		Insights:           narrative.MarketInsights(records, results),
		PropertiesAnalyzed: len(records),
		Breakdown:          &breakdown,
		AverageValuation:   math.Round(avgValuation*100) / 100,
		Results:            results,
	}
}

// EnrichAndAnalyze derives signals in place over the records and then runs
// the batch analysis. This is the path for raw, un-enriched input.
func (a *Analyzer) EnrichAndAnalyze(records []contracts.PropertyRecord) contracts.BatchSummary {
	a.deriver.DeriveBatch(records)
	return a.AnalyzeBatch(records)
}
