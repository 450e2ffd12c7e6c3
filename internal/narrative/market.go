package narrative

import (
	"fmt"
	"strings"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/reconcile"
)

// MarketSummary renders the portfolio-level sentence for a batch. Sentiment
// is keyed on the buy share: above half the portfolio reads strong, above a
// third moderately favorable, anything less cautious.
func MarketSummary(total int, breakdown contracts.BatchBreakdown, avgValuation float64) string {
	buyPct := float64(breakdown.BuyOpportunities) / float64(total) * 100

	var sentiment string
	switch {
	case float64(breakdown.BuyOpportunities) > float64(total)/2:
		sentiment = "strong investment market"
	case float64(breakdown.BuyOpportunities) > float64(total)/3:
		sentiment = "moderately favorable market"
	default:
		sentiment = "cautious market environment"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %d properties with average valuation of $%s. ",
		total, formatAmount(avgValuation))
	fmt.Fprintf(&b, "Market assessment: %s with %d buy opportunities (%.0f%%), ",
		sentiment, breakdown.BuyOpportunities, buyPct)
	fmt.Fprintf(&b, "%d hold candidates, and %d properties requiring further evaluation.",
		breakdown.HoldCandidates, breakdown.WatchList)
	return b.String()
}

// MarketInsights builds the portfolio-level bullets from the input records
// and their per-property results.
func MarketInsights(records []contracts.PropertyRecord, results []contracts.AnalysisResult) []string {
	var out []string

	var valuations []float64
	for _, rec := range records {
		if v := reconcile.Number(rec, contracts.KeyPrimaryValuation); v != 0 {
			valuations = append(valuations, v)
		}
	}
	if len(valuations) > 0 {
		minVal, maxVal, sum := valuations[0], valuations[0], 0.0
		for _, v := range valuations {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
			sum += v
		}
		out = append(out, fmt.Sprintf("Valuation range: $%s - $%s (avg: $%s)",
			formatAmount(minVal), formatAmount(maxVal), formatAmount(sum/float64(len(valuations)))))
	}

	var ages []float64
	for _, rec := range records {
		if a := reconcile.Number(rec, contracts.KeyPropertyAge); a != 0 {
			ages = append(ages, a)
		}
	}
	if len(ages) > 0 {
		sum := 0.0
		for _, a := range ages {
			sum += a
		}
		out = append(out, fmt.Sprintf("Average property age: %.0f years", sum/float64(len(ages))))
	}

	llc := 0
	for _, rec := range records {
		if reconcile.Text(rec, contracts.KeyOwnershipType) == string(contracts.OwnershipLLC) {
			llc++
		}
	}
	if llc > len(records)/2 {
		out = append(out, "Majority LLC ownership indicates institutional investor presence")
	}

	highRisk := 0
	for _, r := range results {
		if r.RiskLevel == contracts.RiskHigh {
			highRisk++
		}
	}
	if highRisk > len(results)/3 {
		out = append(out, "⚠️ Elevated risk profile across portfolio requires careful evaluation")
	}

	if len(results) > 0 {
		sum := 0
		for _, r := range results {
			sum += r.InvestmentScore
		}
		out = append(out, fmt.Sprintf("Average investment score: %.0f/100",
			float64(sum)/float64(len(results))))
	}

	return out
}
