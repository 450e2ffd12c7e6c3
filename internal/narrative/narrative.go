// Package narrative renders natural-language summaries and insight bullets
// from scored property signals. Output is templated sentence assembly, fully
// deterministic given the same inputs.
package narrative

import (
	"fmt"
	"strings"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/reconcile"
)

// maxInsights caps per-property insight bullets. Generation order doubles as
// priority: valuation, age, ownership, flood, band, classification.
const maxInsights = 6

// Narrate builds the summary sentence and insight list for one scored
// property.
func Narrate(rec contracts.PropertyRecord, score contracts.ScoreResult, sig *contracts.DerivedSignals) contracts.NarrativeResult {
	city := reconcile.Text(rec, reconcile.CityAliases...)
	if city == "" {
		city = "Unknown City"
	}
	return contracts.NarrativeResult{
		Summary:  summary(score, sig, city),
		Insights: insights(score, sig),
	}
}

func summary(score contracts.ScoreResult, sig *contracts.DerivedSignals, city string) string {
	valStr := "undisclosed"
	if sig.PrimaryValuation > 0 {
		valStr = "$" + formatAmount(sig.PrimaryValuation)
	}

	ageStr := "new construction"
	if age := sig.AgeOrZero(); age > 0 {
		ageStr = fmt.Sprintf("%d years old", age)
	}

	var action, sentiment string
	switch score.Classification {
	case contracts.ClassifyBuy:
		action = "This property presents attractive fundamentals with"
		sentiment = "strong investment opportunity"
	case contracts.ClassifyHold:
		action = "This property offers"
		sentiment = "moderate investment potential"
	default:
		action = "This property warrants caution due to"
		sentiment = "requires careful evaluation"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s a valuation of %s in %s. ", action, valStr, city)
	fmt.Fprintf(&b, "Built %s, this %s-owned property is a %s. ",
		ageStr, strings.ToLower(string(sig.OwnershipType)), sentiment)

	switch sig.FloodRisk {
	case contracts.FloodHigh, contracts.FloodMedium:
		fmt.Fprintf(&b, "Note: Property has %s flood risk exposure. ",
			strings.ToLower(string(sig.FloodRisk)))
	case contracts.FloodLow:
		b.WriteString("Low flood risk enhances investment appeal. ")
	}

	fmt.Fprintf(&b, "Investment score: %d/100.", score.InvestmentScore)
	return b.String()
}

func insights(score contracts.ScoreResult, sig *contracts.DerivedSignals) []string {
	out := make([]string, 0, maxInsights)

	switch {
	case sig.PrimaryValuation < 250_000:
		out = append(out, "Entry-level price point offers accessibility for first-time investors")
	case sig.PrimaryValuation > 750_000:
		out = append(out, "Premium valuation requires higher capital commitment and risk tolerance")
	default:
		out = append(out, "Mid-market valuation balances opportunity with manageable risk")
	}

	if age := sig.PropertyAge; age != nil {
		switch {
		case *age < 5:
			out = append(out, "Recent construction reduces immediate maintenance concerns")
		case *age <= 20:
			out = append(out, "Prime property age combines modern amenities with established value")
		case *age > 40:
			out = append(out, "Older property may require capital improvements or renovation")
		}
	}

	switch sig.OwnershipType {
	case contracts.OwnershipLLC:
		out = append(out, "LLC ownership suggests professional investment approach")
	case contracts.OwnershipIndividual:
		out = append(out, "Individual ownership typical for owner-occupied or personal investment")
	}

	switch sig.FloodRisk {
	case contracts.FloodHigh:
		out = append(out, "⚠️ High flood risk requires comprehensive insurance and mitigation planning")
	case contracts.FloodMedium:
		out = append(out, "⚠️ Moderate flood exposure warrants insurance review")
	case contracts.FloodLow:
		out = append(out, "✓ Low flood risk enhances long-term value stability")
	}

	switch sig.ValuationBand {
	case contracts.BandLow:
		out = append(out, "Below-market valuation may indicate value opportunity or underlying issues")
	case contracts.BandHigh:
		out = append(out, "High-end market positioning targets premium buyer segment")
	}

	switch score.Classification {
	case contracts.ClassifyBuy:
		out = append(out, "✓ Strong fundamentals support acquisition consideration")
	case contracts.ClassifyHold:
		out = append(out, "Suitable for patient investors seeking moderate returns")
	default:
		out = append(out, "Additional due diligence recommended before investment decision")
	}

	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out
}

// formatAmount renders a dollar amount with thousands separators and no
// decimals, e.g. 1234567.8 as "1,234,568".
func formatAmount(v float64) string {
	n := int64(v + 0.5)
	if n < 0 {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
