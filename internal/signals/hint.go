package signals

import "github.com/blacklandcg/scoutiq/internal/contracts"

// Hint classification thresholds, same breakpoints as the full scorer.
const (
	hintBuyThreshold  = 70
	hintHoldThreshold = 50
)

// HintCalculator produces a coarse classification hint from already-derived
// signals. It runs the valuation, age, and ownership scoring rules without
// flood or narrative context; the analysis pipeline always recomputes the
// real classification.
type HintCalculator struct{}

func NewHintCalculator() *HintCalculator {
	return &HintCalculator{}
}

func (c *HintCalculator) Calculate(out *contracts.DerivedSignals) {
	score := 50

	if val := out.PrimaryValuation; val > 0 {
		switch {
		case val < 250_000:
			score += 15
		case val > 750_000:
			score -= 10
		default:
			score += 5
		}
	}

	if out.PropertyAge != nil {
		switch age := *out.PropertyAge; {
		case age >= 5 && age <= 20:
			score += 20
		case age < 5:
			score += 10
		case age > 40:
			score -= 15
		}
	}

	if out.OwnershipType == contracts.OwnershipLLC {
		score += 10
	}

	switch {
	case score >= hintBuyThreshold:
		out.ClassificationHint = contracts.ClassifyBuy
	case score >= hintHoldThreshold:
		out.ClassificationHint = contracts.ClassifyHold
	default:
		out.ClassificationHint = contracts.ClassifyWatch
	}
}
