package scoring

import (
	"math"

	"github.com/blacklandcg/scoutiq/internal/contracts"
)

// Classification thresholds shared by the scorer and the risk mapping.
const (
	buyThreshold  = 70
	holdThreshold = 50
	baseScore     = 50
)

// Scorer turns derived signals into an investment score and classification.
// The score is additive from a base of 50 and is deliberately unclamped:
// stacked penalties drive it negative and the Watch confidence formula uses
// the raw value. ClampScore bounds the reported score to [0, 100] after the
// confidence is computed.
type Scorer struct {
	ClampScore bool
}

func NewScorer(clamp bool) *Scorer {
	return &Scorer{ClampScore: clamp}
}

// Score computes the full scoring result for one property's signals.
func (s *Scorer) Score(sig *contracts.DerivedSignals) contracts.ScoreResult {
	score := baseScore

	// A missing valuation scores as a cheap property. Zero is below every
	// threshold, so the bonus applies; the band stays Unknown regardless.
	switch {
	case sig.PrimaryValuation < 250_000:
		score += 15
	case sig.PrimaryValuation > 750_000:
		score -= 10
	default:
		score += 5
	}

	if age := sig.PropertyAge; age != nil {
		switch {
		case *age >= 5 && *age <= 20:
			score += 20
		case *age < 5:
			score += 10
		case *age > 40:
			score -= 15
		}
	}

	switch sig.OwnershipType {
	case contracts.OwnershipIndividual:
		score += 5
	case contracts.OwnershipLLC:
		score += 10
	}

	switch sig.FloodRisk {
	case contracts.FloodHigh, contracts.FloodMedium:
		score -= 20
	case contracts.FloodLow:
		score += 10
	}

	classification, confidence := Classify(score)

	if s.ClampScore {
		if score < 0 {
			score = 0
		} else if score > 100 {
			score = 100
		}
	}

	return contracts.ScoreResult{
		InvestmentScore: score,
		Classification:  classification,
		Confidence:      confidence,
		RiskLevel:       Risk(classification),
	}
}

// Classify maps a raw score to a classification and its confidence. The
// confidence grows with distance above each threshold and is bounded to
// [0, 0.95], rounded to two decimals.
func Classify(score int) (contracts.Classification, float64) {
	var (
		classification contracts.Classification
		confidence     float64
	)
	switch {
	case score >= buyThreshold:
		classification = contracts.ClassifyBuy
		confidence = 0.75 + float64(score-buyThreshold)*0.01
	case score >= holdThreshold:
		classification = contracts.ClassifyHold
		confidence = 0.60 + float64(score-holdThreshold)*0.005
	default:
		classification = contracts.ClassifyWatch
		confidence = 0.50 + float64(score)*0.002
	}
	return classification, ClampConfidence(confidence)
}

// Risk mirrors the classification thresholds.
func Risk(c contracts.Classification) contracts.RiskLevel {
	switch c {
	case contracts.ClassifyBuy:
		return contracts.RiskLow
	case contracts.ClassifyHold:
		return contracts.RiskMedium
	default:
		return contracts.RiskHigh
	}
}

// ClampConfidence bounds a confidence to [0, 0.95] and rounds to two
// decimal places.
func ClampConfidence(c float64) float64 {
	if c < 0 {
		c = 0
	} else if c > 0.95 {
		c = 0.95
	}
	return math.Round(c*100) / 100
}
