package signals

import (
	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/reconcile"
)

// BandPolicy selects which valuation banding rule applies. Two rule sets
// exist because the import pipeline and the map overlay historically used
// different thresholds; they are kept as named policies rather than merged.
type BandPolicy string

const (
	// BandPolicyStandard: <250k Low, 250k-750k Mid, >750k High. Default,
	// and the set whose breakpoints the heuristic scorer shares.
	BandPolicyStandard BandPolicy = "standard"
	// BandPolicyGranular: <200k Low, <500k Medium, <1M High, else Premium.
	BandPolicyGranular BandPolicy = "granular"
)

// ValuationCalculator coalesces valuation sources and assigns a band.
type ValuationCalculator struct {
	policy BandPolicy
}

// NewValuationCalculator creates a valuation calculator with the given
// banding policy.
func NewValuationCalculator(policy BandPolicy) *ValuationCalculator {
	if policy == "" {
		policy = BandPolicyStandard
	}
	return &ValuationCalculator{policy: policy}
}

// Calculate resolves the primary valuation and related ratios for a record.
func (c *ValuationCalculator) Calculate(rec contracts.PropertyRecord, out *contracts.DerivedSignals) {
	val := reconcile.Number(rec, reconcile.ValuationAliases...)
	out.PrimaryValuation = val
	out.ValuationBand = c.Band(val)

	if lotSF := reconcile.Number(rec, reconcile.LotSFAliases...); lotSF > 0 {
		out.ValuePerSF = val / lotSF
	}

	assessed := reconcile.Number(rec, reconcile.AssessedValueAliases...)
	market := reconcile.Number(rec, reconcile.MarketValueAliases...)
	if assessed > 0 && market > 0 {
		out.AssessmentRatio = assessed / market
	}
}

// Band maps a valuation to its band under the configured policy.
// Non-positive valuations are Unknown under both policies.
func (c *ValuationCalculator) Band(val float64) contracts.ValuationBand {
	if val <= 0 {
		return contracts.BandUnknown
	}

	if c.policy == BandPolicyGranular {
		switch {
		case val < 200_000:
			return contracts.BandLow
		case val < 500_000:
			return contracts.BandMedium
		case val < 1_000_000:
			return contracts.BandHigh
		default:
			return contracts.BandPremium
		}
	}

	switch {
	case val < 250_000:
		return contracts.BandLow
	case val <= 750_000:
		return contracts.BandMid
	default:
		return contracts.BandHigh
	}
}
