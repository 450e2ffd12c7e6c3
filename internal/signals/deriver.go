package signals

import (
	"sort"
	"time"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/pkg/logger"
)

// Deriver runs every signal calculator over raw property records.
type Deriver struct {
	valuation *ValuationCalculator
	ownership *OwnershipCalculator
	age       *AgeCalculator
	flood     *FloodCalculator
	loan      *LoanCalculator
	market    *MarketCalculator
	hint      *HintCalculator

	logger *logger.Logger
	now    func() time.Time
}

// Options configures policy-selectable calculators.
type Options struct {
	BandPolicy  BandPolicy
	FloodPolicy FloodPolicy
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewDeriver creates a signal deriver with the given policies.
func NewDeriver(log *logger.Logger, opts Options) *Deriver {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Deriver{
		valuation: NewValuationCalculator(opts.BandPolicy),
		ownership: NewOwnershipCalculator(),
		age:       NewAgeCalculator(),
		flood:     NewFloodCalculator(opts.FloodPolicy),
		loan:      NewLoanCalculator(),
		market:    NewMarketCalculator(),
		hint:      NewHintCalculator(),
		logger:    log,
		now:       now,
	}
}

// Derive computes the full signal set for one record. The record itself is
// not modified; call DerivedSignals.Apply to merge signals back in.
func (d *Deriver) Derive(rec contracts.PropertyRecord) contracts.DerivedSignals {
	now := d.now()
	out := contracts.DerivedSignals{}

	d.valuation.Calculate(rec, &out)
	d.ownership.Calculate(rec, &out)
	d.age.Calculate(rec, now.Year(), &out)
	// Flood reads the derived age, keep it after the age calculator.
	d.flood.Calculate(rec, &out)
	d.loan.Calculate(rec, &out)
	d.market.Calculate(rec, now, &out)
	d.hint.Calculate(&out)

	return out
}

// DeriveBatch derives and applies signals for every record in place. A
// record that panics a calculator gets safe defaults instead of failing the
// batch.
func (d *Deriver) DeriveBatch(records []contracts.PropertyRecord) []contracts.DerivedSignals {
	results := make([]contracts.DerivedSignals, len(records))
	for i, rec := range records {
		results[i] = d.DeriveSafe(rec)
		results[i].Apply(rec)
	}
	return results
}

// DeriveSafe is Derive with panic recovery: a record that blows up a
// calculator yields Watch-shaped defaults and a warning instead of
// propagating. Batch paths use this so one bad record cannot take down the
// rest.
func (d *Deriver) DeriveSafe(rec contracts.PropertyRecord) (out contracts.DerivedSignals) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithFields(map[string]interface{}{
				"property_id": rec.ID(),
				"panic":       r,
			}).Warn("signal derivation failed, using defaults")
			out = contracts.DerivedSignals{
				ValuationBand:      contracts.BandUnknown,
				OwnershipType:      contracts.OwnershipUnknown,
				AgeCategory:        contracts.AgeUnknown,
				FloodRisk:          contracts.FloodUnknown,
				ClassificationHint: contracts.ClassifyWatch,
			}
		}
	}()
	return d.Derive(rec)
}

// Summarize computes distribution statistics over a derived set. Valuations
// of zero count toward the totals but not the averages.
func Summarize(signals []contracts.DerivedSignals) contracts.SignalSummary {
	summary := contracts.SignalSummary{
		TotalProperties:     len(signals),
		ValuationBands:      make(map[string]int),
		OwnershipTypes:      make(map[string]int),
		AgeCategories:       make(map[string]int),
		ClassificationHints: make(map[string]int),
	}
	if len(signals) == 0 {
		return summary
	}

	absentee := 0
	valuations := make([]float64, 0, len(signals))
	for _, s := range signals {
		summary.ValuationBands[string(s.ValuationBand)]++
		summary.OwnershipTypes[string(s.OwnershipType)]++
		summary.AgeCategories[string(s.AgeCategory)]++
		summary.ClassificationHints[string(s.ClassificationHint)]++
		if s.AbsenteeOwner {
			absentee++
		}
		if s.PrimaryValuation > 0 {
			valuations = append(valuations, s.PrimaryValuation)
		}
	}
	summary.AbsenteeRate = float64(absentee) / float64(len(signals))

	if len(valuations) > 0 {
		total := 0.0
		for _, v := range valuations {
			total += v
		}
		summary.AverageValuation = total / float64(len(valuations))
		summary.MedianValuation = median(valuations)
	}
	return summary
}

func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
