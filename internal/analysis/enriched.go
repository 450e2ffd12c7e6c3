package analysis

import (
	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/reconcile"
)

// signalsFromRecord reconstructs derived signals from a record that was
// enriched by an earlier derivation pass. Missing fields fall back to the
// same defaults a raw empty record would derive to: zero valuation, Unknown
// categories, nil age.
func signalsFromRecord(rec contracts.PropertyRecord) contracts.DerivedSignals {
	sig := contracts.DerivedSignals{
		PrimaryValuation: reconcile.Number(rec, contracts.KeyPrimaryValuation, "valuation"),
		ValuationBand:    contracts.ValuationBand(textOr(rec, contracts.KeyValuationBand, string(contracts.BandUnknown))),
		OwnershipType:    contracts.OwnershipType(textOr(rec, contracts.KeyOwnershipType, string(contracts.OwnershipUnknown))),
		AgeCategory:      contracts.AgeCategory(textOr(rec, contracts.KeyAgeCategory, string(contracts.AgeUnknown))),
		FloodRisk:        contracts.FloodRisk(textOr(rec, contracts.KeyFloodRisk, string(contracts.FloodUnknown))),
	}

	if rec.Has(contracts.KeyPropertyAge) && rec[contracts.KeyPropertyAge] != nil {
		age := int(reconcile.Number(rec, contracts.KeyPropertyAge))
		sig.PropertyAge = &age
	}
	if due := reconcile.Date(rec, contracts.KeyLoanMaturity); due != nil {
		sig.LoanMaturity = due
	}
	if hint := reconcile.Text(rec, contracts.KeyClassificationHint); hint != "" {
		sig.ClassificationHint = contracts.Classification(hint)
	}
	if v := reconcile.Text(rec, contracts.KeyAbsenteeOwner); v == "true" {
		sig.AbsenteeOwner = true
	}
	return sig
}

func textOr(rec contracts.PropertyRecord, key, fallback string) string {
	if v := reconcile.Text(rec, key); v != "" {
		return v
	}
	return fallback
}
