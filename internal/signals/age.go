package signals

import (
	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/reconcile"
)

// AgeCalculator derives property age from the year built. A year is usable
// only when 1800 < year <= current year; anything else leaves the age nil.
type AgeCalculator struct{}

func NewAgeCalculator() *AgeCalculator {
	return &AgeCalculator{}
}

// Calculate resolves PropertyAge and AgeCategory relative to currentYear.
func (c *AgeCalculator) Calculate(rec contracts.PropertyRecord, currentYear int, out *contracts.DerivedSignals) {
	out.AgeCategory = contracts.AgeUnknown

	year, ok := reconcile.Year(rec, reconcile.YearBuiltAliases...)
	if !ok || year <= 1800 || year > currentYear {
		return
	}

	age := currentYear - year
	out.PropertyAge = &age
	out.AgeCategory = Categorize(age)
}

// Categorize buckets an age in years.
func Categorize(age int) contracts.AgeCategory {
	switch {
	case age < 5:
		return contracts.AgeNew
	case age < 20:
		return contracts.AgeRecent
	case age < 50:
		return contracts.AgeMature
	default:
		return contracts.AgeOld
	}
}
