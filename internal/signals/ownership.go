package signals

import (
	"strings"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/reconcile"
)

// corpKeywords flag an owner name as a legal entity. Matched as substrings
// of the upper-cased owner name.
var corpKeywords = []string{
	"LLC", "L.L.C", "INC", "CORP", "LP", "LLP",
	"CO.", "COMPANY", "ENTERPRISES", "HOLDINGS",
}

// OwnershipCalculator classifies the owner and the occupancy posture.
type OwnershipCalculator struct{}

func NewOwnershipCalculator() *OwnershipCalculator {
	return &OwnershipCalculator{}
}

// Calculate derives ownership type, absentee status, multiple-owner and
// owner-occupied flags for a record.
func (c *OwnershipCalculator) Calculate(rec contracts.PropertyRecord, out *contracts.DerivedSignals) {
	owner1 := reconcile.Text(rec, reconcile.Owner1Aliases...)
	owner2 := reconcile.Text(rec, reconcile.Owner2Aliases...)

	out.OwnershipType = classifyOwner(owner1)
	out.MultipleOwners = owner2 != ""

	// Absentee compares the raw address strings; no normalization beyond
	// trimming. Missing either side means not absentee.
	mail := reconcile.Text(rec, reconcile.MailAddressAliases...)
	site := reconcile.Text(rec, reconcile.SiteAddressAliases...)
	out.AbsenteeOwner = mail != "" && site != "" && mail != site

	out.OwnerOccupied = reconcile.Text(rec, reconcile.OwnerOccupiedAliases...) == "1"
}

func classifyOwner(name string) contracts.OwnershipType {
	if name == "" {
		return contracts.OwnershipUnknown
	}
	upper := strings.ToUpper(name)
	for _, kw := range corpKeywords {
		if strings.Contains(upper, kw) {
			return contracts.OwnershipLLC
		}
	}
	return contracts.OwnershipIndividual
}
