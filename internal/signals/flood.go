package signals

import (
	"math"
	"strings"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/reconcile"
)

// FloodPolicy selects the flood-risk source.
type FloodPolicy string

const (
	// FloodPolicyAuto uses the FEMA zone code when one is present and falls
	// back to the geometric heuristic otherwise. Default.
	FloodPolicyAuto FloodPolicy = "auto"
	// FloodPolicyZone uses only the zone code; records with no code come
	// back Unknown.
	FloodPolicyZone FloodPolicy = "zone"
	// FloodPolicyGeometric ignores zone codes entirely.
	FloodPolicyGeometric FloodPolicy = "geometric"
)

// Reference point for the geometric heuristic, central Austin TX. Distances
// are flat-plane degree deltas, not great-circle.
const (
	refLatitude  = 30.2672
	refLongitude = -97.7431
)

// FloodCalculator derives flood exposure from FEMA zone codes or, absent a
// code, from a proximity heuristic around the reference point.
type FloodCalculator struct {
	policy FloodPolicy
}

func NewFloodCalculator(policy FloodPolicy) *FloodCalculator {
	if policy == "" {
		policy = FloodPolicyAuto
	}
	return &FloodCalculator{policy: policy}
}

// Calculate sets FloodRisk on the output signals. The geometric path reads
// tax market value and age directly from the record, so AgeCalculator must
// run before this one.
func (c *FloodCalculator) Calculate(rec contracts.PropertyRecord, out *contracts.DerivedSignals) {
	if c.policy != FloodPolicyGeometric {
		zone := reconcile.Text(rec, reconcile.FloodZoneAliases...)
		if zone != "" {
			out.FloodRisk = ZoneRisk(zone)
			return
		}
		if c.policy == FloodPolicyZone {
			out.FloodRisk = contracts.FloodUnknown
			return
		}
	}
	out.FloodRisk = c.geometric(rec, out)
}

// ZoneRisk maps a FEMA-like flood zone value to a risk tier. Matching is by
// substring so descriptive values ("ZONE X", "0.2% ANNUAL CHANCE") and zone
// families (AO, AH) land in the right tier. Tier order matters: FLOODWAY
// contains "A" and resolves Medium.
func ZoneRisk(zone string) contracts.FloodRisk {
	z := strings.ToUpper(strings.TrimSpace(zone))
	switch {
	case containsAny(z, "X", "MINIMAL"):
		return contracts.FloodLow
	case containsAny(z, "AE", "A", "0.2%", "500"):
		return contracts.FloodMedium
	case containsAny(z, "FLOODWAY", "VE", "HIGH"):
		return contracts.FloodHigh
	default:
		return contracts.FloodUnknown
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func (c *FloodCalculator) geometric(rec contracts.PropertyRecord, out *contracts.DerivedSignals) contracts.FloodRisk {
	lat := reconcile.Number(rec, reconcile.LatitudeAliases...)
	lon := reconcile.Number(rec, reconcile.LongitudeAliases...)

	// The heuristic weighs raw tax market value, not the coalesced
	// primary valuation.
	val := reconcile.Number(rec, reconcile.MarketValueAliases...)
	age := out.AgeOrZero()

	// Valid coordinates are northern-western hemisphere; anything else,
	// including a sign-flipped longitude, takes the characteristics
	// fallback.
	if lat <= 0 || lon >= 0 {
		switch {
		case age > 40:
			return contracts.FloodMedium
		case val > 1_000_000:
			return contracts.FloodHigh
		default:
			return contracts.FloodLow
		}
	}

	dist := math.Hypot(lat-refLatitude, lon-refLongitude)
	switch {
	case dist < 0.05:
		switch {
		case val > 500_000:
			return contracts.FloodHigh
		case val > 200_000:
			return contracts.FloodMedium
		default:
			return contracts.FloodLow
		}
	case dist < 0.1:
		if age > 30 {
			return contracts.FloodMedium
		}
		return contracts.FloodLow
	default:
		return contracts.FloodLow
	}
}
