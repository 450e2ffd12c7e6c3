package contracts

import "time"

// ValuationBand buckets a continuous valuation into a market tier.
type ValuationBand string

const (
	BandLow     ValuationBand = "Low"
	BandMid     ValuationBand = "Mid"
	BandMedium  ValuationBand = "Medium" // granular policy only
	BandHigh    ValuationBand = "High"
	BandPremium ValuationBand = "Premium" // granular policy only
	BandUnknown ValuationBand = "Unknown"
)

// OwnershipType classifies the recorded owner of a property.
type OwnershipType string

const (
	OwnershipIndividual OwnershipType = "Individual"
	OwnershipLLC        OwnershipType = "LLC"
	OwnershipUnknown    OwnershipType = "Unknown"
)

// FloodRisk is the derived flood exposure tier.
type FloodRisk string

const (
	FloodLow     FloodRisk = "Low"
	FloodMedium  FloodRisk = "Medium"
	FloodHigh    FloodRisk = "High"
	FloodUnknown FloodRisk = "Unknown"
)

// AgeCategory buckets property age for display purposes. The scorer applies
// its own 5-20 year prime band independently of this bucket.
type AgeCategory string

const (
	AgeNew     AgeCategory = "New"    // < 5 years
	AgeRecent  AgeCategory = "Recent" // 5-19
	AgeMature  AgeCategory = "Mature" // 20-49
	AgeOld     AgeCategory = "Old"    // >= 50
	AgeUnknown AgeCategory = "Unknown"
)

// DerivedSignals holds every attribute computed from a single raw record.
// Values are derived, never mutated after construction.
type DerivedSignals struct {
	PrimaryValuation float64       `json:"primary_valuation"` // 0 means no valuation source present
	ValuationBand    ValuationBand `json:"valuation_band"`
	ValuePerSF       float64       `json:"value_per_sf"`
	AssessmentRatio  float64       `json:"assessment_ratio"`

	OwnershipType  OwnershipType `json:"ownership_type"`
	AbsenteeOwner  bool          `json:"absentee_owner"`
	MultipleOwners bool          `json:"multiple_owners"`
	OwnerOccupied  bool          `json:"owner_occupied"`

	PropertyAge *int        `json:"property_age"` // nil when year built is implausible
	AgeCategory AgeCategory `json:"age_category"`

	FloodRisk FloodRisk `json:"flood_risk"`

	LoanMaturity *time.Time `json:"loan_maturity"`

	LastSaleDate   *time.Time `json:"last_sale_date"`
	LastSaleAmount float64    `json:"last_sale_amount"`
	DaysSinceSale  *int       `json:"days_since_sale"`
	RecentSale     bool       `json:"recent_sale"`

	// ClassificationHint is the light pre-scorer recommendation used to
	// color map markers before full analysis runs.
	ClassificationHint Classification `json:"classification_hint"`
}

// AgeOrZero returns the property age, or 0 when unknown.
func (s *DerivedSignals) AgeOrZero() int {
	if s.PropertyAge == nil {
		return 0
	}
	return *s.PropertyAge
}

// Enriched keys attached to a record by DerivedSignals.Apply. Batch callers
// can round-trip records through query endpoints with signals in place.
const (
	KeyPrimaryValuation   = "primary_valuation"
	KeyValuationBand      = "valuation_band"
	KeyOwnershipType      = "ownership_type"
	KeyAbsenteeOwner      = "absentee_owner"
	KeyPropertyAge        = "property_age"
	KeyAgeCategory        = "age_category"
	KeyFloodRisk          = "flood_risk"
	KeyLoanMaturity       = "loan_maturity"
	KeyClassificationHint = "classification_hint"
)

// Apply merges the derived signals into the record under the enriched keys.
func (s *DerivedSignals) Apply(rec PropertyRecord) {
	rec[KeyPrimaryValuation] = s.PrimaryValuation
	rec[KeyValuationBand] = string(s.ValuationBand)
	rec[KeyOwnershipType] = string(s.OwnershipType)
	rec[KeyAbsenteeOwner] = s.AbsenteeOwner
	rec[KeyAgeCategory] = string(s.AgeCategory)
	rec[KeyFloodRisk] = string(s.FloodRisk)
	rec[KeyClassificationHint] = string(s.ClassificationHint)

	if s.PropertyAge != nil {
		rec[KeyPropertyAge] = *s.PropertyAge
	} else {
		rec[KeyPropertyAge] = nil
	}
	if s.LoanMaturity != nil {
		rec[KeyLoanMaturity] = s.LoanMaturity.Format("2006-01-02")
	} else {
		rec[KeyLoanMaturity] = nil
	}
}
