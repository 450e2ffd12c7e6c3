package contracts

// Classification is the investment recommendation for a property.
type Classification string

const (
	ClassifyBuy   Classification = "Buy"
	ClassifyHold  Classification = "Hold"
	ClassifyWatch Classification = "Watch"
	// ClassifyMixed labels a portfolio-level result.
	ClassifyMixed Classification = "Mixed Portfolio"
	// ClassifyUnknown is the empty-batch result.
	ClassifyUnknown Classification = "Unknown"
	// ClassifyError is the oracle failure result; a value, not an exception.
	ClassifyError Classification = "Error"
)

// RiskLevel mirrors the classification thresholds.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ScoreResult is the heuristic scorer output for one property.
// InvestmentScore is nominally 0-100 but is not clamped on the low end:
// stacked penalties can drive it negative, and the Watch confidence formula
// consumes the raw value.
type ScoreResult struct {
	InvestmentScore int            `json:"investment_score"`
	Classification  Classification `json:"classification"`
	Confidence      float64        `json:"confidence"` // within [0, 0.95]
	RiskLevel       RiskLevel      `json:"risk_level"`
}

// NarrativeResult is the rendered natural-language output for one property.
type NarrativeResult struct {
	Summary  string   `json:"summary"`
	Insights []string `json:"insights"` // at most 6, fixed priority order
}

// AnalysisResult is the full single-property analysis response shape.
type AnalysisResult struct {
	Summary         string         `json:"summary"`
	Classification  Classification `json:"classification"`
	Confidence      float64        `json:"confidence"`
	Insights        []string       `json:"insights"`
	RiskLevel       RiskLevel      `json:"risk_level"`
	InvestmentScore int            `json:"investment_score"`
	Valuation       float64        `json:"valuation"`
	PropertyAge     int            `json:"property_age"`
}

// BatchBreakdown counts per-classification outcomes in a batch.
type BatchBreakdown struct {
	BuyOpportunities int `json:"buy_opportunities"`
	HoldCandidates   int `json:"hold_candidates"`
	WatchList        int `json:"watch_list"`
}

// BatchSummary aggregates a batch analysis. Recomputed fresh per request;
// it has no persisted identity.
type BatchSummary struct {
	Summary            string           `json:"summary"`
	Classification     Classification   `json:"classification"`
	Confidence         float64          `json:"confidence"`
	Insights           []string         `json:"insights"`
	PropertiesAnalyzed int              `json:"properties_analyzed"`
	Breakdown          *BatchBreakdown  `json:"breakdown,omitempty"`
	AverageValuation   float64          `json:"average_valuation,omitempty"`
	Results            []AnalysisResult `json:"-"`
}

// Total returns the number of classified records in the breakdown.
func (b *BatchBreakdown) Total() int {
	return b.BuyOpportunities + b.HoldCandidates + b.WatchList
}

// OracleResult is the normalized response from the external classification
// oracle. Failures are represented as a value with Classification "Error".
type OracleResult struct {
	Summary        string         `json:"summary"`
	Classification Classification `json:"classification"`
	Confidence     float64        `json:"confidence"`
	Insights       []string       `json:"insights"`
}

// SignalSummary holds distribution statistics over an enriched record set.
type SignalSummary struct {
	TotalProperties     int            `json:"total_properties"`
	ValuationBands      map[string]int `json:"valuation_bands"`
	OwnershipTypes      map[string]int `json:"ownership_types"`
	AgeCategories       map[string]int `json:"age_categories"`
	ClassificationHints map[string]int `json:"classification_hints"`
	AbsenteeRate        float64        `json:"absentee_ownership_rate"`
	AverageValuation    float64        `json:"average_valuation"`
	MedianValuation     float64        `json:"median_valuation"`
}
