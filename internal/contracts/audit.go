package contracts

import "time"

// InteractionLog is one append-only audit entry for an oracle exchange.
// Both successful and error-shaped responses are logged.
type InteractionLog struct {
	ID               int64          `json:"id"`
	PropertyID       string         `json:"property_id"`
	InputPayload     map[string]any `json:"input_payload"`
	OutputResponse   map[string]any `json:"output_response"`
	Classification   string         `json:"classification"`
	Confidence       float64        `json:"confidence"`
	EndpointUsed     string         `json:"endpoint_used"`
	ProcessingTimeMs int            `json:"processing_time_ms"`
	Timestamp        time.Time      `json:"timestamp"`
}

// InteractionStats summarizes oracle usage for the statistics endpoint.
type InteractionStats struct {
	TotalCalls              int            `json:"total_calls"`
	AverageProcessingTimeMs float64        `json:"average_processing_time_ms"`
	ClassificationBreakdown map[string]int `json:"classification_breakdown"`
}
