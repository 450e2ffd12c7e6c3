// Package scoutgpt talks to the external classification oracle. Every
// exchange, successful or not, is written to the audit log; transport and
// HTTP failures come back as Error-classified results instead of Go errors,
// so callers always receive a usable value.
package scoutgpt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/time/rate"

	"github.com/blacklandcg/scoutiq/internal/contracts"
	"github.com/blacklandcg/scoutiq/internal/datalinks"
	"github.com/blacklandcg/scoutiq/pkg/httputil"
	"github.com/blacklandcg/scoutiq/pkg/logger"
)

// DefaultContractName selects the input schema used to shape outgoing
// signals when the data-links config defines contracts.
const DefaultContractName = "property_analysis"

// maxErrorBody caps how much of a failed response lands in the insights.
const maxErrorBody = 200

// passthroughFields is the shaping allow-list used when no contract schema
// is configured.
var passthroughFields = map[string]bool{
	"property_id":           true,
	"attom_id":              true,
	"address":               true,
	"property_address_full": true,
	"primary_valuation":     true,
	"valuation_band":        true,
	"ownership_type":        true,
	"loan_maturity":         true,
	"flood_risk":            true,
	"tax_delinquent":        true,
	"property_latitude":     true,
	"property_longitude":    true,
}

// Client calls the configured oracle endpoint.
type Client struct {
	http    *httputil.Client
	links   *datalinks.Config
	logs    contracts.InteractionLogRepository
	limiter *rate.Limiter
	logger  *logger.Logger
	now     func() time.Time
}

func NewClient(http *httputil.Client, links *datalinks.Config, logs contracts.InteractionLogRepository, rps float64, burst int, log *logger.Logger) *Client {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		http:    http,
		links:   links,
		logs:    logs,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  log,
		now:     time.Now,
	}
}

// Analyze POSTs a batch of shaped signals to the oracle. endpointName and
// contractName may be empty to use the configured defaults.
func (c *Client) Analyze(ctx context.Context, signalBatch []contracts.PropertyRecord, analysisContext map[string]any, endpointName, contractName string) contracts.OracleResult {
	endpoint, ok := c.links.Endpoint(endpointName)
	if !ok {
		endpoint = datalinks.Endpoint{URL: "http://localhost:8001/api/analyze"}
	}

	schema := c.inputSchema(contractName)
	shaped := make([]map[string]any, 0, len(signalBatch))
	for _, sig := range signalBatch {
		shaped = append(shaped, shapeSignal(sig, schema))
	}

	if analysisContext == nil {
		analysisContext = map[string]any{}
	}
	payload := map[string]any{
		"context": analysisContext,
		"signals": shaped,
	}

	start := c.now()

	if err := c.limiter.Wait(ctx); err != nil {
		result := networkError(err)
		c.log(ctx, payload, result, endpoint.URL, start)
		return result
	}

	resp, err := c.http.PostJSON(ctx, endpoint.URL, payload)
	if err != nil {
		result := networkError(err)
		c.log(ctx, payload, result, endpoint.URL, start)
		return result
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		result := networkError(readErr)
		c.log(ctx, payload, result, endpoint.URL, start)
		return result
	}

	if resp.StatusCode != 200 {
		insight := "No content"
		if len(body) > 0 {
			insight = string(body)
			if len(insight) > maxErrorBody {
				insight = insight[:maxErrorBody]
			}
		}
		result := contracts.OracleResult{
			Summary:        fmt.Sprintf("ScoutGPT HTTP %d", resp.StatusCode),
			Classification: contracts.ClassifyError,
			Confidence:     0.0,
			Insights:       []string{insight},
		}
		c.log(ctx, payload, result, endpoint.URL, start)
		return result
	}

	result := normalize(body)
	c.log(ctx, payload, result, endpoint.URL, start)
	return result
}

func (c *Client) inputSchema(contractName string) map[string]string {
	if contractName == "" {
		contractName = DefaultContractName
	}
	if ct, ok := c.links.Contract(contractName); ok {
		return ct.Input
	}
	// Fall back to the first configured contract.
	if len(c.links.Contracts) > 0 {
		return c.links.Contracts[0].Input
	}
	return nil
}

// shapeSignal filters one signal record down to the contract's input schema,
// or to the passthrough allow-list when no schema is configured. Schema
// fields property_id and address are aliased from the raw record names.
func shapeSignal(sig contracts.PropertyRecord, schema map[string]string) map[string]any {
	shaped := make(map[string]any)

	if len(schema) == 0 {
		for k, v := range sig {
			if passthroughFields[k] {
				shaped[k] = v
			}
		}
		return shaped
	}

	for field := range schema {
		switch {
		case sig.Has(field):
			shaped[field] = sig[field]
		case field == "property_id" && sig.Has("attom_id"):
			shaped["property_id"] = sig["attom_id"]
		case field == "address" && sig.Has("property_address_full"):
			shaped["address"] = sig["property_address_full"]
		}
	}
	return shaped
}

// normalize maps a 200 response body onto the oracle result shape. A
// "status" field substitutes for a missing "classification".
func normalize(body []byte) contracts.OracleResult {
	type response struct {
		Summary        string   `json:"summary"`
		Classification string   `json:"classification"`
		Status         string   `json:"status"`
		Confidence     float64  `json:"confidence"`
		Insights       []string `json:"insights"`
	}
	var data response
	if len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			data = response{}
		}
	}

	classification := data.Classification
	if classification == "" {
		classification = data.Status
	}
	if classification == "" {
		classification = string(contracts.ClassifyUnknown)
	}

	insights := data.Insights
	if insights == nil {
		insights = []string{}
	}

	return contracts.OracleResult{
		Summary:        data.Summary,
		Classification: contracts.Classification(classification),
		Confidence:     data.Confidence,
		Insights:       insights,
	}
}

func networkError(err error) contracts.OracleResult {
	return contracts.OracleResult{
		Summary:        fmt.Sprintf("Network error: %v", err),
		Classification: contracts.ClassifyError,
		Confidence:     0.0,
		Insights:       []string{"Network connection failed"},
	}
}

// log records the full exchange. Audit failures are logged and swallowed;
// they never surface to the analysis caller.
func (c *Client) log(ctx context.Context, payload map[string]any, result contracts.OracleResult, endpointURL string, start time.Time) {
	if c.logs == nil {
		return
	}

	propertyID := ""
	if signals, ok := payload["signals"].([]map[string]any); ok && len(signals) > 0 {
		if id, ok := signals[0]["property_id"].(string); ok {
			propertyID = id
		}
	}

	entry := &contracts.InteractionLog{
		PropertyID:   propertyID,
		InputPayload: payload,
		OutputResponse: map[string]any{
			"summary":        result.Summary,
			"classification": string(result.Classification),
			"confidence":     result.Confidence,
			"insights":       result.Insights,
		},
		Classification:   string(result.Classification),
		Confidence:       result.Confidence,
		EndpointUsed:     endpointURL,
		ProcessingTimeMs: int(c.now().Sub(start).Milliseconds()),
	}
	if err := c.logs.Append(ctx, entry); err != nil {
		c.logger.WithError(err).Warn("failed to persist oracle interaction log")
	}
}
