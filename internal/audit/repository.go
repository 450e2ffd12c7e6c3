// Package audit persists the append-only log of oracle exchanges.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blacklandcg/scoutiq/internal/contracts"
)

// Repository handles interaction-log persistence. Payloads are stored as
// JSONB so the raw exchange stays queryable.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new audit repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ contracts.InteractionLogRepository = (*Repository)(nil)

// Append writes one interaction log entry. The entry's ID and Timestamp are
// filled in from the database.
func (r *Repository) Append(ctx context.Context, log *contracts.InteractionLog) error {
	inputJSON, err := json.Marshal(log.InputPayload)
	if err != nil {
		return fmt.Errorf("failed to marshal input payload: %w", err)
	}
	outputJSON, err := json.Marshal(log.OutputResponse)
	if err != nil {
		return fmt.Errorf("failed to marshal output response: %w", err)
	}

	query := `
		INSERT INTO scoutiq.ai_logs (
			property_id, input_payload, output_response,
			classification, confidence, endpoint_used, processing_time_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err = r.pool.QueryRow(ctx, query,
		log.PropertyID, inputJSON, outputJSON,
		log.Classification, log.Confidence, log.EndpointUsed, log.ProcessingTimeMs,
	).Scan(&log.ID, &log.Timestamp)

	if err != nil {
		return fmt.Errorf("failed to append interaction log: %w", err)
	}

	return nil
}

// List retrieves the most recent interaction logs, newest first, optionally
// filtered by property id.
func (r *Repository) List(ctx context.Context, propertyID string, limit int) ([]contracts.InteractionLog, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, property_id, input_payload, output_response,
		       classification, confidence, endpoint_used, processing_time_ms, created_at
		FROM scoutiq.ai_logs
		WHERE ($1 = '' OR property_id = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, propertyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query interaction logs: %w", err)
	}
	defer rows.Close()

	logs := make([]contracts.InteractionLog, 0)

	for rows.Next() {
		var (
			log        contracts.InteractionLog
			inputJSON  []byte
			outputJSON []byte
		)
		err := rows.Scan(
			&log.ID, &log.PropertyID, &inputJSON, &outputJSON,
			&log.Classification, &log.Confidence, &log.EndpointUsed,
			&log.ProcessingTimeMs, &log.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaction log: %w", err)
		}

		if len(inputJSON) > 0 {
			if err := json.Unmarshal(inputJSON, &log.InputPayload); err != nil {
				return nil, fmt.Errorf("failed to unmarshal input payload: %w", err)
			}
		}
		if len(outputJSON) > 0 {
			if err := json.Unmarshal(outputJSON, &log.OutputResponse); err != nil {
				return nil, fmt.Errorf("failed to unmarshal output response: %w", err)
			}
		}

		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return logs, nil
}

// Stats aggregates call counts, mean latency, and the per-classification
// breakdown across all logged exchanges.
func (r *Repository) Stats(ctx context.Context) (*contracts.InteractionStats, error) {
	stats := &contracts.InteractionStats{
		ClassificationBreakdown: make(map[string]int),
	}

	query := `
		SELECT COUNT(*), COALESCE(AVG(processing_time_ms), 0)
		FROM scoutiq.ai_logs
	`
	err := r.pool.QueryRow(ctx, query).Scan(&stats.TotalCalls, &stats.AverageProcessingTimeMs)
	if err != nil {
		return nil, fmt.Errorf("failed to query interaction stats: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(NULLIF(classification, ''), 'Unknown'), COUNT(*)
		FROM scoutiq.ai_logs
		GROUP BY 1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query classification breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			classification string
			count          int
		)
		if err := rows.Scan(&classification, &count); err != nil {
			return nil, fmt.Errorf("failed to scan breakdown row: %w", err)
		}
		stats.ClassificationBreakdown[classification] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return stats, nil
}

// PurgeOlderThan deletes entries created before cutoff and returns how many
// rows went away.
func (r *Repository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM scoutiq.ai_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge interaction logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
