package contracts

import (
	"context"
	"time"
)

// PropertyFilter narrows a property query. Zero values mean "no filter".
type PropertyFilter struct {
	County        string
	City          string
	State         string
	ValuationMin  float64
	ValuationMax  float64
	OwnershipType string // applied after signal derivation
	Limit         int
	Offset        int
}

// PropertyRepository loads joined property rows as open records.
type PropertyRepository interface {
	// Query returns assessor rows merged with AVM and latest recorder data,
	// keyed under canonical snake_case names.
	Query(ctx context.Context, filter PropertyFilter) ([]PropertyRecord, int, error)

	// GetByID returns a single merged record, or nil when absent.
	GetByID(ctx context.Context, attomID string) (PropertyRecord, error)
}

// InteractionLogRepository persists oracle audit entries.
type InteractionLogRepository interface {
	Append(ctx context.Context, log *InteractionLog) error
	List(ctx context.Context, propertyID string, limit int) ([]InteractionLog, error)
	Stats(ctx context.Context) (*InteractionStats, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
