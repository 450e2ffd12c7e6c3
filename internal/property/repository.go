// Package property loads raw property records from postgres and CSV. Rows
// come back as open records keyed by canonical snake_case names, the shape
// the reconciler and signal deriver consume.
package property

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blacklandcg/scoutiq/internal/contracts"
)

// assessorColumns are the tax-assessor fields exposed on a record, in the
// order they are scanned.
var assessorColumns = []string{
	"attom_id",
	"property_address_full",
	"property_address_city",
	"property_address_state",
	"property_address_zip",
	"property_latitude",
	"property_longitude",
	"party_owner1_name_full",
	"party_owner2_name_full",
	"contact_owner_mail_address_full",
	"status_owner_occupied_flag",
	"tax_market_value_total",
	"tax_assessed_value_total",
	"year_built",
	"property_use_standardized",
	"assessor_last_sale_date",
	"assessor_last_sale_amount",
	"area_lot_acres",
	"area_lot_sf",
	"bedrooms_count",
	"bath_count",
	"stories_count",
}

// avmColumns come from the AVM feed, joined by attom id.
var avmColumns = []string{
	"estimated_value",
	"estimated_min_value",
	"estimated_max_value",
	"confidence_score",
}

// recorderColumns come from the latest recorder row per property.
var recorderColumns = []string{
	"mortgage1_amount",
	"mortgage1_term",
	"mortgage1_term_date",
	"mortgage1_interest_rate",
	"transaction_type",
	"transfer_amount",
	"recording_date",
}

// Repository reads the assessor, AVM, and recorder tables.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new property repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ contracts.PropertyRepository = (*Repository)(nil)

// Query returns assessor rows with AVM and latest recorder data merged in,
// plus the unpaginated match count. The ownership-type filter is not applied
// here: it depends on derived signals, so the caller filters after
// derivation.
func (r *Repository) Query(ctx context.Context, filter contracts.PropertyFilter) ([]contracts.PropertyRecord, int, error) {
	where, args := buildFilter(filter)

	var total int
	countSQL := "SELECT COUNT(*) FROM scoutiq.tax_assessor ta" + where
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, filter.Offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM scoutiq.tax_assessor ta
		LEFT JOIN scoutiq.avm av ON av.attom_id = ta.attom_id
		LEFT JOIN LATERAL (
			SELECT %s
			FROM scoutiq.recorder rc
			WHERE rc.attom_id = ta.attom_id
			ORDER BY rc.recording_date DESC
			LIMIT 1
		) rec ON true
		%s
		ORDER BY ta.attom_id
		LIMIT $%d OFFSET $%d
	`, selectList(), prefixed("rc", recorderColumns), where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	records := make([]contracts.PropertyRecord, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, total, nil
}

// GetByID returns one merged record, or nil when the id is unknown.
func (r *Repository) GetByID(ctx context.Context, attomID string) (contracts.PropertyRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM scoutiq.tax_assessor ta
		LEFT JOIN scoutiq.avm av ON av.attom_id = ta.attom_id
		LEFT JOIN LATERAL (
			SELECT %s
			FROM scoutiq.recorder rc
			WHERE rc.attom_id = ta.attom_id
			ORDER BY rc.recording_date DESC
			LIMIT 1
		) rec ON true
		WHERE ta.attom_id = $1
	`, selectList(), prefixed("rc", recorderColumns))

	rows, err := r.pool.Query(ctx, query, attomID)
	if err != nil {
		return nil, fmt.Errorf("failed to query property %s: %w", attomID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading property %s: %w", attomID, err)
		}
		return nil, nil
	}
	return scanRecord(rows)
}

func buildFilter(filter contracts.PropertyFilter) (string, []any) {
	where := ""
	args := []any{}
	and := func(clause string) {
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	if filter.County != "" {
		args = append(args, "%"+filter.County+"%")
		and(fmt.Sprintf("ta.situs_county ILIKE $%d", len(args)))
	}
	if filter.City != "" {
		args = append(args, "%"+filter.City+"%")
		and(fmt.Sprintf("ta.property_address_city ILIKE $%d", len(args)))
	}
	if filter.State != "" {
		args = append(args, filter.State)
		and(fmt.Sprintf("ta.property_address_state = $%d", len(args)))
	}
	if filter.ValuationMin > 0 {
		args = append(args, filter.ValuationMin)
		and(fmt.Sprintf("NULLIF(ta.tax_market_value_total, '')::NUMERIC >= $%d", len(args)))
	}
	if filter.ValuationMax > 0 {
		args = append(args, filter.ValuationMax)
		and(fmt.Sprintf("NULLIF(ta.tax_market_value_total, '')::NUMERIC <= $%d", len(args)))
	}
	return where, args
}

func selectList() string {
	return prefixed("ta", assessorColumns) + ", " +
		prefixed("av", avmColumns) + ", " +
		prefixed("rec", recorderColumns)
}

func prefixed(alias string, cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += alias + "." + c
	}
	return out
}

// scanRecord reads one joined row into an open record. Every column is
// scanned as a nullable string; NULLs from the outer joins are simply
// omitted from the record.
func scanRecord(rows pgx.Rows) (contracts.PropertyRecord, error) {
	columns := make([]string, 0, len(assessorColumns)+len(avmColumns)+len(recorderColumns))
	columns = append(columns, assessorColumns...)
	columns = append(columns, avmColumns...)
	columns = append(columns, recorderColumns...)

	values := make([]*string, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to scan property row: %w", err)
	}

	rec := make(contracts.PropertyRecord, len(columns))
	for i, col := range columns {
		if values[i] != nil {
			rec[col] = *values[i]
		}
	}
	return rec, nil
}
