package property

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/blacklandcg/scoutiq/internal/contracts"
)

// ReadCSV parses a CSV upload into open records. Headers are whitespace
// trimmed; ragged rows are tolerated, with short rows leaving trailing
// columns unset and long rows dropping the overflow. Empty cells are
// omitted from the record.
func ReadCSV(r io.Reader) ([]contracts.PropertyRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := make([]contracts.PropertyRecord, 0)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}

		rec := make(contracts.PropertyRecord, len(header))
		for i, col := range header {
			if col == "" || i >= len(row) {
				continue
			}
			if val := strings.TrimSpace(row[i]); val != "" {
				rec[col] = val
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
