package property

import (
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	in := strings.NewReader(
		" attom_id , year_built, estimated_value\n" +
			"A1,1995,350000\n" +
			"A2, ,\n" +
			"A3,2005,420000,overflow\n" +
			"A4,2010\n")

	records, err := ReadCSV(in)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("len(records) = %d, want 4", len(records))
	}

	// Headers are trimmed.
	if records[0]["attom_id"] != "A1" || records[0]["year_built"] != "1995" {
		t.Errorf("records[0] = %v", records[0])
	}

	// Blank cells are omitted.
	if _, ok := records[1]["year_built"]; ok {
		t.Errorf("records[1] should omit blank year_built: %v", records[1])
	}

	// Overflow columns are dropped.
	if len(records[2]) != 3 {
		t.Errorf("records[2] = %v, want 3 fields", records[2])
	}

	// Short rows leave trailing columns unset.
	if _, ok := records[3]["estimated_value"]; ok {
		t.Errorf("records[3] should omit estimated_value: %v", records[3])
	}
}

func TestReadCSV_Empty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("ReadCSV of empty input should error")
	}

	// Header only is valid, just no records.
	records, err := ReadCSV(strings.NewReader("attom_id,year_built\n"))
	if err != nil {
		t.Fatalf("ReadCSV header-only: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}
