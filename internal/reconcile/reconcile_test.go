package reconcile

import (
	"testing"
	"time"

	"github.com/blacklandcg/scoutiq/internal/contracts"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		rec  contracts.PropertyRecord
		keys []string
		want float64
	}{
		{
			name: "plain string",
			rec:  contracts.PropertyRecord{"estimated_value": "350000"},
			keys: []string{"estimated_value"},
			want: 350000,
		},
		{
			name: "thousands separators and dollar sign",
			rec:  contracts.PropertyRecord{"estimated_value": "$1,250,000.50"},
			keys: []string{"estimated_value"},
			want: 1250000.50,
		},
		{
			name: "first alias wins",
			rec:  contracts.PropertyRecord{"a": "100", "b": "200"},
			keys: []string{"a", "b"},
			want: 100,
		},
		{
			name: "blank skipped for next alias",
			rec:  contracts.PropertyRecord{"a": "  ", "b": "200"},
			keys: []string{"a", "b"},
			want: 200,
		},
		{
			name: "None skipped",
			rec:  contracts.PropertyRecord{"a": "None", "b": "nan", "c": "75"},
			keys: []string{"a", "b", "c"},
			want: 75,
		},
		{
			name: "native float64",
			rec:  contracts.PropertyRecord{"a": 420000.0},
			keys: []string{"a"},
			want: 420000,
		},
		{
			name: "native int",
			rec:  contracts.PropertyRecord{"a": 7},
			keys: []string{"a"},
			want: 7,
		},
		{
			name: "garbage falls through to zero",
			rec:  contracts.PropertyRecord{"a": "not a number"},
			keys: []string{"a"},
			want: 0,
		},
		{
			name: "missing key",
			rec:  contracts.PropertyRecord{},
			keys: []string{"a"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.rec, tt.keys...); got != tt.want {
				t.Errorf("Number() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string // "" means nil expected
	}{
		{"iso date", "2021-06-15", "2021-06-15"},
		{"us slashes", "06/15/2021", "2021-06-15"},
		{"iso slashes", "2021/06/15", "2021-06-15"},
		{"rfc3339 fallback", "2021-06-15T10:30:00Z", "2021-06-15"},
		{"sql timestamp fallback", "2021-06-15 10:30:00", "2021-06-15"},
		{"compact fallback", "20210615", "2021-06-15"},
		{"spelled out", "June 15, 2021", "2021-06-15"},
		{"unparseable", "next tuesday", ""},
		{"blank", "   ", ""},
		{"none literal", "None", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := contracts.PropertyRecord{"d": tt.value}
			got := Date(rec, "d")
			if tt.want == "" {
				if got != nil {
					t.Errorf("Date() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Date() = nil, want %s", tt.want)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("Date() = %s, want %s", got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestDate_NativeTime(t *testing.T) {
	when := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	rec := contracts.PropertyRecord{"d": when}
	got := Date(rec, "d")
	if got == nil || !got.Equal(when) {
		t.Errorf("Date() = %v, want %v", got, when)
	}
}

func TestText(t *testing.T) {
	rec := contracts.PropertyRecord{
		"empty": "",
		"pad":   "  Austin  ",
		"none":  "None",
	}

	if got := Text(rec, "empty", "none", "pad"); got != "Austin" {
		t.Errorf("Text() = %q, want Austin", got)
	}
	if got := Text(rec, "missing"); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   int
		wantOK bool
	}{
		{"string year", "1987", 1987, true},
		{"spreadsheet float string", "1987.0", 1987, true},
		{"native int", 2005, 2005, true},
		{"native float", 1999.0, 1999, true},
		{"blank", "", 0, false},
		{"garbage", "old", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := contracts.PropertyRecord{"y": tt.value}
			got, ok := Year(rec, "y")
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Year() = %d, %v, want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
