// Package reconcile resolves canonical values from records whose fields may
// appear under several historical aliases, or not at all. Every function
// degrades to a typed default instead of returning an error: a field that
// fails coercion is skipped and the next candidate is tried.
package reconcile

import (
	"strconv"
	"strings"
	"time"

	"github.com/blacklandcg/scoutiq/internal/contracts"
)

// Date formats tried in order before the permissive fallback.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
}

// permissiveFormats is the fallback set for vendor exports with unusual
// timestamps.
var permissiveFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006 15:04:05",
	"20060102",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Number returns the first candidate value coercible to float64, else 0.
// Thousands separators and surrounding whitespace are stripped; nil, blank
// and literal "None"/"nan" values are skipped.
func Number(rec contracts.PropertyRecord, candidates ...string) float64 {
	for _, key := range candidates {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}

		switch n := v.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}

		s := strings.TrimSpace(toString(v))
		if s == "" || s == "None" || strings.EqualFold(s, "nan") {
			continue
		}
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimPrefix(s, "$")

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		return f
	}
	return 0.0
}

// Date returns the first candidate parseable as a date, else nil.
// Explicit formats are tried in order before the permissive fallback;
// unparseable input yields nil, never an error.
func Date(rec contracts.PropertyRecord, candidates ...string) *time.Time {
	for _, key := range candidates {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}

		if t, ok := v.(time.Time); ok {
			return &t
		}

		s := strings.TrimSpace(toString(v))
		if s == "" || s == "None" {
			continue
		}

		if t := ParseDate(s); t != nil {
			return t
		}
	}
	return nil
}

// ParseDate parses a single date string using the ordered format list.
func ParseDate(s string) *time.Time {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	for _, layout := range permissiveFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// Text returns the first candidate with a non-blank string value, else "".
func Text(rec contracts.PropertyRecord, candidates ...string) string {
	for _, key := range candidates {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(toString(v))
		if s == "" || s == "None" {
			continue
		}
		return s
	}
	return ""
}

// Year returns the first candidate coercible to an integer year.
// Plausibility bounds are the caller's concern.
func Year(rec contracts.PropertyRecord, candidates ...string) (int, bool) {
	for _, key := range candidates {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}

		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}

		s := strings.TrimSpace(toString(v))
		if s == "" || s == "None" {
			continue
		}
		// Tolerate "1987.0" from spreadsheet exports
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
	}
	return 0, false
}

func toString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case []byte:
		return string(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case bool:
		return strconv.FormatBool(n)
	default:
		return ""
	}
}
