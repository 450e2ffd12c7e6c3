package contracts

import (
	"fmt"
	"strings"
)

// PropertyRecord is an open mapping of source columns to scalar values.
// Rows arrive from assessor/AVM/recorder joins or CSV uploads; no schema is
// guaranteed and the same logical field may appear under several historical
// aliases. Accessors never panic on missing or malformed values.
type PropertyRecord map[string]any

// Has reports whether the key is present with a non-nil value.
func (r PropertyRecord) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// String returns the value under key rendered as a trimmed string,
// or "" when the key is absent, nil, or blank.
func (r PropertyRecord) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprintf("%v", v)
	}
	return strings.TrimSpace(s)
}

// Clone returns a shallow copy of the record.
func (r PropertyRecord) Clone() PropertyRecord {
	out := make(PropertyRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge copies every key/value from other into the record, overwriting
// existing keys. Used to attach derived signals to a raw row.
func (r PropertyRecord) Merge(other map[string]any) {
	for k, v := range other {
		r[k] = v
	}
}

// ID returns the property identifier, tolerating both ATTOM naming and
// generic ids.
func (r PropertyRecord) ID() string {
	for _, key := range []string{"attom_id", "property_id", "[ATTOM ID]"} {
		if s := r.String(key); s != "" {
			return s
		}
	}
	return ""
}
