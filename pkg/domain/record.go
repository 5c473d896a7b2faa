package domain

import "strings"

// NameField is the record field used as display and search key.
const NameField = "nombre"

// Record is a flat reservation row. Only NameField is interpreted;
// every other field is carried through unchanged.
type Record map[string]any

// Name returns the record name, or "" when it is missing or not a string.
func (r Record) Name() (string, bool) {
	v, ok := r[NameField]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IsBlankName reports whether a source name carries no information.
// Spreadsheet exports spell missing values as "nan", "none" or "null".
func IsBlankName(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none", "null":
		return true
	}
	return false
}
