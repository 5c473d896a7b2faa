package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/ports"
)

// RecordLoader reads the unified reservation table, a JSON array of objects.
type RecordLoader struct {
	path      string
	missingOK bool
}

var _ ports.RecordLoader = (*RecordLoader)(nil)

// RecordOption configures a RecordLoader.
type RecordOption func(*RecordLoader)

// WithMissingOK makes a missing file load as an empty table.
func WithMissingOK() RecordOption {
	return func(l *RecordLoader) {
		l.missingOK = true
	}
}

// NewRecordLoader creates a loader for path.
func NewRecordLoader(path string, opts ...RecordOption) *RecordLoader {
	l := &RecordLoader{path: path}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadRecords implements ports.RecordLoader.
func (l *RecordLoader) LoadRecords(ctx context.Context) ([]domain.Record, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if l.missingOK && errors.Is(err, fs.ErrNotExist) {
			return []domain.Record{}, nil
		}
		return nil, fmt.Errorf("failed to read reservations: %w", err)
	}
	return DecodeRecords(data)
}

// DecodeRecords parses a JSON array of records.
// Bare NaN and Infinity tokens, as written by spreadsheet tooling, decode as null.
// Numbers are kept as json.Number so they are written back unchanged.
// A null entry stays a nil Record so it round-trips as null.
func DecodeRecords(data []byte) ([]domain.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(SanitizeJSON(data)))
	dec.UseNumber()

	var records []domain.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

var nonFinite = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

// SanitizeJSON replaces NaN, Infinity and -Infinity outside string literals with null.
func SanitizeJSON(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString, escaped := false, false

	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}

		replaced := false
		for _, tok := range nonFinite {
			if bytes.HasPrefix(data[i:], tok) {
				out = append(out, "null"...)
				i += len(tok) - 1
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, c)
		}
	}
	return out
}
