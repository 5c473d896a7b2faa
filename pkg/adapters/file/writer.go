package file

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/aretw0/ecoguia/pkg/domain"
)

// WriteRecordsJSON writes records as an indented UTF-8 JSON array.
// Non-ASCII text is written as is, not escaped.
func WriteRecordsJSON(path string, records []domain.Record) error {
	if records == nil {
		records = []domain.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteRecordsCSV writes records as comma-separated values with a header row.
// Columns lists the leading columns; any other key found in the records follows in sorted order.
func WriteRecordsCSV(path string, records []domain.Record, columns ...string) error {
	header := Columns(records, columns...)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	row := make([]string, len(header))
	for _, r := range records {
		for i, col := range header {
			row[i] = FormatValue(r[col])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return f.Close()
}

// Columns returns leading followed by every other record key, sorted.
func Columns(records []domain.Record, leading ...string) []string {
	seen := make(map[string]bool, len(leading))
	out := make([]string, 0, len(leading))
	for _, c := range leading {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	var rest []string
	for _, r := range records {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// FormatValue renders a record value as a CSV cell. Null becomes the empty string.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
