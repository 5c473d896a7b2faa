package unify

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/aretw0/ecoguia/pkg/textnorm"
	"gopkg.in/yaml.v3"
)

//go:embed enrichment.yaml
var defaultTable []byte

// Field is one enrichment value.
type Field struct {
	Key   string
	Value string
}

// Entry is the enrichment for one canonical reserve name.
type Entry struct {
	Name   string
	Fields []Field
}

// Table is an ordered enrichment table.
// Document order matters: it breaks fuzzy ties and decides which entry wins
// when two names normalize to the same key.
type Table struct {
	entries []Entry
	byName  map[string]int

	// normKeys lists each normalized name once, in first-seen order.
	normKeys []string
	byNorm   map[string]int // the last entry with that normalized name wins
}

// NewTable indexes entries.
func NewTable(entries []Entry) *Table {
	t := &Table{
		entries: entries,
		byName:  make(map[string]int, len(entries)),
		byNorm:  make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		t.byName[e.Name] = i
		nk := textnorm.Normalize(e.Name)
		if nk == "" {
			continue
		}
		if _, seen := t.byNorm[nk]; !seen {
			t.normKeys = append(t.normKeys, nk)
		}
		t.byNorm[nk] = i
	}
	return t
}

// DefaultTable returns the built-in table of provincial reserves.
func DefaultTable() *Table {
	t, err := ParseTable(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("unify: embedded table is invalid: %v", err))
	}
	return t
}

// LoadTable reads a table from a YAML or JSON file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read enrichment table: %w", err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTable decodes a mapping of name to field mapping, keeping document order.
// JSON input is accepted since it parses as YAML.
func ParseTable(data []byte) (*Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse enrichment table: %w", err)
	}
	if len(doc.Content) == 0 {
		return NewTable(nil), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("enrichment table must be a mapping of name to fields, line %d", root.Line)
	}

	entries := make([]Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, fields := root.Content[i], root.Content[i+1]
		if fields.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("entry %q: expected a mapping of fields, line %d", name.Value, fields.Line)
		}
		entry := Entry{Name: name.Value}
		for j := 0; j+1 < len(fields.Content); j += 2 {
			key, value := fields.Content[j], fields.Content[j+1]
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("entry %q field %q: expected a scalar, line %d", name.Value, key.Value, value.Line)
			}
			entry.Fields = append(entry.Fields, Field{Key: key.Value, Value: value.Value})
		}
		entries = append(entries, entry)
	}
	return NewTable(entries), nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the entries in document order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
