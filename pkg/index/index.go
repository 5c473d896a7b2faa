// Package index holds the reservation table in memory and answers name
// lookups with a tiered policy: exact, then substring, then fuzzy.
//
// An Index is immutable after New and safe for concurrent use.
package index

import (
	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/textnorm"
)

const (
	// MaxResults bounds every lookup, whatever tier answers it.
	MaxResults = 5
	// FuzzyCutoff is the minimum similarity accepted by the fuzzy tier.
	FuzzyCutoff = 0.6
)

// Index is the read-only reservation table.
type Index struct {
	records []domain.Record
	names   []string // normalized NameField, aligned with records

	// candidates lists each distinct non-empty normalized name once, in table order.
	candidates  []string
	firstByName map[string]int

	policies []Policy
}

// Option configures an Index.
type Option func(*Index)

// WithPolicies replaces the default tier sequence.
func WithPolicies(p ...Policy) Option {
	return func(ix *Index) {
		ix.policies = p
	}
}

// New builds an index over a copy of records.
func New(records []domain.Record, opts ...Option) *Index {
	ix := &Index{
		records:     make([]domain.Record, len(records)),
		names:       make([]string, len(records)),
		firstByName: make(map[string]int),
		policies:    DefaultPolicies(),
	}
	copy(ix.records, records)

	for i, r := range ix.records {
		name := textnorm.NormalizeValue(r[domain.NameField])
		ix.names[i] = name
		if name == "" {
			continue
		}
		if _, ok := ix.firstByName[name]; !ok {
			ix.firstByName[name] = i
			ix.candidates = append(ix.candidates, name)
		}
	}

	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Len returns the number of records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Records returns the table in its original order.
func (ix *Index) Records() []domain.Record {
	out := make([]domain.Record, len(ix.records))
	copy(out, ix.records)
	return out
}

// Search returns at most MaxResults records matching query.
// A query that matches nothing, or normalizes to nothing, yields an empty slice.
func (ix *Index) Search(query string) []domain.Record {
	return ix.Lookup(query).Records
}

// Lookup runs the tier pipeline and reports which tier answered.
func (ix *Index) Lookup(query string) Outcome {
	q := textnorm.Normalize(query)
	if q == "" {
		return NotFound()
	}
	return run(ix, q, ix.policies)
}

func (ix *Index) collect(match func(name string) bool) []domain.Record {
	var out []domain.Record
	for i, name := range ix.names {
		if len(out) == MaxResults {
			break
		}
		if name != "" && match(name) {
			out = append(out, ix.records[i].Clone())
		}
	}
	return out
}
