package index

import (
	"strings"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/fuzzy"
)

// Tier names the policy that produced an Outcome.
type Tier string

const (
	TierNone      Tier = "none"
	TierExact     Tier = "exact"
	TierSubstring Tier = "substring"
	TierFuzzy     Tier = "fuzzy"
)

// Outcome is either Found (a tier and its records) or NotFound.
type Outcome struct {
	Tier    Tier
	Records []domain.Record
}

// Found reports whether the outcome carries records.
func (o Outcome) Found() bool {
	return len(o.Records) > 0
}

// NotFound is the empty outcome.
func NotFound() Outcome {
	return Outcome{Tier: TierNone, Records: []domain.Record{}}
}

func found(tier Tier, records []domain.Record) Outcome {
	if len(records) == 0 {
		return NotFound()
	}
	return Outcome{Tier: tier, Records: records}
}

// Policy resolves a normalized, non-empty query against the index.
type Policy func(ix *Index, q string) Outcome

// DefaultPolicies returns exact, substring and fuzzy, in that order.
func DefaultPolicies() []Policy {
	return []Policy{Exact, Substring, Fuzzy}
}

// run returns the first Found outcome.
func run(ix *Index, q string, policies []Policy) Outcome {
	for _, p := range policies {
		if out := p(ix, q); out.Found() {
			return out
		}
	}
	return NotFound()
}

// Exact matches records whose normalized name equals q, in table order.
func Exact(ix *Index, q string) Outcome {
	return found(TierExact, ix.collect(func(name string) bool {
		return name == q
	}))
}

// Substring matches records whose normalized name contains q, in table order.
func Substring(ix *Index, q string) Outcome {
	return found(TierSubstring, ix.collect(func(name string) bool {
		return strings.Contains(name, q)
	}))
}

// Fuzzy ranks distinct normalized names by similarity and maps each match
// back to the first record carrying that name.
func Fuzzy(ix *Index, q string) Outcome {
	matches := fuzzy.CloseMatches(q, ix.candidates, MaxResults, FuzzyCutoff)
	records := make([]domain.Record, 0, len(matches))
	for _, m := range matches {
		records = append(records, ix.records[ix.firstByName[m]].Clone())
	}
	return found(TierFuzzy, records)
}
