// Package unify enriches reservation records with curated visiting information.
//
// Matching runs three tiers per record: the raw name against table keys, the
// normalized name against normalized keys, then a fuzzy match with a strict
// cutoff. Enrichment only ever adds or overwrites fields; no record is dropped.
package unify

import (
	"fmt"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/fuzzy"
	"github.com/aretw0/ecoguia/pkg/textnorm"
)

// FuzzyCutoff is stricter than the live search cutoff: a false positive here
// is written into the dataset.
const FuzzyCutoff = 0.75

// Tier names how a record matched.
type Tier string

const (
	TierNone       Tier = "none"
	TierExact      Tier = "exact"
	TierNormalized Tier = "normalized"
	TierFuzzy      Tier = "fuzzy"
)

// Match is the table entry chosen for a record.
type Match struct {
	Tier  Tier
	Entry int // index into the table, meaningless for TierNone
}

// Matched reports whether an entry was chosen.
func (m Match) Matched() bool {
	return m.Tier != TierNone
}

// FuzzyMatch pairs a record name with the table name it was fuzzily matched to.
type FuzzyMatch struct {
	Name string
	Key  string
}

// Report summarizes an Apply run.
type Report struct {
	Total     int
	Updated   int
	ByTier    map[Tier]int
	Fuzzy     []FuzzyMatch
	Unmatched []string
}

type matcher func(t *Table, name, normalized string) (int, bool)

var tiers = []struct {
	tier  Tier
	match matcher
}{
	{TierExact, func(t *Table, name, _ string) (int, bool) {
		i, ok := t.byName[name]
		return i, ok
	}},
	{TierNormalized, func(t *Table, _, normalized string) (int, bool) {
		i, ok := t.byNorm[normalized]
		return i, ok
	}},
	{TierFuzzy, func(t *Table, _, normalized string) (int, bool) {
		best := fuzzy.CloseMatches(normalized, t.normKeys, 1, FuzzyCutoff)
		if len(best) == 0 {
			return 0, false
		}
		return t.byNorm[best[0]], true
	}},
}

// Lookup finds the entry for a raw record name.
// Blank names ("", nan, none, null) never match.
func (t *Table) Lookup(name string) Match {
	if domain.IsBlankName(name) {
		return Match{Tier: TierNone}
	}
	normalized := textnorm.Normalize(name)
	for _, tier := range tiers {
		if tier.tier != TierExact && normalized == "" {
			break
		}
		if i, ok := tier.match(t, name, normalized); ok {
			return Match{Tier: tier.tier, Entry: i}
		}
	}
	return Match{Tier: TierNone}
}

// Apply enriches records in place and reports what matched.
// Fields not present in the table are never touched.
func (t *Table) Apply(records []domain.Record) Report {
	report := Report{Total: len(records), ByTier: map[Tier]int{}}

	for _, rec := range records {
		if rec == nil {
			report.Unmatched = append(report.Unmatched, "null")
			continue
		}
		name, ok := rec.Name()
		if !ok {
			report.Unmatched = append(report.Unmatched, describe(rec[domain.NameField]))
			continue
		}

		m := t.Lookup(name)
		if !m.Matched() {
			report.Unmatched = append(report.Unmatched, name)
			continue
		}

		entry := t.entries[m.Entry]
		for _, f := range entry.Fields {
			rec[f.Key] = f.Value
		}
		report.Updated++
		report.ByTier[m.Tier]++
		if m.Tier == TierFuzzy {
			report.Fuzzy = append(report.Fuzzy, FuzzyMatch{Name: name, Key: entry.Name})
		}
	}
	return report
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
