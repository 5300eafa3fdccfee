// Package plant builds a lookup of canonical species codes from the
// authoritative species table.
package plant

import (
	"cmp"
	"slices"
	"strings"
)

// Record is a row of the authoritative species table reduced to the
// fields used for code substitution.
type Record struct {
	ScientificName string
	AcceptedSymbol string
}

// Ambiguity describes a scientific name that maps to more than one
// accepted symbol.
type Ambiguity struct {
	// Name is the lower-cased scientific name.
	Name string
	// Codes are all distinct symbols of the name, sorted.
	Codes []string
	// Chosen is the symbol returned by Resolve.
	Chosen string
}

// Index maps scientific names to accepted symbols. It is immutable after
// creation and safe for concurrent use.
type Index struct {
	codes       map[string]string
	pairs       []Record
	ambiguities []Ambiguity
}

// NewIndex creates an Index from table records. Exact duplicates of
// (scientific name, accepted symbol) pairs are merged, rows without a
// name or a symbol are ignored. A name with several distinct symbols
// resolves to the lexicographically smallest one, so the result does not
// depend on the order of records.
func NewIndex(recs []Record) *Index {
	seen := make(map[Record]struct{}, len(recs))
	candidates := make(map[string][]string)
	var pairs []Record
	for _, r := range recs {
		if r.ScientificName == "" || r.AcceptedSymbol == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		pairs = append(pairs, r)

		key := strings.ToLower(r.ScientificName)
		candidates[key] = append(candidates[key], r.AcceptedSymbol)
	}

	res := &Index{
		codes: make(map[string]string, len(candidates)),
		pairs: pairs,
	}
	for name, codes := range candidates {
		slices.Sort(codes)
		codes = slices.Compact(codes)
		res.codes[name] = codes[0]
		if len(codes) > 1 {
			res.ambiguities = append(res.ambiguities, Ambiguity{
				Name:   name,
				Codes:  codes,
				Chosen: codes[0],
			})
		}
	}

	slices.SortFunc(res.ambiguities, func(a, b Ambiguity) int {
		return cmp.Compare(a.Name, b.Name)
	})
	slices.SortFunc(res.pairs, func(a, b Record) int {
		return cmp.Or(
			cmp.Compare(a.ScientificName, b.ScientificName),
			cmp.Compare(a.AcceptedSymbol, b.AcceptedSymbol),
		)
	})
	return res
}

// Resolve returns the accepted symbol of a scientific name. Matching is
// exact and case-insensitive, the name is not trimmed.
func (idx *Index) Resolve(name string) (string, bool) {
	code, ok := idx.codes[strings.ToLower(name)]
	return code, ok
}

// Len returns the number of distinct case-insensitive names.
func (idx *Index) Len() int {
	return len(idx.codes)
}

// Pairs returns deduplicated (scientific name, accepted symbol) pairs
// sorted by name and symbol.
func (idx *Index) Pairs() []Record {
	return slices.Clone(idx.pairs)
}

// Ambiguities returns names with more than one symbol sorted by name.
func (idx *Index) Ambiguities() []Ambiguity {
	return slices.Clone(idx.ambiguities)
}
