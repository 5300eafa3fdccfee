package veg

import (
	"strings"
)

const (
	// StratumSep separates strata in a vegetation string.
	StratumSep = "/"
	// SpeciesSep separates co-dominant species within a stratum.
	SpeciesSep = "-"
)

// Parse splits a vegetation string of a site into ordered entries.
//
// Strata get order numbers even when they are empty, species get
// order numbers only when they are not empty after trimming. An empty
// or whitespace-only string produces no entries.
func Parse(siteID, vegSci string) []Entry {
	var res []Entry
	for i, stratum := range strings.Split(vegSci, StratumSep) {
		order1 := i + 1
		group := NewGroup(order1)
		order2 := 1
		for _, token := range strings.Split(stratum, SpeciesSep) {
			name := strings.TrimSpace(token)
			if name == "" {
				continue
			}
			res = append(res, Entry{
				SiteID:  siteID,
				Order1:  order1,
				Order2:  order2,
				Group:   group,
				SciName: NormalizeName(name),
			})
			order2++
		}
	}
	return res
}

// NormalizeName replaces ' subsp. ' with ' ssp. ', the abbreviation
// used by the authoritative species table.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, " subsp. ", " ssp. ")
}
