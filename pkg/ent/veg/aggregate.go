package veg

import (
	"cmp"
	"slices"
	"strings"
)

// Aggregate folds entries into one Subgroup per site and stratum.
// Names inside a subgroup are joined by '-' in Order2 order. Strata
// without entries produce no subgroup. The input is not modified.
func Aggregate(entries []Entry) []Subgroup {
	if len(entries) == 0 {
		return nil
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, compareEntries)

	var res []Subgroup
	var names []string
	cur := sorted[0]
	for _, e := range sorted {
		if e.SiteID != cur.SiteID || e.Order1 != cur.Order1 {
			res = append(res, newSubgroup(cur, names))
			names = names[:0]
			cur = e
		}
		names = append(names, e.SciName)
	}
	res = append(res, newSubgroup(cur, names))
	return res
}

func newSubgroup(e Entry, names []string) Subgroup {
	return Subgroup{
		SiteID: e.SiteID,
		Order1: e.Order1,
		Group:  e.Group,
		Value:  strings.Join(names, SpeciesSep),
	}
}

func compareEntries(a, b Entry) int {
	return cmp.Or(
		strings.Compare(a.SiteID, b.SiteID),
		cmp.Compare(a.Order1, b.Order1),
		cmp.Compare(a.Order2, b.Order2),
	)
}
