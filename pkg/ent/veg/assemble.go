package veg

import (
	"strings"
)

// Slots is the fixed stratum domain of a final vegetation string.
// Slot i holds the stratum with Order1 == i+1.
var Slots = []Group{Tree, Shrub, Grass}

// Assembler builds final vegetation strings out of subgroups.
type Assembler struct {
	collapseEmpty bool
}

// NewAssembler creates an Assembler. With collapseEmpty every '//' is
// collapsed to '/', otherwise empty interior strata keep their slots.
// Trailing separators are removed in both cases.
func NewAssembler(collapseEmpty bool) Assembler {
	return Assembler{collapseEmpty: collapseEmpty}
}

// Assemble joins the subgroups of a site that fit into Slots with '/'.
// Subgroups of other sites and of strata beyond Slots are ignored.
func (a Assembler) Assemble(siteID string, subgroups []Subgroup) Final {
	parts := make([]string, len(Slots))
	for _, sg := range subgroups {
		if sg.SiteID != siteID || sg.Order1 < 1 || sg.Order1 > len(Slots) {
			continue
		}
		parts[sg.Order1-1] = sg.Value
	}
	veg := strings.Join(parts, StratumSep)
	return Final{SiteID: siteID, Veg: a.format(veg)}
}

func (a Assembler) format(veg string) string {
	if a.collapseEmpty {
		for strings.Contains(veg, "//") {
			veg = strings.ReplaceAll(veg, "//", StratumSep)
		}
	}
	return strings.TrimRight(veg, StratumSep)
}

// DroppedStrata counts subgroups that do not fit into Slots and
// therefore never reach a final string.
func DroppedStrata(subgroups []Subgroup) int {
	var res int
	for _, sg := range subgroups {
		if sg.Order1 > len(Slots) {
			res++
		}
	}
	return res
}
