// Package veg contains entities and pure transformations of ecological
// site vegetation strings.
//
// A raw vegetation string lists strata from the top canopy down,
// separated by '/', and co-dominant species inside a stratum separated
// by '-':
//
//	Pinus ponderosa/Quercus gambelii-Cercocarpus montanus
//
// The pipeline parses such a string into entries, substitutes scientific
// names with canonical codes, aggregates entries back into per-stratum
// subgroups and assembles the final code-based string:
//
//	PIPO/QUGA-CEMO2
package veg

// Group is a vegetation stratum derived from the stratum order.
type Group int

const (
	Unknown Group = iota
	Tree
	Shrub
	Grass
)

var groupNames = map[Group]string{
	Unknown: "unknown",
	Tree:    "tree",
	Shrub:   "shrub",
	Grass:   "grass",
}

// String returns the name of the group as used in intermediate tables.
func (g Group) String() string {
	if s, ok := groupNames[g]; ok {
		return s
	}
	return groupNames[Unknown]
}

// NewGroup returns a group for a 1-based stratum order. Strata after the
// third one are Unknown.
func NewGroup(order1 int) Group {
	switch order1 {
	case 1:
		return Tree
	case 2:
		return Shrub
	case 3:
		return Grass
	default:
		return Unknown
	}
}

// Raw is a vegetation record of one ecological site as it was scraped.
type Raw struct {
	// SiteID is the unique ecological site identifier.
	SiteID string
	// VegSci is the delimited string of scientific names.
	VegSci string
}

// Entry is one species of one stratum of a site.
type Entry struct {
	SiteID string
	// Order1 is the 1-based stratum index.
	Order1 int
	// Order2 is the 1-based position of the species within its stratum.
	Order2 int
	Group  Group
	// SciName is a scientific name, or a canonical code after
	// substitution.
	SciName string
}

// Subgroup is the dash-joined content of one stratum of a site.
type Subgroup struct {
	SiteID string
	Order1 int
	Group  Group
	Value  string
}

// Final is the reassembled vegetation string of a site.
type Final struct {
	SiteID string `json:"site_id"`
	Veg    string `json:"veg"`
}
