package veg

// Result keeps every stage of processing of one site.
type Result struct {
	Raw Raw
	// Parsed entries with original scientific names.
	Parsed []Entry
	// Substituted entries with canonical codes where available.
	Substituted []Entry
	Subgroups   []Subgroup
	Final       Final
	// Unmatched names of the site, in the order of appearance.
	Unmatched []string
}

// Process runs a raw record through parsing, substitution, aggregation
// and assembly. It only reads r, so it is safe to call concurrently with
// a shared Resolver that is not modified.
func Process(raw Raw, r Resolver, a Assembler) Result {
	parsed := Parse(raw.SiteID, raw.VegSci)
	substituted, unmatched := Substitute(parsed, r)
	subgroups := Aggregate(substituted)
	return Result{
		Raw:         raw,
		Parsed:      parsed,
		Substituted: substituted,
		Subgroups:   subgroups,
		Final:       a.Assemble(raw.SiteID, subgroups),
		Unmatched:   unmatched,
	}
}
