package veg

// Resolver finds a canonical code for a scientific name.
type Resolver interface {
	// Resolve returns the code and true, or an empty string and false
	// when the name is unknown.
	Resolve(name string) (string, bool)
}

// Substitute returns a copy of entries where every resolvable scientific
// name is replaced by its canonical code. Unresolved names stay in place
// and are also returned in the order they were met.
func Substitute(entries []Entry, r Resolver) ([]Entry, []string) {
	var unmatched []string
	res := make([]Entry, len(entries))
	for i, e := range entries {
		if code, ok := r.Resolve(e.SciName); ok {
			e.SciName = code
		} else {
			unmatched = append(unmatched, e.SciName)
		}
		res[i] = e
	}
	return res, unmatched
}
