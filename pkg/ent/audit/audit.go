// Package audit checks names that did not match the species table and
// suggests codes for names that match after parsing. Typical cases are
// names with authorship or with irregular spacing.
package audit

import (
	"cmp"
	"context"
	"slices"

	"github.com/gnames/esdveg/pkg/ent/veg"
	"github.com/gnames/esdveg/pkg/parserpool"
	"golang.org/x/sync/errgroup"
)

// Finding is the audit result of one unmatched name.
type Finding struct {
	// Name is the unmatched scientific name as it appeared in the data.
	Name string
	// Occurrences is how many times the name was met in all sites.
	Occurrences int
	// Canonical is the parsed canonical form, empty if parsing failed.
	Canonical string
	// Suggested is a code the canonical form resolves to, if any.
	Suggested string
}

// Auditor produces findings for unmatched names.
type Auditor struct {
	pool     parserpool.Pool
	resolver veg.Resolver
	jobs     int
}

// New creates an Auditor. The pool is owned by the caller.
func New(pool parserpool.Pool, r veg.Resolver, jobs int) *Auditor {
	return &Auditor{pool: pool, resolver: r, jobs: max(jobs, 1)}
}

// Audit returns findings for every name of the counts map, sorted by
// name.
func (a *Auditor) Audit(
	ctx context.Context,
	counts map[string]int,
) ([]Finding, error) {
	names := make([]string, 0, len(counts))
	for k := range counts {
		names = append(names, k)
	}
	slices.Sort(names)

	res := make([]Finding, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.jobs)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f := a.check(name)
			f.Occurrences = counts[name]
			res[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (a *Auditor) check(name string) Finding {
	res := Finding{Name: name}
	p := a.pool.Parse(name)
	res.Canonical = parserpool.Canonical(p)
	if res.Canonical == "" {
		return res
	}

	// the full canonical keeps infraspecific ranks, as the species
	// table does
	var candidates []string
	if p.Canonical.Full != "" {
		candidates = append(candidates, veg.NormalizeName(p.Canonical.Full))
	}
	candidates = append(candidates, res.Canonical)

	for _, c := range candidates {
		if c == name {
			continue
		}
		if code, ok := a.resolver.Resolve(c); ok {
			res.Suggested = code
			break
		}
	}
	return res
}

// Suggestions returns only findings that have a suggested code.
func Suggestions(fs []Finding) []Finding {
	var res []Finding
	for _, f := range fs {
		if f.Suggested != "" {
			res = append(res, f)
		}
	}
	return res
}

// TopByOccurrence returns up to n findings with the most occurrences.
func TopByOccurrence(fs []Finding, n int) []Finding {
	res := slices.Clone(fs)
	slices.SortStableFunc(res, func(a, b Finding) int {
		return cmp.Compare(b.Occurrences, a.Occurrences)
	})
	if len(res) > n {
		res = res[:n]
	}
	return res
}
