package plant

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// NameColumn is the sanitized header of scientific names.
	NameColumn = "scientific_name"
	// SymbolColumn is the sanitized header of accepted symbols.
	SymbolColumn = "accepted_symbol"
)

var nonIdentRx = regexp.MustCompile(`[^0-9a-zA-Z]+`)

// NormalizeHeader converts raw header fields into lower-case identifiers.
// Quotes are dropped, every run of characters other than ASCII letters and
// digits becomes '_'. Repeated names get numeric suffixes: 'symbol',
// 'symbol' becomes 'symbol_1', 'symbol_2'.
func NormalizeHeader(fields []string) []string {
	res := make([]string, len(fields))
	for i, f := range fields {
		f = strings.ReplaceAll(f, `"`, "")
		f = nonIdentRx.ReplaceAllString(f, "_")
		res[i] = strings.ToLower(f)
	}
	uniquify(res)
	return res
}

func uniquify(names []string) {
	counts := make(map[string]int, len(names))
	for _, v := range names {
		counts[v]++
	}

	suffixes := make(map[string]int)
	for i, v := range names {
		if counts[v] < 2 {
			continue
		}
		suffixes[v]++
		names[i] = fmt.Sprintf("%s_%d", v, suffixes[v])
	}
}
