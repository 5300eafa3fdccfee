package ioplants

import (
	"fmt"

	"github.com/gnames/esdveg/pkg/errcode"
	"github.com/gnames/gn"
)

// FetchError creates an error for a species table that cannot be
// obtained. Conversion cannot continue without the table.
func FetchError(source string, err error) error {
	msg := `Cannot get species table from <em>%s</em>

<em>How to fix:</em>
  1. Check network access and the <em>plants.source</em> setting
  2. Increase <em>plants.timeout_sec</em> for slow connections
  3. Use a local copy: <em>esdveg convert -p /path/to/plants.txt ...</em>`
	vars := []any{source}

	return &gn.Error{
		Code: errcode.PlantsFetchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot fetch species table %s: %w", source, err),
	}
}

// ParseError creates an error for an unreadable species table.
func ParseError(source string, err error) error {
	msg := "Cannot parse species table <em>%s</em>"
	vars := []any{source}

	return &gn.Error{
		Code: errcode.PlantsParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse species table %s: %w", source, err),
	}
}

// MissingColumnError creates an error for a species table without a
// required column.
func MissingColumnError(source, column string) error {
	msg := "Species table <em>%s</em> has no <em>%s</em> column"
	vars := []any{source, column}

	return &gn.Error{
		Code: errcode.PlantsColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("species table %s has no %s column",
			source, column),
	}
}

// EmptyTableError creates an error for a species table without usable
// rows. An empty table would turn every name into unmatched one.
func EmptyTableError(source string) error {
	msg := "Species table <em>%s</em> has no usable rows"
	vars := []any{source}

	return &gn.Error{
		Code: errcode.PlantsEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("species table %s is empty", source),
	}
}
