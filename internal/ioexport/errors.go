package ioexport

import (
	"fmt"

	"github.com/gnames/esdveg/pkg/errcode"
	"github.com/gnames/gn"
)

// NoTableError creates an error for export into a database without
// export tables.
func NoTableError(table string) error {
	msg := `Table <em>%s</em> does not exist

<em>How to fix:</em>
  Run <em>esdveg create</em> before export`
	vars := []any{table}

	return &gn.Error{
		Code: errcode.ExportNoTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("table %s does not exist", table),
	}
}

// ExportError creates an error for a failed export. No rows are
// changed in this case.
func ExportError(stage string, err error) error {
	msg := "Export to PostgreSQL failed during <em>%s</em>, no rows changed"
	vars := []any{stage}

	return &gn.Error{
		Code: errcode.ExportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("export failed during %s: %w", stage, err),
	}
}
