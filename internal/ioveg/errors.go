package ioveg

import (
	"fmt"

	"github.com/gnames/esdveg/pkg/errcode"
	"github.com/gnames/gn"
)

// ReadVegError creates an error for an unreadable vegetation file.
func ReadVegError(path string, err error) error {
	msg := "Cannot read vegetation records from <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.VegReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

// MissingColumnError creates an error for a vegetation file without a
// required column.
func MissingColumnError(path, column string) error {
	msg := `Column <em>%s</em> is missing in <em>%s</em>

<em>How to fix:</em>
  The file must be pipe-delimited with a header row that contains
  <em>site_id</em> and <em>veg_sci</em> columns`
	vars := []any{column, path}

	return &gn.Error{
		Code: errcode.VegColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("column %s is missing in %s", column, path),
	}
}
