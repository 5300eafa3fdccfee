package ioconvert

import (
	"fmt"

	"github.com/gnames/esdveg/pkg/errcode"
	"github.com/gnames/gn"
)

// CancelledError creates an error for when conversion is cancelled.
func CancelledError(err error) error {
	msg := "Conversion was cancelled, no results were written"

	return &gn.Error{
		Code: errcode.ConvertCancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("conversion cancelled: %w", err),
	}
}

// AuditError creates an error for a failed audit of unmatched names.
func AuditError(err error) error {
	msg := "Cannot audit unmatched scientific names"

	return &gn.Error{
		Code: errcode.AuditError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("audit failed: %w", err),
	}
}

// NoOperatorError creates an error for export requested without a
// database connection.
func NoOperatorError() error {
	msg := `Export to PostgreSQL requires a database connection

<em>How to fix:</em>
  Check <em>database</em> section of config.yaml`

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("export without database operator"),
	}
}
