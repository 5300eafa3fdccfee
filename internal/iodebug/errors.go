package iodebug

import (
	"fmt"

	"github.com/gnames/esdveg/pkg/errcode"
	"github.com/gnames/gn"
)

// DebugStoreError creates an error for a failure of writing intermediate
// tables to a SQLite file.
func DebugStoreError(path, stage string, err error) error {
	msg := `Cannot write intermediate tables to <em>%s</em> (%s)

<em>How to fix:</em>
  Make sure the directory of the debug database exists and is writable`
	vars := []any{path, stage}

	return &gn.Error{
		Code: errcode.DebugStoreError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("debug store %s, %s: %w", path, stage, err),
	}
}
