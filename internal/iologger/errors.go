package iologger

import (
	"fmt"

	"github.com/gnames/esdveg/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateLogFileError creates an error for a log file that cannot be
// opened for writing.
func CreateLogFileError(path string, err error) error {
	msg := `Cannot open log file <em>%s</em>

<em>How to fix:</em>
  Set <em>log.destination</em> to 'stderr' in config.yaml or
  ESDVEG_LOG_DESTINATION=stderr`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open log file %s: %w", path, err),
	}
}
