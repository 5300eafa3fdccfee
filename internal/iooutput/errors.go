package iooutput

import (
	"fmt"

	"github.com/gnames/esdveg/pkg/errcode"
	"github.com/gnames/gn"
)

// UnknownFormatError creates an error for an output file with an
// unsupported extension.
func UnknownFormatError(path, ext string) error {
	msg := `Unsupported output extension <em>%s</em> of <em>%s</em>

<em>How to fix:</em>
  Use <em>.csv</em> for pipe-delimited output, <em>.json</em> or no
  extension for JSON output`
	vars := []any{ext, path}

	return &gn.Error{
		Code: errcode.OutputFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unsupported output extension %q of %s", ext, path),
	}
}

// WriteOutputError creates an error for a failed output write.
func WriteOutputError(path string, err error) error {
	msg := "Cannot write results to <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.OutputWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write %s: %w", path, err),
	}
}
