// Package iooutput writes final vegetation strings and audit reports.
package iooutput

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnames/esdveg/internal/iofs"
	"github.com/gnames/esdveg/pkg/ent/audit"
	"github.com/gnames/esdveg/pkg/ent/veg"
	"github.com/gnames/gnfmt"
)

// Format of an output file.
type Format int

const (
	// JSON is an array of {"site_id", "veg"} objects.
	JSON Format = iota
	// Pipe is a '|' delimited table with a header row.
	Pipe
)

// FormatFromPath determines output format by file extension: '.csv'
// means Pipe, '.json' or no extension means JSON.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".csv":
		return Pipe, nil
	case ".json", "":
		return JSON, nil
	default:
		return JSON, UnknownFormatError(path, ext)
	}
}

// AuditPath returns the path of an audit report for an output file.
func AuditPath(outPath string) string {
	return outPath + ".audit.csv"
}

// WriteFinals writes final records to path in the format given by its
// extension. The file is replaced only after a successful write.
func WriteFinals(path string, finals []veg.Final) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	err = iofs.WriteAtomic(path, func(w io.Writer) error {
		if f == Pipe {
			return encodePipe(w, finals)
		}
		return encodeJSON(w, finals)
	})
	if err != nil {
		return WriteOutputError(path, err)
	}
	return nil
}

func encodePipe(w io.Writer, finals []veg.Final) error {
	cw := newPipeWriter(w)
	if err := cw.Write([]string{"site_id", "veg"}); err != nil {
		return err
	}
	for _, v := range finals {
		if err := cw.Write([]string{v.SiteID, v.Veg}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeJSON(w io.Writer, finals []veg.Final) error {
	if finals == nil {
		finals = []veg.Final{}
	}
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(finals)
	if err != nil {
		return err
	}
	if _, err = w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// WriteAudit writes audit findings as a pipe-delimited table.
func WriteAudit(path string, fs []audit.Finding) error {
	err := iofs.WriteAtomic(path, func(w io.Writer) error {
		cw := newPipeWriter(w)
		header := []string{"name", "occurrences", "canonical", "suggested_code"}
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, v := range fs {
			row := []string{
				v.Name, strconv.Itoa(v.Occurrences), v.Canonical, v.Suggested,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return WriteOutputError(path, err)
	}
	return nil
}

func newPipeWriter(w io.Writer) *csv.Writer {
	res := csv.NewWriter(w)
	res.Comma = '|'
	res.UseCRLF = true
	return res
}
