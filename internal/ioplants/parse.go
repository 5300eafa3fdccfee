package ioplants

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/gnames/esdveg/pkg/ent/plant"
)

// Table is a parsed species table.
type Table struct {
	// Header contains sanitized column names.
	Header []string
	// Rows is the number of data rows.
	Rows int
	// Records contain scientific name and accepted symbol of every data
	// row in file order. Absent values are empty strings.
	Records []plant.Record
}

// ParseFile parses a species table stored at path.
func ParseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ParseError(path, err)
	}
	defer f.Close()
	return Parse(path, f)
}

// Parse reads a comma and quote delimited species table. The first line
// is the header. Data lines are split on '","', remaining quotes are
// removed. Blank lines are ignored. The source is used only in messages.
func Parse(source string, r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var res Table
	var nameIdx, symIdx int
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if res.Header == nil {
			line = strings.TrimPrefix(line, "\ufeff")
			res.Header = plant.NormalizeHeader(strings.Split(line, ","))
			nameIdx = slices.Index(res.Header, plant.NameColumn)
			if nameIdx < 0 {
				return nil, MissingColumnError(source, plant.NameColumn)
			}
			symIdx = slices.Index(res.Header, plant.SymbolColumn)
			if symIdx < 0 {
				return nil, MissingColumnError(source, plant.SymbolColumn)
			}
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Split(line, `","`)
		res.Rows++
		res.Records = append(res.Records, plant.Record{
			ScientificName: field(fields, nameIdx),
			AcceptedSymbol: field(fields, symIdx),
		})
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			slog.Error("Species table line is too long", "source", source)
		}
		return nil, ParseError(source, err)
	}

	if res.Header == nil {
		return nil, MissingColumnError(source, plant.NameColumn)
	}
	if res.Rows == 0 {
		return nil, EmptyTableError(source)
	}
	return &res, nil
}

func field(fields []string, idx int) string {
	if idx >= len(fields) {
		return ""
	}
	return strings.ReplaceAll(fields[idx], `"`, "")
}

// LoadIndex parses the table at path and builds a species code index.
// An index without names is an error.
func LoadIndex(path string) (*plant.Index, *Table, error) {
	tbl, err := ParseFile(path)
	if err != nil {
		return nil, nil, err
	}

	idx := plant.NewIndex(tbl.Records)
	if idx.Len() == 0 {
		return nil, nil, EmptyTableError(path)
	}

	for _, v := range idx.Ambiguities() {
		slog.Info("Ambiguous scientific name",
			"name", v.Name, "codes", v.Codes, "chosen", v.Chosen)
	}
	slog.Info("Loaded species table", "source", path,
		"rows", tbl.Rows, "names", idx.Len(),
		"ambiguous", len(idx.Ambiguities()))
	return idx, tbl, nil
}
