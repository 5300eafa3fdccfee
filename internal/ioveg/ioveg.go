// Package ioveg reads raw vegetation records produced by the ecological
// site scraper. Records come either as a pipe-delimited file with a
// header row, or as a JSON array of objects.
package ioveg

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/esdveg/pkg/ent/veg"
	"github.com/gnames/gnfmt"
)

const (
	// SiteIDColumn is the header of site identifiers.
	SiteIDColumn = "site_id"
	// VegSciColumn is the header of vegetation strings.
	VegSciColumn = "veg_sci"
)

var bom = []byte("\ufeff")

// Result contains records of a vegetation file.
type Result struct {
	// Records are unique by SiteID and keep the order of the file.
	Records []veg.Raw
	// Skipped is the number of rows without site ID or vegetation value.
	Skipped int
	// Duplicates is the number of rows with a site ID seen before. Only
	// the first row of a site is used.
	Duplicates int
}

// Read loads records from path. Files with '.json' extension are read
// as JSON, all others as pipe-delimited tables.
func Read(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadVegError(path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return readJSON(path, f)
	}
	return readPipe(path, f)
}

// ReadPipe loads records from a pipe-delimited stream. The path is used
// only in messages.
func ReadPipe(path string, r io.Reader) (*Result, error) {
	return readPipe(path, r)
}

func readPipe(path string, r io.Reader) (*Result, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, bom) {
		_, _ = br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.Comma = '|'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, MissingColumnError(path, SiteIDColumn)
	}
	if err != nil {
		return nil, ReadVegError(path, err)
	}

	idIdx, vegIdx := -1, -1
	for i, v := range header {
		switch strings.TrimSpace(v) {
		case SiteIDColumn:
			idIdx = i
		case VegSciColumn:
			vegIdx = i
		}
	}
	if idIdx < 0 {
		return nil, MissingColumnError(path, SiteIDColumn)
	}
	if vegIdx < 0 {
		return nil, MissingColumnError(path, VegSciColumn)
	}

	b := newBuilder()
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ReadVegError(path, err)
		}

		line, _ := cr.FieldPos(0)
		var id, vegSci *string
		if idIdx < len(row) {
			id = &row[idIdx]
		}
		if vegIdx < len(row) {
			vegSci = &row[vegIdx]
		}
		b.add(line, id, vegSci)
	}
	return b.result(path), nil
}

type jsonRecord struct {
	SiteID *string `json:"site_id"`
	VegSci *string `json:"veg_sci"`
}

func readJSON(path string, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ReadVegError(path, err)
	}
	data = bytes.TrimPrefix(data, bom)

	var recs []jsonRecord
	enc := gnfmt.GNjson{}
	if err = enc.Decode(data, &recs); err != nil {
		return nil, ReadVegError(path, err)
	}

	b := newBuilder()
	for i, v := range recs {
		b.add(i+1, v.SiteID, v.VegSci)
	}
	return b.result(path), nil
}

type builder struct {
	seen map[string]struct{}
	res  Result
}

func newBuilder() *builder {
	return &builder{seen: make(map[string]struct{})}
}

func (b *builder) add(line int, id, vegSci *string) {
	if id == nil || strings.TrimSpace(*id) == "" || vegSci == nil {
		b.res.Skipped++
		slog.Warn("Skipping vegetation row without site_id or veg_sci",
			"line", line)
		return
	}

	siteID := strings.TrimSpace(*id)
	if _, ok := b.seen[siteID]; ok {
		b.res.Duplicates++
		slog.Warn("Ignoring duplicate site_id", "line", line,
			"site_id", siteID)
		return
	}
	b.seen[siteID] = struct{}{}
	b.res.Records = append(b.res.Records, veg.Raw{
		SiteID: siteID,
		VegSci: *vegSci,
	})
}

func (b *builder) result(path string) *Result {
	slog.Info("Read vegetation records", "path", path,
		"records", len(b.res.Records), "skipped", b.res.Skipped,
		"duplicates", b.res.Duplicates)
	res := b.res
	return &res
}
