// Package parserpool keeps a fixed number of botanical gnparser instances
// for concurrent parsing of plant names.
package parserpool

import (
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool parses plant names concurrently.
type Pool interface {
	// Parse takes a parser from the pool, parses the name according to
	// the botanical code and returns the parser back. It blocks while all
	// parsers are busy.
	Parse(name string) parsed.Parsed

	// Close releases parsers. The pool cannot be used after Close.
	Close()
}

type pool struct {
	ch chan gnparser.GNparser
}

// New creates a pool of size parsers. Zero size means runtime.NumCPU().
func New(size int) Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	cfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	return &pool{ch: gnparser.NewPool(cfg, size)}
}

func (p *pool) Parse(name string) parsed.Parsed {
	parser := <-p.ch
	defer func() { p.ch <- parser }()
	return parser.ParseName(name)
}

func (p *pool) Close() {
	if p.ch == nil {
		return
	}
	close(p.ch)
	for range p.ch {
	}
	p.ch = nil
}

// Canonical returns the simple canonical form of a parsed name, or an
// empty string when the name could not be parsed.
func Canonical(p parsed.Parsed) string {
	if !p.Parsed || p.Canonical == nil {
		return ""
	}
	return p.Canonical.Simple
}
