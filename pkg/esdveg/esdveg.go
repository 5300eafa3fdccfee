// Package esdveg defines the top-level contract of converting ecological
// site vegetation strings from scientific names to canonical species
// codes.
package esdveg

import (
	"context"
	"time"

	"github.com/gnames/esdveg/pkg/ent/veg"
)

// Converter turns a file of raw vegetation records into a file of final
// code-based vegetation strings.
type Converter interface {
	// Convert reads records from vegPath, converts every site and writes
	// the results sorted by site ID to outPath. The output format is
	// determined by the extension of outPath. Nothing is written unless
	// every site is converted.
	Convert(ctx context.Context, vegPath, outPath string) (*Summary, error)
}

// Summary describes a finished conversion.
type Summary struct {
	// Sites is the number of converted sites.
	Sites int `json:"sites"`
	// SkippedRows is the number of input rows without site ID or
	// vegetation value.
	SkippedRows int `json:"skippedRows"`
	// DuplicateRows is the number of input rows with an already seen
	// site ID.
	DuplicateRows int `json:"duplicateRows"`
	// Entries is the total number of parsed species entries.
	Entries int `json:"entries"`
	// Matched is the number of entries substituted by a code.
	Matched int `json:"matched"`
	// Unmatched is the number of entries that kept a scientific name.
	Unmatched int `json:"unmatched"`
	// UnmatchedNames is the number of distinct unmatched names.
	UnmatchedNames int `json:"unmatchedNames"`
	// AmbiguousNames is the number of species table names with more than
	// one accepted symbol.
	AmbiguousNames int `json:"ambiguousNames"`
	// DroppedStrata is the number of strata beyond the third one that
	// are not part of final strings.
	DroppedStrata int `json:"droppedStrata"`
	// Suggestions is the number of unmatched names for which the audit
	// found a code.
	Suggestions int `json:"suggestions,omitempty"`
	// Exported is the number of rows sent to PostgreSQL.
	Exported int `json:"exported,omitempty"`
	// Duration of the whole conversion.
	Duration time.Duration `json:"duration"`
}

// MatchRate returns the share of matched entries in percents.
func (s *Summary) MatchRate() float64 {
	if s.Entries == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Entries) * 100
}

// SchemaManager creates PostgreSQL tables for exported vegetation
// strings. Creation is idempotent.
type SchemaManager interface {
	// Create runs GORM AutoMigrate on export models and sets "C" collation
	// on site identifiers.
	Create(ctx context.Context) error
}

// Exporter sends final vegetation strings to PostgreSQL.
type Exporter interface {
	// Export replaces rows of the given sites and returns the number of
	// written rows. Either all rows are written or none.
	Export(ctx context.Context, finals []veg.Final) (int, error)
}
