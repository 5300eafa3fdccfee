// Package ioconvert implements esdveg.Converter. It reads vegetation
// records, obtains the species table, converts every site concurrently
// and writes the results together with optional audit, debug, export
// and metrics artifacts.
package ioconvert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/esdveg/internal/iodebug"
	"github.com/gnames/esdveg/internal/ioexport"
	"github.com/gnames/esdveg/internal/iometrics"
	"github.com/gnames/esdveg/internal/iooutput"
	"github.com/gnames/esdveg/internal/ioplants"
	"github.com/gnames/esdveg/internal/ioschema"
	"github.com/gnames/esdveg/internal/ioveg"
	"github.com/gnames/esdveg/pkg/config"
	"github.com/gnames/esdveg/pkg/db"
	"github.com/gnames/esdveg/pkg/ent/audit"
	"github.com/gnames/esdveg/pkg/ent/plant"
	"github.com/gnames/esdveg/pkg/ent/veg"
	"github.com/gnames/esdveg/pkg/esdveg"
	"github.com/gnames/esdveg/pkg/parserpool"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
)

// topUnmatched is the number of most frequent unmatched names shown to
// a user.
const topUnmatched = 10

type converter struct {
	cfg      *config.Config
	operator db.Operator
	progress bool
}

// New creates a Converter. The operator is used only for export and can
// be nil when export is disabled. With progress, progress bars are shown
// for downloads and site processing.
func New(
	cfg *config.Config,
	op db.Operator,
	progress bool,
) esdveg.Converter {
	return &converter{cfg: cfg, operator: op, progress: progress}
}

// Convert runs the whole pipeline. The species table is loaded completely
// before any site is processed, and no output is written until every
// site is converted.
func (c *converter) Convert(
	ctx context.Context,
	vegPath, outPath string,
) (*esdveg.Summary, error) {
	start := time.Now()
	slog.Info("Starting conversion", "input", vegPath, "output", outPath)

	if _, err := iooutput.FormatFromPath(outPath); err != nil {
		return nil, err
	}
	if c.cfg.WithExport && c.operator == nil {
		return nil, NoOperatorError()
	}

	input, err := ioveg.Read(vegPath)
	if err != nil {
		return nil, err
	}
	gn.Info("Read <em>%s</em> sites from %s",
		humanize.Comma(int64(len(input.Records))), vegPath)

	idx, err := c.loadPlants(ctx)
	if err != nil {
		return nil, err
	}

	results, err := c.process(ctx, input.Records, idx)
	if err != nil {
		return nil, err
	}

	finals := make([]veg.Final, len(results))
	for i := range results {
		finals[i] = results[i].Final
	}

	summary, counts := summarize(input, idx, results)

	if c.cfg.WithAudit {
		if err = c.audit(ctx, idx, counts, outPath, summary); err != nil {
			return nil, err
		}
	}

	if c.cfg.DebugDB != "" {
		if err = iodebug.Write(ctx, c.cfg.DebugDB, idx, results); err != nil {
			return nil, err
		}
		gn.Info("Intermediate tables are saved to %s", c.cfg.DebugDB)
	}

	if err = iooutput.WriteFinals(outPath, finals); err != nil {
		return nil, err
	}

	if c.cfg.WithExport {
		if summary.Exported, err = c.export(ctx, finals); err != nil {
			return nil, err
		}
	}

	summary.Duration = time.Since(start)

	if c.cfg.MetricsFile != "" {
		m := iometrics.New()
		m.Observe(summary)
		if err = m.WriteFile(c.cfg.MetricsFile); err != nil {
			return nil, err
		}
	}

	slog.Info("Conversion completed",
		"sites", summary.Sites,
		"entries", summary.Entries,
		"matched", summary.Matched,
		"unmatched", summary.Unmatched,
		"skipped_rows", summary.SkippedRows,
		"duplicate_rows", summary.DuplicateRows,
		"dropped_strata", summary.DroppedStrata,
		"duration", summary.Duration,
	)
	return summary, nil
}

func (c *converter) loadPlants(ctx context.Context) (*plant.Index, error) {
	f := ioplants.NewFetcher(c.cfg, c.progress)
	path, err := f.Fetch(ctx, c.cfg.Plants.Source)
	if err != nil {
		return nil, err
	}

	idx, _, err := ioplants.LoadIndex(path)
	if err != nil {
		return nil, err
	}
	gn.Info("Loaded <em>%s</em> scientific names of the species table",
		humanize.Comma(int64(idx.Len())))
	if n := len(idx.Ambiguities()); n > 0 {
		gn.Warn("%d scientific names have more than one code, "+
			"the alphabetically first code is used", n)
	}
	return idx, nil
}

// process converts sites concurrently. Results are sorted by site ID.
func (c *converter) process(
	ctx context.Context,
	raws []veg.Raw,
	idx *plant.Index,
) ([]veg.Result, error) {
	asm := veg.NewAssembler(c.cfg.Assembly.CollapseEmpty)
	res := make([]veg.Result, len(raws))

	var bar *pb.ProgressBar
	if c.progress {
		bar = pb.Full.Start(len(raws))
		bar.Set("prefix", "Converting sites: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.cfg.JobsNumber, 1))
	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res[i] = veg.Process(raw, idx, asm)
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, CancelledError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, CancelledError(err)
	}

	slices.SortFunc(res, func(a, b veg.Result) int {
		return strings.Compare(a.Raw.SiteID, b.Raw.SiteID)
	})
	return res, nil
}

// summarize collects statistics of a run and counts of unmatched names.
func summarize(
	input *ioveg.Result,
	idx *plant.Index,
	results []veg.Result,
) (*esdveg.Summary, map[string]int) {
	res := esdveg.Summary{
		Sites:          len(results),
		SkippedRows:    input.Skipped,
		DuplicateRows:  input.Duplicates,
		AmbiguousNames: len(idx.Ambiguities()),
	}
	counts := make(map[string]int)
	for _, r := range results {
		res.Entries += len(r.Parsed)
		res.Unmatched += len(r.Unmatched)
		res.DroppedStrata += veg.DroppedStrata(r.Subgroups)
		for _, name := range r.Unmatched {
			counts[name]++
		}
	}
	res.Matched = res.Entries - res.Unmatched
	res.UnmatchedNames = len(counts)
	return &res, counts
}

func (c *converter) audit(
	ctx context.Context,
	idx *plant.Index,
	counts map[string]int,
	outPath string,
	summary *esdveg.Summary,
) error {
	pool := parserpool.New(c.cfg.JobsNumber)
	defer pool.Close()

	fs, err := audit.New(pool, idx, c.cfg.JobsNumber).Audit(ctx, counts)
	if err != nil {
		if errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return CancelledError(err)
		}
		return AuditError(err)
	}

	suggestions := audit.Suggestions(fs)
	summary.Suggestions = len(suggestions)

	path := iooutput.AuditPath(outPath)
	if err = iooutput.WriteAudit(path, fs); err != nil {
		return err
	}

	for _, v := range audit.TopByOccurrence(fs, topUnmatched) {
		slog.Info("Unmatched scientific name",
			"name", v.Name, "occurrences", v.Occurrences,
			"suggested", v.Suggested)
	}
	gn.Info("Audit of %d unmatched names is saved to %s, %d have suggestions",
		len(fs), path, len(suggestions))
	return nil
}

func (c *converter) export(
	ctx context.Context,
	finals []veg.Final,
) (int, error) {
	if err := ioschema.NewManager(c.operator).Create(ctx); err != nil {
		return 0, err
	}

	n, err := ioexport.New(c.operator, c.cfg.Database.BatchSize).
		Export(ctx, finals)
	if err != nil {
		return 0, err
	}
	gn.Info("Exported <em>%s</em> rows to PostgreSQL",
		humanize.Comma(int64(n)))
	return n, nil
}

// Report is a user-facing text summary of a conversion.
func Report(s *esdveg.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Sites: %s\n", humanize.Comma(int64(s.Sites)))
	fmt.Fprintf(&sb, "Entries: %s, matched %.2f%%\n",
		humanize.Comma(int64(s.Entries)), s.MatchRate())
	fmt.Fprintf(&sb, "Unmatched names: %s\n",
		humanize.Comma(int64(s.UnmatchedNames)))
	if s.SkippedRows+s.DuplicateRows > 0 {
		fmt.Fprintf(&sb, "Skipped rows: %d, duplicate rows: %d\n",
			s.SkippedRows, s.DuplicateRows)
	}
	if s.DroppedStrata > 0 {
		fmt.Fprintf(&sb, "Strata beyond the third: %d\n", s.DroppedStrata)
	}
	fmt.Fprintf(&sb, "Duration: %s", gnfmt.TimeString(s.Duration.Seconds()))
	return sb.String()
}
