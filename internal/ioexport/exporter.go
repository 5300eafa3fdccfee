// Package ioexport implements esdveg.Exporter for PostgreSQL.
package ioexport

import (
	"context"
	"log/slog"

	"github.com/gnames/esdveg/internal/iodb"
	"github.com/gnames/esdveg/pkg/db"
	"github.com/gnames/esdveg/pkg/ent/veg"
	"github.com/gnames/esdveg/pkg/esdveg"
	"github.com/gnames/esdveg/pkg/schema"
	"github.com/jackc/pgx/v5"
)

type exporter struct {
	operator  db.Operator
	batchSize int
}

// New creates an Exporter that sends rows in batches of batchSize.
func New(op db.Operator, batchSize int) esdveg.Exporter {
	return &exporter{operator: op, batchSize: max(batchSize, 1)}
}

// Export removes rows of the given sites and inserts new ones inside one
// transaction.
func (e *exporter) Export(
	ctx context.Context,
	finals []veg.Final,
) (int, error) {
	pool := e.operator.Pool()
	if pool == nil {
		return 0, iodb.NotConnectedError()
	}

	table := schema.VegSite{}.TableName()
	exists, err := e.operator.TableExists(ctx, table)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, NoTableError(table)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, ExportError("begin", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids := make([]string, len(finals))
	for i, f := range finals {
		ids[i] = f.SiteID
	}
	q := "DELETE FROM " + pgx.Identifier{table}.Sanitize() +
		" WHERE site_id = ANY($1)"
	tag, err := tx.Exec(ctx, q, ids)
	if err != nil {
		return 0, ExportError("delete", err)
	}
	slog.Debug("Removed previous rows", "table", table,
		"rows", tag.RowsAffected())

	var res int
	cols := schema.VegSite{}.Columns()
	for start := 0; start < len(finals); start += e.batchSize {
		end := min(start+e.batchSize, len(finals))
		rows := make([][]any, 0, end-start)
		for _, f := range finals[start:end] {
			rows = append(rows, schema.NewVegSite(f.SiteID, f.Veg).Values())
		}

		n, err := tx.CopyFrom(
			ctx, pgx.Identifier{table}, cols, pgx.CopyFromRows(rows),
		)
		if err != nil {
			return 0, ExportError("copy", err)
		}
		res += int(n)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, ExportError("commit", err)
	}
	slog.Info("Exported vegetation strings", "table", table, "rows", res)
	return res, nil
}
