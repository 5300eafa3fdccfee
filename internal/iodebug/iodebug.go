// Package iodebug saves intermediate tables of a conversion run into a
// SQLite file, so every stage of the pipeline can be inspected with SQL.
package iodebug

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gnames/esdveg/pkg/ent/plant"
	"github.com/gnames/esdveg/pkg/ent/veg"
	"github.com/gnames/gnuuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

const schema = `
CREATE TABLE veg (
	site_id TEXT PRIMARY KEY,
	veg_sci TEXT NOT NULL
);

CREATE TABLE veg_split (
	site_id TEXT NOT NULL,
	order_1 INTEGER NOT NULL,
	order_2 INTEGER NOT NULL,
	veg_group TEXT NOT NULL,
	sci_name TEXT NOT NULL,
	code TEXT NOT NULL,
	matched INTEGER NOT NULL,
	PRIMARY KEY (site_id, order_1, order_2)
);

CREATE TABLE plants (
	id TEXT PRIMARY KEY,
	scientific_name TEXT NOT NULL,
	accepted_symbol TEXT NOT NULL
);

CREATE TABLE subgroup (
	site_id TEXT NOT NULL,
	order_1 INTEGER NOT NULL,
	veg_group TEXT NOT NULL,
	subgroup TEXT NOT NULL,
	PRIMARY KEY (site_id, order_1)
);

CREATE TABLE veg_new (
	site_id TEXT PRIMARY KEY,
	veg TEXT NOT NULL
);
`

// Write recreates the SQLite file at path and fills it with the raw
// records, split entries, species pairs, subgroups and final strings of
// a run. Existing file is replaced.
func Write(
	ctx context.Context,
	path string,
	idx *plant.Index,
	results []veg.Result,
) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return DebugStoreError(path, "remove", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return DebugStoreError(path, "open", err)
	}
	defer db.Close()

	if _, err = db.ExecContext(ctx, schema); err != nil {
		return DebugStoreError(path, "schema", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return DebugStoreError(path, "transaction", err)
	}
	defer tx.Rollback()

	if err = insertPlants(ctx, tx, idx); err != nil {
		return DebugStoreError(path, "plants", err)
	}
	if err = insertResults(ctx, tx, results); err != nil {
		return DebugStoreError(path, "sites", err)
	}

	if err = tx.Commit(); err != nil {
		return DebugStoreError(path, "commit", err)
	}

	slog.Info("Saved intermediate tables",
		"path", path, "sites", len(results), "plants", idx.Len())
	return nil
}

func insertPlants(ctx context.Context, tx *sql.Tx, idx *plant.Index) error {
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO plants (id, scientific_name, accepted_symbol) "+
			"VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range idx.Pairs() {
		id := gnuuid.New(v.ScientificName + "|" + v.AcceptedSymbol).String()
		_, err = stmt.ExecContext(ctx, id, v.ScientificName, v.AcceptedSymbol)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertResults(ctx context.Context, tx *sql.Tx, results []veg.Result) error {
	vegStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO veg (site_id, veg_sci) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer vegStmt.Close()

	splitStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO veg_split "+
			"(site_id, order_1, order_2, veg_group, sci_name, code, matched) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer splitStmt.Close()

	sgStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO subgroup (site_id, order_1, veg_group, subgroup) "+
			"VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer sgStmt.Close()

	newStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO veg_new (site_id, veg) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer newStmt.Close()

	for _, r := range results {
		if err = ctx.Err(); err != nil {
			return err
		}
		_, err = vegStmt.ExecContext(ctx, r.Raw.SiteID, r.Raw.VegSci)
		if err != nil {
			return err
		}

		unmatched := make(map[string]struct{}, len(r.Unmatched))
		for _, v := range r.Unmatched {
			unmatched[v] = struct{}{}
		}
		for i, e := range r.Parsed {
			code := r.Substituted[i].SciName
			_, miss := unmatched[e.SciName]
			matched := !miss
			_, err = splitStmt.ExecContext(ctx,
				e.SiteID, e.Order1, e.Order2, e.Group.String(),
				e.SciName, code, matched,
			)
			if err != nil {
				return err
			}
		}

		for _, sg := range r.Subgroups {
			_, err = sgStmt.ExecContext(ctx,
				sg.SiteID, sg.Order1, sg.Group.String(), sg.Value,
			)
			if err != nil {
				return err
			}
		}

		_, err = newStmt.ExecContext(ctx, r.Final.SiteID, r.Final.Veg)
		if err != nil {
			return err
		}
	}
	return nil
}
