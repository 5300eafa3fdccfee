package iodebug_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/esdveg/internal/iodebug"
	"github.com/gnames/esdveg/pkg/ent/plant"
	"github.com/gnames/esdveg/pkg/ent/veg"
	"github.com/gnames/esdveg/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func testData() (*plant.Index, []veg.Result) {
	idx := plant.NewIndex([]plant.Record{
		{ScientificName: "Pinus ponderosa", AcceptedSymbol: "PIPO"},
		{ScientificName: "Quercus gambelii", AcceptedSymbol: "QUGA"},
		{ScientificName: "Bouteloua gracilis", AcceptedSymbol: "BOGR2"},
	})
	a := veg.NewAssembler(false)
	raws := []veg.Raw{
		{SiteID: "R035XY001UT",
			VegSci: "Pinus ponderosa/Quercus gambelii-Cercocarpus montanus"},
		{SiteID: "R035XY002UT", VegSci: "Pinus ponderosa//Bouteloua gracilis"},
		{SiteID: "R035XY003UT", VegSci: ""},
	}
	res := make([]veg.Result, len(raws))
	for i, v := range raws {
		res[i] = veg.Process(v, idx, a)
	}
	return idx, res
}

func count(t *testing.T, db *sql.DB, query string, args ...any) int {
	var res int
	err := db.QueryRow(query, args...).Scan(&res)
	require.NoError(t, err, query)
	return res
}

func TestWrite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses SQLite in short mode")
	}

	path := filepath.Join(t.TempDir(), "debug.sqlite")
	require.NoError(t, os.WriteFile(path, []byte("not a database"), 0644))

	idx, res := testData()
	err := iodebug.Write(context.Background(), path, idx, res)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 3, count(t, db, "SELECT count(*) FROM veg"))
	assert.Equal(t, 3, count(t, db, "SELECT count(*) FROM plants"))
	assert.Equal(t, 5, count(t, db, "SELECT count(*) FROM veg_split"))
	assert.Equal(t, 1,
		count(t, db, "SELECT count(*) FROM veg_split WHERE matched = 0"))
	assert.Equal(t, 4, count(t, db, "SELECT count(*) FROM subgroup"))
	assert.Equal(t, 3, count(t, db, "SELECT count(*) FROM veg_new"))

	var v string
	err = db.QueryRow(
		"SELECT veg FROM veg_new WHERE site_id = ?", "R035XY002UT",
	).Scan(&v)
	require.NoError(t, err)
	assert.Equal(t, "PIPO//BOGR2", v)

	err = db.QueryRow(
		"SELECT veg_group FROM veg_split WHERE site_id = ? AND order_1 = 2",
		"R035XY001UT",
	).Scan(&v)
	require.NoError(t, err)
	assert.Equal(t, "shrub", v)

	// second write replaces the file
	err = iodebug.Write(context.Background(), path, idx, res[:1])
	require.NoError(t, err)
	db2, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db2.Close()
	assert.Equal(t, 1, count(t, db2, "SELECT count(*) FROM veg"))
}

func TestWriteBadPath(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses SQLite in short mode")
	}

	path := filepath.Join(t.TempDir(), "missing", "debug.sqlite")
	idx, res := testData()
	err := iodebug.Write(context.Background(), path, idx, res)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.DebugStoreError, gnErr.Code)
}
