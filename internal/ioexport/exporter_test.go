package ioexport_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/gnames/esdveg/internal/iodb"
	"github.com/gnames/esdveg/internal/ioexport"
	"github.com/gnames/esdveg/internal/ioschema"
	"github.com/gnames/esdveg/internal/iotesting"
	"github.com/gnames/esdveg/pkg/ent/veg"
	"github.com/gnames/esdveg/pkg/errcode"
	"github.com/gnames/esdveg/pkg/schema"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportNotConnected(t *testing.T) {
	exp := ioexport.New(iodb.NewPgxOperator(), 10)
	_, err := exp.Export(context.Background(), nil)
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	op := iotesting.ConnectOrSkip(t)
	ctx := context.Background()
	table := schema.VegSite{}.TableName()

	require.NoError(t, op.DropTable(ctx, table))

	t.Run("no table", func(t *testing.T) {
		_, err := ioexport.New(op, 10).Export(ctx, nil)
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.ExportNoTableError, gnErr.Code)
	})

	require.NoError(t, ioschema.NewManager(op).Create(ctx))

	finals := make([]veg.Final, 25)
	for i := range finals {
		finals[i] = veg.Final{
			SiteID: fmt.Sprintf("R035XY%03dUT", i),
			Veg:    "PIPO//BOGR2",
		}
	}

	exp := ioexport.New(op, 10)
	n, err := exp.Export(ctx, finals)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	finals[0].Veg = "ABCO"
	n, err = exp.Export(ctx, finals[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var count int
	err = op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM veg_sites").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 25, count, "repeated export replaces rows")

	var v string
	err = op.Pool().QueryRow(ctx,
		"SELECT veg FROM veg_sites WHERE site_id = $1",
		finals[0].SiteID).Scan(&v)
	require.NoError(t, err)
	assert.Equal(t, "ABCO", v)
}
