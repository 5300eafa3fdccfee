package iodb_test

import (
	"context"
	"testing"

	"github.com/gnames/esdveg/internal/iodb"
	"github.com/gnames/esdveg/internal/iotesting"
	"github.com/gnames/esdveg/pkg/config"
	"github.com/gnames/esdveg/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests need PostgreSQL with an 'esdveg_test' database.
// Credentials are taken from ESDVEG_DATABASE_* variables or defaults.
// They are skipped with 'go test -short' or when no server responds.

func TestImplementsInterface(t *testing.T) {
	var _ db.Operator = iodb.NewPgxOperator()
}

func TestNotConnected(t *testing.T) {
	op := iodb.NewPgxOperator()
	ctx := context.Background()

	assert.Nil(t, op.Pool())
	_, err := op.TableExists(ctx, "veg_sites")
	assert.Error(t, err)
	assert.Error(t, op.DropTable(ctx, "veg_sites"))
	assert.NoError(t, op.Close())
}

func TestConnectInvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := config.New().Database
	cfg.Host = "invalid.host.example"
	cfg.Database = iotesting.TestDatabaseName

	op := iodb.NewPgxOperator()
	err := op.Connect(context.Background(), &cfg)
	assert.Error(t, err)
	assert.Nil(t, op.Pool())
}

func TestTables(t *testing.T) {
	op := iotesting.ConnectOrSkip(t)
	ctx := context.Background()

	_, err := op.Pool().Exec(ctx,
		"CREATE TABLE IF NOT EXISTS iodb_probe (id INT)")
	require.NoError(t, err)

	exists, err := op.TableExists(ctx, "iodb_probe")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, op.DropTable(ctx, "iodb_probe"))
	exists, err = op.TableExists(ctx, "iodb_probe")
	require.NoError(t, err)
	assert.False(t, exists)
}
