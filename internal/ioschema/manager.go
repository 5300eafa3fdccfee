// Package ioschema implements esdveg.SchemaManager with GORM
// AutoMigrate. This is an impure I/O package.
package ioschema

import (
	"context"
	"fmt"

	"github.com/gnames/esdveg/pkg/db"
	"github.com/gnames/esdveg/pkg/esdveg"
	"github.com/gnames/esdveg/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the esdveg.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) esdveg.SchemaManager {
	return &manager{operator: op}
}

// Create creates export tables using GORM AutoMigrate and
// sets collation of site identifiers.
func (m *manager) Create(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	return m.setCollation(ctx)
}

// setCollation sets "C" collation on site identifiers, so their
// ordering in the database matches byte ordering of output files.
func (m *manager) setCollation(ctx context.Context) error {
	type columnDef struct {
		table, column string
		varchar       int
	}

	columns := []columnDef{
		{schema.VegSite{}.TableName(), "site_id", 50},
	}

	qStr := `ALTER TABLE %s ALTER COLUMN %s ` +
		`TYPE VARCHAR(%d) COLLATE "C"`

	pool := m.operator.Pool()
	for _, col := range columns {
		q := fmt.Sprintf(qStr, col.table, col.column, col.varchar)
		if _, err := pool.Exec(ctx, q); err != nil {
			return CollationError(col.table, col.column, err)
		}
	}

	return nil
}
