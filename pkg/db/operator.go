// Package db defines the contract of PostgreSQL connection management
// used by schema creation and export of final vegetation strings.
package db

import (
	"context"

	"github.com/gnames/esdveg/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages a connection pool. Components that need transactions
// or CopyFrom take the pool directly.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool, or nil before Connect.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// DropTable removes a table if it exists.
	DropTable(ctx context.Context, tableName string) error
}
