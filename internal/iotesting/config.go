// Package iotesting provides shared utilities for integration tests.
package iotesting

import (
	"context"
	"testing"
	"time"

	"github.com/gnames/esdveg/internal/ioconfig"
	"github.com/gnames/esdveg/internal/iodb"
	"github.com/gnames/esdveg/pkg/config"
	"github.com/gnames/esdveg/pkg/db"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "esdveg_test"
)

// GetTestConfig returns a configuration for integration tests. It uses
// defaults with ESDVEG_* environment variables and always points to
// TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg, err := ioconfig.Load("")
	if err != nil {
		cfg = config.New()
	}
	cfg.Update([]config.Option{
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptLogDestination("stderr"),
	})
	return cfg
}

// GetTestDatabaseConfig returns only the database part of GetTestConfig.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// ConnectOrSkip connects to the test database or skips the test in short
// mode or when PostgreSQL is not reachable. The connection is closed when
// the test finishes.
func ConnectOrSkip(t *testing.T) db.Operator {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, GetTestDatabaseConfig()); err != nil {
		t.Skipf("PostgreSQL test database is not available: %v", err)
	}
	t.Cleanup(func() { _ = op.Close() })
	return op
}
