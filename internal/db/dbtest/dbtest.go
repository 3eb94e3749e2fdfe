// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brokerdesk/brokerdesk/internal/db"
)

// New returns an empty, migrated in-memory SQLite database.
// The pool is limited to one connection so every query sees the same memory database.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), db.GormConfig(false))
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, db.Migrate(conn), "failed to migrate test database")

	return conn
}
