// Package testutil opens throwaway databases for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clubhouse-hq/clubhouse-api/internal/db"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

// NewSQLite returns a migrated SQLite database living in a temp dir removed
// after the test.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "clubhouse.db"))
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return gdb
}
