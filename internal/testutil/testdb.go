package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/nutrimind/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory database closed at test end.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openAt(t, ":memory:")
}

// NewFileDB opens a migrated WAL database in a temp dir. Unlike :memory:,
// every pooled connection sees the same data.
func NewFileDB(t *testing.T) *sql.DB {
	t.Helper()
	return openAt(t, filepath.Join(t.TempDir(), "nutrimind.db"))
}

func openAt(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
