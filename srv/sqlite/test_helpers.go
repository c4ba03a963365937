package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/require"
)

// NewTestSqliteStorage returns migrated storage backed by a database file in
// a per-test temporary directory. Each call gets a fresh, empty database.
func NewTestSqliteStorage(t *testing.T, dbName string) *Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), dbName+"_"+ksuid.New().String()+".db")

	storage, err := OpenStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	return storage
}
