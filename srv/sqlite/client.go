package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"studentrecords/common"

	zlog "github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// NewStorage opens the database at the configured path and brings its schema
// up to date.
func NewStorage() (*Storage, error) {
	dbPath, err := common.GetDatabasePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	return OpenStorage(dbPath)
}

func OpenStorage(dbPath string) (*Storage, error) {
	zlog.Debug().Str("path", dbPath).Msg("Initializing SQLite storage")

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	storage := NewStorageFromDB(db)
	if err := storage.MigrateUp(filepath.Base(dbPath)); err != nil {
		db.Close()
		return nil, err
	}

	zlog.Debug().Msg("SQLite storage initialized successfully")
	return storage, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open(driverName, dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return db, nil
}

// dsn enables foreign keys on every pooled connection, which the cascading
// deletes in the schema rely on.
func dsn(dbPath string) string {
	return "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
