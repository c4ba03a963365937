package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"studentrecords/srv"

	zlog "github.com/rs/zerolog/log"
)

type Storage struct {
	db *sql.DB
}

func NewStorageFromDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) CheckConnection(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	zlog.Debug().Msg("Closing SQLite connection")
	return s.db.Close()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *Storage) insert(ctx context.Context, entity string, query string, args ...interface{}) (int64, error) {
	zlog.Trace().Str("query", query).Msg("Executing SQLite insert")
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s: %w", entity, translateError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get id of inserted %s: %w", entity, err)
	}
	return id, nil
}

// execOne runs an update or delete that must touch exactly one row. Zero rows
// affected means the target does not exist and yields srv.ErrNotFound.
func (s *Storage) execOne(ctx context.Context, entity string, query string, args ...interface{}) error {
	zlog.Trace().Str("query", query).Msg("Executing SQLite statement")
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to modify %s: %w", entity, translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for %s: %w", entity, err)
	}
	if rowsAffected == 0 {
		return srv.ErrNotFound
	}
	return nil
}

func (s *Storage) queryAll(ctx context.Context, entity string, query string, scan func(rowScanner) error, args ...interface{}) error {
	zlog.Trace().Str("query", query).Msg("Executing SQLite query")
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", entity, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan %s row: %w", entity, err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating %s rows: %w", entity, err)
	}
	return nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%w: %v", srv.ErrInvalidReference, err)
	}
	return err
}

var _ srv.Storage = (*Storage)(nil)
