package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/nutrimind/internal/db"
	"github.com/alexanderramin/nutrimind/internal/state"
)

var _ state.Persister = (*SQLiteStateRepo)(nil)

// SQLiteStateRepo implements StateRepo on the app_state table.
type SQLiteStateRepo struct {
	db db.DBTX
}

// NewSQLiteStateRepo creates a new SQLiteStateRepo.
func NewSQLiteStateRepo(conn db.DBTX) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: conn}
}

// LoadState returns the stored value for key. found is false when no row exists.
func (r *SQLiteStateRepo) LoadState(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("loading state %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (r *SQLiteStateRepo) SaveState(ctx context.Context, key string, value []byte) error {
	query := `INSERT OR REPLACE INTO app_state (key, value, updated_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, key, string(value), nowUTC()); err != nil {
		return fmt.Errorf("saving state %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteStateRepo) DeleteState(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting state %s: %w", key, err)
	}
	return nil
}
