package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/nutrimind/internal/db"
	"github.com/alexanderramin/nutrimind/internal/domain"
)

// DefaultProfileID is the single profile row of a local install.
const DefaultProfileID = "default"

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context) (*domain.Profile, error) {
	query := `SELECT id, goal, calorie_target, protein_target, carbs_target, fat_target,
		fiber_target, water_target, started_at
		FROM profile WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, DefaultProfileID)

	var p domain.Profile
	var goal, startedAt string
	err := row.Scan(
		&p.ID,
		&goal,
		&p.CalorieTarget,
		&p.ProteinTarget,
		&p.CarbsTarget,
		&p.FatTarget,
		&p.FiberTarget,
		&p.WaterTarget,
		&startedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	p.Goal = domain.GoalType(goal)
	if p.StartedAt, err = parseTime("started_at", startedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	if p.ID == "" {
		p.ID = DefaultProfileID
	}
	query := `INSERT OR REPLACE INTO profile (id, goal, calorie_target, protein_target,
		carbs_target, fat_target, fiber_target, water_target, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		string(p.Goal),
		p.CalorieTarget,
		p.ProteinTarget,
		p.CarbsTarget,
		p.FatTarget,
		p.FiberTarget,
		p.WaterTarget,
		formatTime(p.StartedAt),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}
