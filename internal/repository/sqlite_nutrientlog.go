package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/nutrimind/internal/db"
	"github.com/alexanderramin/nutrimind/internal/domain"
)

// SQLiteNutrientLogRepo implements NutrientLogRepo using a SQLite database.
type SQLiteNutrientLogRepo struct {
	db db.DBTX
}

// NewSQLiteNutrientLogRepo creates a new SQLiteNutrientLogRepo.
func NewSQLiteNutrientLogRepo(conn db.DBTX) *SQLiteNutrientLogRepo {
	return &SQLiteNutrientLogRepo{db: conn}
}

func (r *SQLiteNutrientLogRepo) Create(ctx context.Context, n *domain.NutrientLog) error {
	query := `INSERT INTO nutrient_logs (id, nutrient_id, amount, log_date, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.NutrientID,
		n.Amount,
		n.Date,
		formatTime(n.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting nutrient log: %w", err)
	}
	return nil
}

func (r *SQLiteNutrientLogRepo) ListByDate(ctx context.Context, date string) ([]*domain.NutrientLog, error) {
	query := `SELECT id, log_date, nutrient_id, amount, created_at
		FROM nutrient_logs WHERE log_date = ? ORDER BY nutrient_id, created_at`
	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("listing nutrient logs by date: %w", err)
	}
	defer rows.Close()

	var logs []*domain.NutrientLog
	for rows.Next() {
		var n domain.NutrientLog
		var createdAt string
		if err := rows.Scan(&n.ID, &n.Date, &n.NutrientID, &n.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning nutrient log row: %w", err)
		}
		if n.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		logs = append(logs, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating nutrient logs: %w", err)
	}
	return logs, nil
}

// DailyIntakes sums amounts per nutrient per calendar day in [from, to],
// ordered by nutrient then date.
func (r *SQLiteNutrientLogRepo) DailyIntakes(ctx context.Context, from, to string) ([]domain.NutrientIntake, error) {
	query := `SELECT nutrient_id, log_date, SUM(amount)
		FROM nutrient_logs
		WHERE log_date BETWEEN ? AND ?
		GROUP BY nutrient_id, log_date
		ORDER BY nutrient_id, log_date`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("summing nutrient logs: %w", err)
	}
	defer rows.Close()

	var out []domain.NutrientIntake
	for rows.Next() {
		var in domain.NutrientIntake
		if err := rows.Scan(&in.NutrientID, &in.Date, &in.Amount); err != nil {
			return nil, fmt.Errorf("scanning nutrient intake: %w", err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating nutrient intakes: %w", err)
	}
	return out, nil
}

func (r *SQLiteNutrientLogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM nutrient_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting nutrient log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("nutrient log: %w", ErrNotFound)
	}
	return nil
}
