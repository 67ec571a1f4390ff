package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/nutrimind/internal/db"
	"github.com/alexanderramin/nutrimind/internal/domain"
)

// SQLiteWaterLogRepo implements WaterLogRepo using a SQLite database.
type SQLiteWaterLogRepo struct {
	db db.DBTX
}

// NewSQLiteWaterLogRepo creates a new SQLiteWaterLogRepo.
func NewSQLiteWaterLogRepo(conn db.DBTX) *SQLiteWaterLogRepo {
	return &SQLiteWaterLogRepo{db: conn}
}

func (r *SQLiteWaterLogRepo) Create(ctx context.Context, w *domain.WaterLog) error {
	query := `INSERT INTO water_logs (id, logged_at, log_date, amount_ml, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		formatTime(w.LoggedAt),
		domain.FormatDate(w.LoggedAt),
		w.AmountMl,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting water log: %w", err)
	}
	return nil
}

func (r *SQLiteWaterLogRepo) ListByDate(ctx context.Context, date string) ([]*domain.WaterLog, error) {
	query := `SELECT id, logged_at, amount_ml FROM water_logs WHERE log_date = ? ORDER BY logged_at, id`
	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("listing water logs by date: %w", err)
	}
	defer rows.Close()

	var logs []*domain.WaterLog
	for rows.Next() {
		var w domain.WaterLog
		var loggedAt string
		if err := rows.Scan(&w.ID, &loggedAt, &w.AmountMl); err != nil {
			return nil, fmt.Errorf("scanning water log row: %w", err)
		}
		if w.LoggedAt, err = parseTime("logged_at", loggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating water logs: %w", err)
	}
	return logs, nil
}

// DailyTotals returns millilitres per calendar day in [from, to]. Days
// without water rows are absent.
func (r *SQLiteWaterLogRepo) DailyTotals(ctx context.Context, from, to string) (map[string]float64, error) {
	query := `SELECT log_date, SUM(amount_ml) FROM water_logs
		WHERE log_date BETWEEN ? AND ?
		GROUP BY log_date`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("summing water logs: %w", err)
	}
	defer rows.Close()

	totals := map[string]float64{}
	for rows.Next() {
		var date string
		var ml float64
		if err := rows.Scan(&date, &ml); err != nil {
			return nil, fmt.Errorf("scanning water total: %w", err)
		}
		totals[date] = ml
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating water totals: %w", err)
	}
	return totals, nil
}

func (r *SQLiteWaterLogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM water_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting water log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("water log: %w", ErrNotFound)
	}
	return nil
}
