package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/nutrimind/internal/db"
	"github.com/alexanderramin/nutrimind/internal/domain"
)

// SQLiteFoodLogRepo implements FoodLogRepo using a SQLite database.
type SQLiteFoodLogRepo struct {
	db db.DBTX
}

// NewSQLiteFoodLogRepo creates a new SQLiteFoodLogRepo.
func NewSQLiteFoodLogRepo(conn db.DBTX) *SQLiteFoodLogRepo {
	return &SQLiteFoodLogRepo{db: conn}
}

const foodLogColumns = `id, logged_at, meal_type, food_name, calories, protein, carbs, fat, fiber`

// Create stores f. log_date is taken from LoggedAt in its own location.
func (r *SQLiteFoodLogRepo) Create(ctx context.Context, f *domain.FoodLog) error {
	query := `INSERT INTO food_logs (id, logged_at, log_date, meal_type, food_name,
		calories, protein, carbs, fat, fiber, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		formatTime(f.LoggedAt),
		domain.FormatDate(f.LoggedAt),
		string(f.MealType),
		f.FoodName,
		f.Calories,
		f.Protein,
		f.Carbs,
		f.Fat,
		f.Fiber,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting food log: %w", err)
	}
	return nil
}

func (r *SQLiteFoodLogRepo) GetByID(ctx context.Context, id string) (*domain.FoodLog, error) {
	query := `SELECT ` + foodLogColumns + ` FROM food_logs WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var f domain.FoodLog
	var loggedAt, mealType string
	err := row.Scan(&f.ID, &loggedAt, &mealType, &f.FoodName,
		&f.Calories, &f.Protein, &f.Carbs, &f.Fat, &f.Fiber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("food log: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning food log: %w", err)
	}
	return populateFoodLog(&f, loggedAt, mealType)
}

func (r *SQLiteFoodLogRepo) ListByDate(ctx context.Context, date string) ([]*domain.FoodLog, error) {
	query := `SELECT ` + foodLogColumns + ` FROM food_logs WHERE log_date = ? ORDER BY logged_at, id`
	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("listing food logs by date: %w", err)
	}
	defer rows.Close()

	var logs []*domain.FoodLog
	for rows.Next() {
		var f domain.FoodLog
		var loggedAt, mealType string
		if err := rows.Scan(&f.ID, &loggedAt, &mealType, &f.FoodName,
			&f.Calories, &f.Protein, &f.Carbs, &f.Fat, &f.Fiber); err != nil {
			return nil, fmt.Errorf("scanning food log row: %w", err)
		}
		log, parseErr := populateFoodLog(&f, loggedAt, mealType)
		if parseErr != nil {
			return nil, parseErr
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating food logs: %w", err)
	}
	return logs, nil
}

// DailyTotals returns one entry per calendar day in [from, to] that has at
// least one food row, ascending by date. Every returned entry is Logged.
func (r *SQLiteFoodLogRepo) DailyTotals(ctx context.Context, from, to string) ([]domain.DayTotal, error) {
	query := `SELECT log_date, SUM(calories), SUM(protein), SUM(carbs), SUM(fat), SUM(fiber)
		FROM food_logs
		WHERE log_date BETWEEN ? AND ?
		GROUP BY log_date
		ORDER BY log_date`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("summing food logs: %w", err)
	}
	defer rows.Close()

	var totals []domain.DayTotal
	for rows.Next() {
		t := domain.DayTotal{Logged: true}
		if err := rows.Scan(&t.Date, &t.Calories, &t.Protein, &t.Carbs, &t.Fat, &t.Fiber); err != nil {
			return nil, fmt.Errorf("scanning daily total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily totals: %w", err)
	}
	return totals, nil
}

func (r *SQLiteFoodLogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM food_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting food log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("food log: %w", ErrNotFound)
	}
	return nil
}

// populateFoodLog fills in parsed fields after scanning raw strings.
func populateFoodLog(f *domain.FoodLog, loggedAt, mealType string) (*domain.FoodLog, error) {
	var err error
	if f.LoggedAt, err = time.Parse(time.RFC3339, loggedAt); err != nil {
		return nil, fmt.Errorf("parsing logged_at: %w", err)
	}
	f.MealType = domain.MealType(mealType)
	return f, nil
}
