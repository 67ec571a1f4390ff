package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillNutrientDates(db); err != nil {
		return fmt.Errorf("backfilling nutrient log dates: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profile (
		id             TEXT PRIMARY KEY,
		goal           TEXT NOT NULL DEFAULT 'maintain'
		               CHECK(goal IN ('lose','maintain','gain')),
		calorie_target REAL NOT NULL DEFAULT 2000,
		protein_target REAL NOT NULL DEFAULT 120,
		carbs_target   REAL NOT NULL DEFAULT 250,
		fat_target     REAL NOT NULL DEFAULT 65,
		started_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS food_logs (
		id         TEXT PRIMARY KEY,
		logged_at  TEXT NOT NULL,
		log_date   TEXT NOT NULL,
		meal_type  TEXT NOT NULL
		           CHECK(meal_type IN ('breakfast','lunch','dinner','snack')),
		food_name  TEXT NOT NULL,
		calories   REAL NOT NULL DEFAULT 0,
		protein    REAL NOT NULL DEFAULT 0,
		carbs      REAL NOT NULL DEFAULT 0,
		fat        REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_food_logs_date ON food_logs(log_date)`,

	`CREATE TABLE IF NOT EXISTS water_logs (
		id         TEXT PRIMARY KEY,
		logged_at  TEXT NOT NULL,
		log_date   TEXT NOT NULL,
		amount_ml  REAL NOT NULL CHECK(amount_ml > 0),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_water_logs_date ON water_logs(log_date)`,

	`CREATE TABLE IF NOT EXISTS nutrient_logs (
		id          TEXT PRIMARY KEY,
		nutrient_id TEXT NOT NULL,
		amount      REAL NOT NULL CHECK(amount >= 0),
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS app_state (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Fiber and water targets were added after the first profile release.
	`ALTER TABLE profile ADD COLUMN fiber_target REAL NOT NULL DEFAULT 28`,
	`ALTER TABLE profile ADD COLUMN water_target REAL NOT NULL DEFAULT 2500`,

	// Fiber per food row.
	`ALTER TABLE food_logs ADD COLUMN fiber REAL NOT NULL DEFAULT 0`,

	// Nutrient logs are keyed by calendar day; older rows are backfilled
	// from created_at by migrateBackfillNutrientDates.
	`ALTER TABLE nutrient_logs ADD COLUMN log_date TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_nutrient_logs_date ON nutrient_logs(log_date)`,
	`CREATE INDEX IF NOT EXISTS idx_nutrient_logs_nutrient ON nutrient_logs(nutrient_id, log_date)`,
}

func migrateBackfillNutrientDates(db *sql.DB) error {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting backfill transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `UPDATE nutrient_logs
		SET log_date = substr(created_at, 1, 10)
		WHERE log_date = ''`)
	if err != nil {
		return fmt.Errorf("updating nutrient log dates: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing nutrient log backfill: %w", err)
	}
	committed = true
	return nil
}
