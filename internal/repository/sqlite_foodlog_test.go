package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/nutrimind/internal/db"
	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(daysAgo, hour, minute int) time.Time {
	return day.AddDate(0, 0, -daysAgo).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestFoodLogRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodLogRepo(db)
	ctx := context.Background()

	f := testutil.NewFoodLog(domain.MealBreakfast, "oatmeal", at(0, 8, 15), 350, 12)
	require.NoError(t, repo.Create(ctx, f))

	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)
	assert.Equal(t, domain.MealBreakfast, got.MealType)
	assert.Equal(t, "oatmeal", got.FoodName)
	assert.Equal(t, 350.0, got.Calories)
	assert.Equal(t, 12.0, got.Protein)
	assert.Equal(t, 3.0, got.Fiber)
	assert.True(t, got.LoggedAt.Equal(f.LoggedAt))
}

func TestFoodLogRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodLogRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFoodLogRepo_ListByDate_OrderedByTime(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodLogRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewFoodLog(domain.MealLunch, "salad", at(0, 12, 30), 450, 25)))
	require.NoError(t, repo.Create(ctx, testutil.NewFoodLog(domain.MealBreakfast, "eggs", at(0, 7, 45), 300, 20)))
	require.NoError(t, repo.Create(ctx, testutil.NewFoodLog(domain.MealDinner, "pasta", at(1, 19, 0), 700, 30)))

	logs, err := repo.ListByDate(ctx, domain.FormatDate(day))
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "eggs", logs[0].FoodName)
	assert.Equal(t, "salad", logs[1].FoodName)
}

func TestFoodLogRepo_DailyTotals(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodLogRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewFoodLog(domain.MealBreakfast, "eggs", at(0, 8, 0), 300, 20)))
	require.NoError(t, repo.Create(ctx, testutil.NewFoodLog(domain.MealLunch, "salad", at(0, 13, 0), 500, 30)))
	require.NoError(t, repo.Create(ctx, testutil.NewFoodLog(domain.MealDinner, "curry", at(2, 19, 0), 800, 40)))
	// Outside the window.
	require.NoError(t, repo.Create(ctx, testutil.NewFoodLog(domain.MealDinner, "pizza", at(9, 19, 0), 900, 35)))

	totals, err := repo.DailyTotals(ctx, domain.FormatDate(day.AddDate(0, 0, -6)), domain.FormatDate(day))
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "2026-03-08", totals[0].Date)
	assert.Equal(t, 800.0, totals[0].Calories)
	assert.True(t, totals[0].Logged)

	assert.Equal(t, "2026-03-10", totals[1].Date)
	assert.Equal(t, 800.0, totals[1].Calories)
	assert.Equal(t, 50.0, totals[1].Protein)
	assert.Equal(t, 6.0, totals[1].Fiber)
}

func TestFoodLogRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteFoodLogRepo(db)
	ctx := context.Background()

	f := testutil.NewFoodLog(domain.MealSnack, "apple", at(0, 16, 0), 95, 0)
	require.NoError(t, repo.Create(ctx, f))
	require.NoError(t, repo.Delete(ctx, f.ID))

	_, err := repo.GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, f.ID), ErrNotFound)
}

func TestFoodLogRepo_WithinTx_RollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	f := testutil.NewFoodLog(domain.MealLunch, "wrap", at(0, 12, 0), 520, 28)
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteFoodLogRepo(tx).Create(ctx, f); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = NewSQLiteFoodLogRepo(database).GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
