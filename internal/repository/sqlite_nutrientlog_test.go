package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNutrient(nutrientID string, daysAgo int, amount float64) *domain.NutrientLog {
	t := at(daysAgo, 20, 0)
	return &domain.NutrientLog{
		ID:         uuid.New().String(),
		Date:       domain.FormatDate(t),
		NutrientID: nutrientID,
		Amount:     amount,
		CreatedAt:  t,
	}
}

func TestNutrientLogRepo_DailyIntakes_SumsPerDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteNutrientLogRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newNutrient("iron", 0, 4)))
	require.NoError(t, repo.Create(ctx, newNutrient("iron", 0, 3.5)))
	require.NoError(t, repo.Create(ctx, newNutrient("iron", 1, 9)))
	require.NoError(t, repo.Create(ctx, newNutrient("calcium", 1, 600)))
	require.NoError(t, repo.Create(ctx, newNutrient("calcium", 8, 900)))

	intakes, err := repo.DailyIntakes(ctx, "2026-03-04", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, []domain.NutrientIntake{
		{NutrientID: "calcium", Date: "2026-03-09", Amount: 600},
		{NutrientID: "iron", Date: "2026-03-09", Amount: 9},
		{NutrientID: "iron", Date: "2026-03-10", Amount: 7.5},
	}, intakes)
}

func TestNutrientLogRepo_ListByDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteNutrientLogRepo(db)
	ctx := context.Background()

	n := newNutrient("vitamin_d", 0, 5)
	require.NoError(t, repo.Create(ctx, n))
	require.NoError(t, repo.Create(ctx, newNutrient("vitamin_d", 2, 5)))

	logs, err := repo.ListByDate(ctx, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, n.ID, logs[0].ID)
	assert.Equal(t, "vitamin_d", logs[0].NutrientID)
	assert.True(t, logs[0].CreatedAt.Equal(n.CreatedAt))
}

func TestNutrientLogRepo_RejectsNegativeAmount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteNutrientLogRepo(db)

	assert.Error(t, repo.Create(context.Background(), newNutrient("zinc", 0, -1)))
}

func TestNutrientLogRepo_Delete_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteNutrientLogRepo(db)

	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)
}
