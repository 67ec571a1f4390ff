package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/repository"
	"github.com/alexanderramin/nutrimind/internal/state"
	"github.com/alexanderramin/nutrimind/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repos struct {
	db        *sql.DB
	profiles  *repository.SQLiteProfileRepo
	foods     *repository.SQLiteFoodLogRepo
	water     *repository.SQLiteWaterLogRepo
	nutrients *repository.SQLiteNutrientLogRepo
	states    *repository.SQLiteStateRepo
}

func newRepos(t *testing.T) repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repos{
		db:        database,
		profiles:  repository.NewSQLiteProfileRepo(database),
		foods:     repository.NewSQLiteFoodLogRepo(database),
		water:     repository.NewSQLiteWaterLogRepo(database),
		nutrients: repository.NewSQLiteNutrientLogRepo(database),
		states:    repository.NewSQLiteStateRepo(database),
	}
}

func dayAt(now time.Time, daysAgo, hour, minute int) time.Time {
	d := now.AddDate(0, 0, -daysAgo)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

// seedWeek logs a realistic week ending at testutil.BaseTime (Tuesday 14:00):
// two meals today, a 2000 kcal dinner on each of the five previous days,
// water on two days and iron on the last five days.
func seedWeek(t *testing.T, r repos) {
	t.Helper()
	ctx := context.Background()
	now := testutil.BaseTime

	require.NoError(t, r.profiles.Upsert(ctx, testutil.NewProfile(now, 10)))

	require.NoError(t, r.foods.Create(ctx, testutil.NewFoodLog(domain.MealBreakfast, "oats", dayAt(now, 0, 8, 0), 350, 12)))
	require.NoError(t, r.foods.Create(ctx, testutil.NewFoodLog(domain.MealBreakfast, "coffee", dayAt(now, 0, 7, 30), 50, 1)))
	require.NoError(t, r.foods.Create(ctx, testutil.NewFoodLog(domain.MealLunch, "salad", dayAt(now, 0, 12, 30), 600, 30)))
	for i := 1; i <= 5; i++ {
		require.NoError(t, r.foods.Create(ctx, testutil.NewFoodLog(domain.MealDinner, "stew", dayAt(now, i, 19, 0), 2000, 100)))
	}

	for _, w := range []struct {
		daysAgo, hour int
		ml            float64
	}{{0, 9, 500}, {0, 13, 250}, {2, 10, 2000}} {
		require.NoError(t, r.water.Create(ctx, &domain.WaterLog{
			ID: uuid.New().String(), LoggedAt: dayAt(now, w.daysAgo, w.hour, 0), AmountMl: w.ml,
		}))
	}

	for i := 0; i <= 4; i++ {
		at := dayAt(now, i, 20, 0)
		require.NoError(t, r.nutrients.Create(ctx, &domain.NutrientLog{
			ID: uuid.New().String(), Date: domain.FormatDate(at), NutrientID: "iron", Amount: 3, CreatedAt: at,
		}))
	}
}

func TestCollector_DerivesSnapshot(t *testing.T) {
	r := newRepos(t)
	seedWeek(t, r)
	c := NewCollector(r.profiles, r.foods, r.water, r.nutrients, nil)

	d, err := c.Collect(context.Background(), testutil.BaseTime)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", d.Date)
	assert.Equal(t, 14, d.CurrentHour)
	assert.InDelta(t, 0.5, d.DayProgress, 1e-9)
	assert.Equal(t, 11, d.DaysUsingApp)
	assert.Equal(t, domain.GoalMaintain, d.Goal)

	require.Len(t, d.Meals, 2)
	assert.Equal(t, 2, d.MealCount)
	breakfast := d.Meals[0]
	assert.Equal(t, domain.MealBreakfast, breakfast.Type)
	assert.Equal(t, 400.0, breakfast.Calories)
	assert.Equal(t, 13.0, breakfast.Protein)
	assert.Equal(t, []string{"coffee", "oats"}, breakfast.Items)
	require.NotNil(t, breakfast.FirstLoggedAt)
	assert.Equal(t, 7, breakfast.FirstLoggedAt.Hour())
	assert.Equal(t, 30, breakfast.FirstLoggedAt.Minute())
	assert.Equal(t, domain.MealLunch, d.Meals[1].Type)

	assert.Equal(t, 1000.0, d.TodayCalories)
	assert.Equal(t, 43.0, d.TodayProtein)
	assert.Equal(t, 9.0, d.TodayFiber)
	assert.Equal(t, 750.0, d.TodayWater)

	assert.Equal(t, 50, d.CaloriePercent)
	assert.Equal(t, 36, d.ProteinPercent)
	assert.Equal(t, 32, d.FiberPercent)
	assert.Equal(t, 30, d.WaterPercent)

	require.Len(t, d.WeeklyTotals, 7)
	assert.Equal(t, "2026-03-04", d.WeeklyTotals[0].Date)
	assert.False(t, d.WeeklyTotals[0].Logged)
	assert.Equal(t, "2026-03-10", d.WeeklyTotals[6].Date)
	assert.Len(t, d.LoggedDays(), 6)

	assert.InDelta(t, 11000.0/6, d.Avg7DayCalories, 1e-9)
	assert.InDelta(t, 543.0/6, d.Avg7DayProtein, 1e-9)
	assert.Equal(t, 1375.0, d.Avg7DayWater)
	assert.Equal(t, 6, d.LoggingStreak)
	assert.Equal(t, 0, d.CalorieStreak, "today is at 50% so the calorie streak is broken")
}

func TestCollector_ActiveAlertsIncludeFoodFiber(t *testing.T) {
	r := newRepos(t)
	seedWeek(t, r)
	c := NewCollector(r.profiles, r.foods, r.water, r.nutrients, nil)

	d, err := c.Collect(context.Background(), testutil.BaseTime)
	require.NoError(t, err)

	require.Len(t, d.ActiveAlerts, 2)
	iron := d.ActiveAlerts[0]
	assert.Equal(t, "iron", iron.NutrientID)
	assert.Equal(t, 17, iron.PercentOfRDA)
	assert.Equal(t, domain.SeverityConcern, iron.Severity)
	assert.Equal(t, 3.0, iron.AvgIntake)

	fiber := d.ActiveAlerts[1]
	assert.Equal(t, "fiber", fiber.NutrientID)
	assert.Equal(t, 4.0, fiber.AvgIntake)
	assert.Equal(t, 14, fiber.PercentOfRDA)
}

func TestCollector_DismissedAlertIsSkipped(t *testing.T) {
	r := newRepos(t)
	seedWeek(t, r)
	dismissals := state.NewDismissalStore(r.states, 0)
	_, err := dismissals.Dismiss(context.Background(), "iron", domain.SeverityConcern, testutil.BaseTime.Add(-time.Hour))
	require.NoError(t, err)

	c := NewCollector(r.profiles, r.foods, r.water, r.nutrients, dismissals)
	d, err := c.Collect(context.Background(), testutil.BaseTime)
	require.NoError(t, err)

	require.Len(t, d.ActiveAlerts, 1)
	assert.Equal(t, "fiber", d.ActiveAlerts[0].NutrientID)
}

func TestCollector_FirstDay(t *testing.T) {
	r := newRepos(t)
	now := testutil.BaseTime
	require.NoError(t, r.profiles.Upsert(context.Background(), testutil.NewProfile(now, 0)))
	c := NewCollector(r.profiles, r.foods, r.water, r.nutrients, nil)

	d, err := c.Collect(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, d.DaysUsingApp)
	assert.Equal(t, 0, d.MealCount)
	assert.NotNil(t, d.Meals)
	assert.Empty(t, d.Meals)
	assert.Len(t, d.WeeklyTotals, 7)
	assert.Empty(t, d.LoggedDays())
	assert.Equal(t, 0, d.LoggingStreak)
	assert.Equal(t, 0.0, d.Avg7DayCalories)
	assert.NotNil(t, d.ActiveAlerts)
	assert.Empty(t, d.ActiveAlerts)
}

func TestCollector_MissingProfile(t *testing.T) {
	r := newRepos(t)
	c := NewCollector(r.profiles, r.foods, r.water, r.nutrients, nil)

	_, err := c.Collect(context.Background(), testutil.BaseTime)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func totals(now time.Time, calories map[int]float64) map[string]domain.DayTotal {
	out := map[string]domain.DayTotal{}
	for daysAgo, kcal := range calories {
		date := domain.FormatDate(now.AddDate(0, 0, -daysAgo))
		out[date] = domain.DayTotal{Date: date, Logged: true, Calories: kcal}
	}
	return out
}

func TestLoggingStreak_EndsYesterdayWhenTodayEmpty(t *testing.T) {
	now := testutil.BaseTime
	assert.Equal(t, 3, loggingStreak(now, totals(now, map[int]float64{1: 1, 2: 1, 3: 1, 5: 1})))
	assert.Equal(t, 1, loggingStreak(now, totals(now, map[int]float64{0: 1, 2: 1})))
	assert.Equal(t, 0, loggingStreak(now, totals(now, map[int]float64{2: 1})))
}

func TestCalorieStreak(t *testing.T) {
	now := testutil.BaseTime
	tests := []struct {
		name string
		days map[int]float64
		want int
	}{
		{"ends at most recent logged day", map[int]float64{1: 1900, 2: 2100, 3: 1500}, 2},
		{"boundaries inclusive", map[int]float64{0: 1800, 1: 2200}, 2},
		{"most recent out of range", map[int]float64{0: 2300, 1: 2000}, 0},
		{"gap stops the streak", map[int]float64{0: 2000, 2: 2000}, 1},
		{"nothing logged", map[int]float64{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calorieStreak(now, totals(now, tt.days), 2000))
		})
	}
	assert.Equal(t, 0, calorieStreak(now, totals(now, map[int]float64{0: 2000}), 0))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	b := time.Date(2026, 3, 2, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, daysBetween(a, b))
	assert.Equal(t, 0, daysBetween(b, a))
	assert.Equal(t, 0, daysBetween(a, a))
}

func TestDaysSinceLastLog(t *testing.T) {
	now := testutil.BaseTime
	assert.Equal(t, StreakLookbackDays, daysSinceLastLog(now, nil))
	assert.Equal(t, 2, daysSinceLastLog(now, []domain.DayTotal{{Date: "2026-03-01"}, {Date: "2026-03-08"}}))
}
