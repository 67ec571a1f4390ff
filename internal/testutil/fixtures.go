package testutil

import (
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/google/uuid"
)

// BaseTime is the wall clock used by default fixtures: Tuesday 14:00 UTC.
var BaseTime = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

// Snapshot options
type SnapshotOption func(*domain.DailyInsightData)

// At moves the snapshot to the given wall-clock time.
func At(t time.Time) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.Date = domain.FormatDate(t)
		d.CurrentHour = t.Hour()
		d.DayProgress = domain.DayProgress(t)
		d.CollectedAt = t
	}
}

// WithHour keeps the date and moves the clock to the given hour.
func WithHour(h int) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		t := d.CollectedAt
		At(time.Date(t.Year(), t.Month(), t.Day(), h, 0, 0, 0, t.Location()))(d)
	}
}

func WithToday(calories, protein, carbs, fat float64) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.TodayCalories = calories
		d.TodayProtein = protein
		d.TodayCarbs = carbs
		d.TodayFat = fat
		recompute(d)
	}
}

func WithTargets(calories, protein, carbs, fat float64) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.CalorieTarget = calories
		d.ProteinTarget = protein
		d.CarbsTarget = carbs
		d.FatTarget = fat
		recompute(d)
	}
}

func WithFiber(today, target float64) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.TodayFiber = today
		d.FiberTarget = target
		recompute(d)
	}
}

func WithWater(today, target float64) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.TodayWater = today
		d.WaterTarget = target
		recompute(d)
	}
}

// WithMeals replaces the meal list and the meal count.
func WithMeals(meals ...domain.Meal) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.Meals = meals
		d.MealCount = len(meals)
	}
}

// WithCaloriePercent pins the calorie percentage without touching intake.
func WithCaloriePercent(p int) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.CaloriePercent = p
	}
}

// WithProteinPercent pins the protein percentage without touching intake.
func WithProteinPercent(p int) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.ProteinPercent = p
	}
}

func WithWeekly(totals ...domain.DayTotal) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.WeeklyTotals = totals
	}
}

func WithAverages(calories, protein, water float64) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.Avg7DayCalories = calories
		d.Avg7DayProtein = protein
		d.Avg7DayWater = water
	}
}

func WithStreaks(logging, calorie int) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.LoggingStreak = logging
		d.CalorieStreak = calorie
	}
}

func WithGoal(g domain.GoalType) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.Goal = g
	}
}

func WithDaysUsingApp(n int) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.DaysUsingApp = n
	}
}

func WithAlerts(alerts ...domain.DeficiencyCheck) SnapshotOption {
	return func(d *domain.DailyInsightData) {
		d.ActiveAlerts = alerts
	}
}

func recompute(d *domain.DailyInsightData) {
	d.CaloriePercent = domain.Percent(d.TodayCalories, d.CalorieTarget)
	d.ProteinPercent = domain.Percent(d.TodayProtein, d.ProteinTarget)
	d.CarbsPercent = domain.Percent(d.TodayCarbs, d.CarbsTarget)
	d.FatPercent = domain.Percent(d.TodayFat, d.FatTarget)
	d.FiberPercent = domain.Percent(d.TodayFiber, d.FiberTarget)
	d.WaterPercent = domain.Percent(d.TodayWater, d.WaterTarget)
}

// MealAt builds a meal first logged at hh:mm on the BaseTime date.
func MealAt(t domain.MealType, hour, minute int, calories, protein float64, items ...string) domain.Meal {
	ts := time.Date(BaseTime.Year(), BaseTime.Month(), BaseTime.Day(), hour, minute, 0, 0, time.UTC)
	return domain.Meal{
		Type:          t,
		Calories:      calories,
		Protein:       protein,
		Carbs:         calories * 0.5 / 4,
		Fat:           calories * 0.3 / 9,
		FirstLoggedAt: &ts,
		Items:         items,
	}
}

// Week builds a 7-day series ending on BaseTime with the given calories.
// Zero calories mark a day as not logged.
func Week(calories ...float64) []domain.DayTotal {
	out := make([]domain.DayTotal, 0, len(calories))
	start := BaseTime.AddDate(0, 0, -(len(calories) - 1))
	for i, c := range calories {
		out = append(out, domain.DayTotal{
			Date:     domain.FormatDate(start.AddDate(0, 0, i)),
			Logged:   c > 0,
			Calories: c,
			Protein:  c * 0.2 / 4,
			Carbs:    c * 0.5 / 4,
			Fat:      c * 0.3 / 9,
		})
	}
	return out
}

// NewAlert builds a deficiency check for fixtures.
func NewAlert(nutrientID, name string, severity domain.Severity, percent, tier int, foods ...string) domain.DeficiencyCheck {
	return domain.DeficiencyCheck{
		NutrientID:      nutrientID,
		NutrientName:    name,
		Unit:            "mg",
		AvgIntake:       float64(percent) / 100 * 18,
		RDATarget:       18,
		PercentOfRDA:    percent,
		Severity:        severity,
		Message:         name + " has averaged below its daily target this week.",
		FoodSuggestions: foods,
		Tier:            tier,
	}
}

// NewSnapshot builds a typical mid-afternoon snapshot: two meals logged,
// a full logged week, no alerts. Options are applied in order.
func NewSnapshot(opts ...SnapshotOption) *domain.DailyInsightData {
	d := &domain.DailyInsightData{
		Goal:         domain.GoalMaintain,
		DaysUsingApp: 30,
		Meals: []domain.Meal{
			MealAt(domain.MealBreakfast, 7, 30, 450, 25, "oatmeal", "blueberries", "coffee"),
			MealAt(domain.MealLunch, 12, 30, 650, 40, "chicken salad", "whole wheat bread", "apple"),
		},
		MealCount:       2,
		WeeklyTotals:    Week(1850, 1920, 2050, 1980, 2100, 1900, 1100),
		Avg7DayCalories: 1843,
		Avg7DayProtein:  105,
		Avg7DayWater:    2100,
		LoggingStreak:   12,
		CalorieStreak:   4,
	}
	At(BaseTime)(d)
	WithTargets(2000, 120, 250, 65)(d)
	WithToday(1100, 65, 125, 37)(d)
	WithFiber(14, 28)(d)
	WithWater(1200, 2500)(d)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ZeroSnapshot has every numeric field zero but keeps empty, non-nil collections.
func ZeroSnapshot() *domain.DailyInsightData {
	d := &domain.DailyInsightData{
		Meals:        []domain.Meal{},
		WeeklyTotals: []domain.DayTotal{},
		ActiveAlerts: []domain.DeficiencyCheck{},
	}
	At(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))(d)
	return d
}

// EmptySnapshot is the zero value: nil collections and no date.
func EmptySnapshot() *domain.DailyInsightData {
	return &domain.DailyInsightData{}
}

// Scenarios returns the named snapshots used by the voice-rule property tests.
func Scenarios() map[string]*domain.DailyInsightData {
	return map[string]*domain.DailyInsightData{
		"normal": NewSnapshot(),
		"low_protein": NewSnapshot(
			WithToday(1600, 30, 220, 55),
			WithMeals(
				MealAt(domain.MealBreakfast, 7, 0, 500, 5, "toast", "jam", "toast"),
				MealAt(domain.MealLunch, 12, 0, 600, 10, "pasta"),
				MealAt(domain.MealSnack, 15, 0, 500, 15, "crackers", "toast"),
			),
			WithHour(18),
			WithAlerts(NewAlert("iron", "Iron", domain.SeverityConcern, 25, 1, "spinach", "lentils", "beef", "tofu")),
		),
		"over_calorie": NewSnapshot(
			WithToday(2600, 140, 300, 100),
			WithHour(20),
			WithGoal(domain.GoalLose),
		),
		"zero_water": NewSnapshot(
			WithWater(0, 2500),
			WithHour(17),
		),
		"all_zero": ZeroSnapshot(),
	}
}

// NewFoodLog builds a food log row for repository tests.
func NewFoodLog(mealType domain.MealType, name string, at time.Time, calories, protein float64) *domain.FoodLog {
	return &domain.FoodLog{
		ID:       uuid.New().String(),
		LoggedAt: at,
		MealType: mealType,
		FoodName: name,
		Calories: calories,
		Protein:  protein,
		Carbs:    calories * 0.5 / 4,
		Fat:      calories * 0.3 / 9,
		Fiber:    3,
	}
}

// NewProfile builds a maintain-goal profile that started the given number of days before now.
func NewProfile(now time.Time, daysAgo int) *domain.Profile {
	return &domain.Profile{
		ID:            "default",
		Goal:          domain.GoalMaintain,
		CalorieTarget: 2000,
		ProteinTarget: 120,
		CarbsTarget:   250,
		FatTarget:     65,
		FiberTarget:   28,
		WaterTarget:   2500,
		StartedAt:     now.AddDate(0, 0, -daysAgo),
	}
}
