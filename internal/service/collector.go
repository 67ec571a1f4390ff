package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/nutrimind/internal/deficiency"
	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/repository"
)

const (
	// WeekDays is the length of the weekly series and the alert window.
	WeekDays = 7
	// StreakLookbackDays bounds how far back streaks are counted.
	StreakLookbackDays = 120
)

// Collector builds DailyInsightData snapshots from the repositories.
type Collector struct {
	profiles   repository.ProfileRepo
	foods      repository.FoodLogRepo
	water      repository.WaterLogRepo
	nutrients  repository.NutrientLogRepo
	dismissals deficiency.Dismissals
}

// NewCollector wires a collector. dismissals may be nil.
func NewCollector(
	profiles repository.ProfileRepo,
	foods repository.FoodLogRepo,
	water repository.WaterLogRepo,
	nutrients repository.NutrientLogRepo,
	dismissals deficiency.Dismissals,
) *Collector {
	return &Collector{
		profiles:   profiles,
		foods:      foods,
		water:      water,
		nutrients:  nutrients,
		dismissals: dismissals,
	}
}

// Collect reads everything logged up to now and derives the snapshot.
func (c *Collector) Collect(ctx context.Context, now time.Time) (*domain.DailyInsightData, error) {
	profile, err := c.profiles.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	today := domain.FormatDate(now)
	weekStart := domain.FormatDate(now.AddDate(0, 0, -(WeekDays - 1)))
	lookbackStart := domain.FormatDate(now.AddDate(0, 0, -(StreakLookbackDays - 1)))

	logs, err := c.foods.ListByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("loading today's food logs: %w", err)
	}
	history, err := c.foods.DailyTotals(ctx, lookbackStart, today)
	if err != nil {
		return nil, fmt.Errorf("loading daily totals: %w", err)
	}
	waterByDay, err := c.water.DailyTotals(ctx, weekStart, today)
	if err != nil {
		return nil, fmt.Errorf("loading water totals: %w", err)
	}
	intakes, err := c.nutrients.DailyIntakes(ctx, weekStart, today)
	if err != nil {
		return nil, fmt.Errorf("loading nutrient intakes: %w", err)
	}

	byDate := make(map[string]domain.DayTotal, len(history))
	for _, t := range history {
		byDate[t.Date] = t
	}
	weekly := weeklySeries(now, byDate)

	d := &domain.DailyInsightData{
		Date:          today,
		CalorieTarget: profile.CalorieTarget,
		ProteinTarget: profile.ProteinTarget,
		CarbsTarget:   profile.CarbsTarget,
		FatTarget:     profile.FatTarget,
		FiberTarget:   profile.FiberTarget,
		WaterTarget:   profile.WaterTarget,
		Goal:          profile.Goal,
		TodayWater:    waterByDay[today],
		WeeklyTotals:  weekly,
		DaysUsingApp:  daysBetween(profile.StartedAt, now) + 1,
		CurrentHour:   now.Hour(),
		DayProgress:   domain.DayProgress(now),
		CollectedAt:   now,
	}

	d.Meals = groupMeals(logs)
	d.MealCount = len(d.Meals)
	for _, m := range d.Meals {
		d.TodayCalories += m.Calories
		d.TodayProtein += m.Protein
		d.TodayCarbs += m.Carbs
		d.TodayFat += m.Fat
		d.TodayFiber += m.Fiber
	}

	d.Avg7DayCalories, d.Avg7DayProtein = loggedAverages(weekly)
	d.Avg7DayWater = waterAverage(waterByDay)
	d.LoggingStreak = loggingStreak(now, byDate)
	d.CalorieStreak = calorieStreak(now, byDate, profile.CalorieTarget)

	d.CaloriePercent = domain.Percent(d.TodayCalories, d.CalorieTarget)
	d.ProteinPercent = domain.Percent(d.TodayProtein, d.ProteinTarget)
	d.CarbsPercent = domain.Percent(d.TodayCarbs, d.CarbsTarget)
	d.FatPercent = domain.Percent(d.TodayFat, d.FatTarget)
	d.FiberPercent = domain.Percent(d.TodayFiber, d.FiberTarget)
	d.WaterPercent = domain.Percent(d.TodayWater, d.WaterTarget)

	result := deficiency.Calculate(deficiency.Input{
		Now:              now,
		DaysUsingApp:     d.DaysUsingApp,
		DaysSinceLastLog: daysSinceLastLog(now, history),
		DaysWithData:     len(d.LoggedDays()),
		History:          withFoodFiber(intakes, weekly),
		Dismissals:       c.dismissals,
	})
	d.ActiveAlerts = result.Checks

	return d, nil
}

var mealOrder = []domain.MealType{
	domain.MealBreakfast, domain.MealLunch, domain.MealDinner, domain.MealSnack,
}

// groupMeals sums food rows per meal type. A meal's timestamp is its
// earliest row.
func groupMeals(logs []*domain.FoodLog) []domain.Meal {
	byType := map[domain.MealType]*domain.Meal{}
	for _, f := range logs {
		m := byType[f.MealType]
		if m == nil {
			m = &domain.Meal{Type: f.MealType, Items: []string{}}
			byType[f.MealType] = m
		}
		m.Calories += f.Calories
		m.Protein += f.Protein
		m.Carbs += f.Carbs
		m.Fat += f.Fat
		m.Fiber += f.Fiber
		m.Items = append(m.Items, f.FoodName)
		if m.FirstLoggedAt == nil || f.LoggedAt.Before(*m.FirstLoggedAt) {
			at := f.LoggedAt
			m.FirstLoggedAt = &at
		}
	}

	meals := make([]domain.Meal, 0, len(byType))
	for _, t := range mealOrder {
		if m, ok := byType[t]; ok {
			meals = append(meals, *m)
		}
	}
	return meals
}

// weeklySeries returns the 7 calendar days ending today, ascending.
func weeklySeries(now time.Time, byDate map[string]domain.DayTotal) []domain.DayTotal {
	out := make([]domain.DayTotal, 0, WeekDays)
	for i := WeekDays - 1; i >= 0; i-- {
		date := domain.FormatDate(now.AddDate(0, 0, -i))
		t, ok := byDate[date]
		if !ok {
			t = domain.DayTotal{Date: date}
		}
		out = append(out, t)
	}
	return out
}

func loggedAverages(weekly []domain.DayTotal) (calories, protein float64) {
	n := 0
	for _, t := range weekly {
		if !t.Logged {
			continue
		}
		n++
		calories += t.Calories
		protein += t.Protein
	}
	if n == 0 {
		return 0, 0
	}
	return calories / float64(n), protein / float64(n)
}

func waterAverage(byDay map[string]float64) float64 {
	var sum float64
	n := 0
	for _, ml := range byDay {
		if ml > 0 {
			sum += ml
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// loggingStreak counts consecutive logged days ending today, or ending
// yesterday when nothing is logged yet today.
func loggingStreak(now time.Time, byDate map[string]domain.DayTotal) int {
	start := 0
	if _, ok := byDate[domain.FormatDate(now)]; !ok {
		start = 1
	}
	streak := 0
	for i := start; i < StreakLookbackDays; i++ {
		if _, ok := byDate[domain.FormatDate(now.AddDate(0, 0, -i))]; !ok {
			break
		}
		streak++
	}
	return streak
}

// calorieStreak counts consecutive logged days within 90-110% of target,
// ending at the most recent logged day.
func calorieStreak(now time.Time, byDate map[string]domain.DayTotal, target float64) int {
	if target <= 0 {
		return 0
	}
	i := 0
	for ; i < StreakLookbackDays; i++ {
		if _, ok := byDate[domain.FormatDate(now.AddDate(0, 0, -i))]; ok {
			break
		}
	}
	streak := 0
	for ; i < StreakLookbackDays; i++ {
		t, ok := byDate[domain.FormatDate(now.AddDate(0, 0, -i))]
		if !ok {
			break
		}
		p := domain.Percent(t.Calories, target)
		if p < 90 || p > 110 {
			break
		}
		streak++
	}
	return streak
}

// daysSinceLastLog is 0 when today is logged. With no history it exceeds
// any gate.
func daysSinceLastLog(now time.Time, history []domain.DayTotal) int {
	if len(history) == 0 {
		return StreakLookbackDays
	}
	last, err := time.ParseInLocation(domain.DateLayout, history[len(history)-1].Date, now.Location())
	if err != nil {
		return StreakLookbackDays
	}
	return daysBetween(last, now)
}

// daysBetween counts calendar days from a to b in b's location, never negative.
func daysBetween(a, b time.Time) int {
	a = a.In(b.Location())
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	n := int(db.Sub(da).Hours() / 24)
	return max(0, n)
}

// withFoodFiber adds fiber from food rows to the manually logged intakes.
func withFoodFiber(intakes []domain.NutrientIntake, weekly []domain.DayTotal) []domain.NutrientIntake {
	out := make([]domain.NutrientIntake, 0, len(intakes)+len(weekly))
	out = append(out, intakes...)
	for _, t := range weekly {
		if t.Logged && t.Fiber > 0 {
			out = append(out, domain.NutrientIntake{NutrientID: "fiber", Date: t.Date, Amount: t.Fiber})
		}
	}
	return out
}
