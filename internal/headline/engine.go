// Package headline picks the single best one-line widget headline for a
// snapshot from an ordered rule cascade. The first matching rule wins.
package headline

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

// Rule pairs a pure predicate with the headline it produces.
type Rule struct {
	Priority int
	Name     string
	Match    func(d *domain.DailyInsightData) bool
	Build    func(d *domain.DailyInsightData) (text, icon string)
}

var rules = []Rule{
	{
		Priority: 1,
		Name:     "no_meals",
		Match:    func(d *domain.DailyInsightData) bool { return d.MealCount == 0 },
		Build: func(d *domain.DailyInsightData) (string, string) {
			return "Log your first meal to start today's insights.", "🍽️"
		},
	},
	{
		Priority: 2,
		Name:     "minimal_data",
		Match:    func(d *domain.DailyInsightData) bool { return d.MealCount == 1 && d.TodayCalories < 500 },
		Build: func(d *domain.DailyInsightData) (string, string) {
			return "A good start. Log another meal for a fuller picture of your day.", "🌱"
		},
	},
	{
		Priority: 3,
		Name:     "nicely_paced",
		Match:    func(d *domain.DailyInsightData) bool { return d.CaloriePercent >= 90 && d.CaloriePercent <= 110 },
		Build: func(d *domain.DailyInsightData) (string, string) {
			return fmt.Sprintf("Nicely paced: %d%% of your calorie target.", d.CaloriePercent), "✅"
		},
	},
	{
		Priority: 4,
		Name:     "over_target",
		Match:    func(d *domain.DailyInsightData) bool { return d.CaloriePercent > 110 },
		Build: func(d *domain.DailyInsightData) (string, string) {
			return fmt.Sprintf("%s of %s kcal today. Tomorrow is a fresh start.",
				whole(d.TodayCalories), whole(d.CalorieTarget)), "📊"
		},
	},
	{
		Priority: 5,
		Name:     "protein_gap",
		Match:    func(d *domain.DailyInsightData) bool { return d.ProteinPercent < 60 && d.CaloriePercent >= 70 },
		Build: func(d *domain.DailyInsightData) (string, string) {
			left := math.Max(0, d.ProteinTarget-d.TodayProtein)
			return fmt.Sprintf("Protein is at %d%%. About %sg to go today.", d.ProteinPercent, whole(left)), "💪"
		},
	},
	{
		Priority: 6,
		Name:     "hydration",
		Match: func(d *domain.DailyInsightData) bool {
			return d.WaterTarget > 0 && d.WaterPercent < 50 && d.CurrentHour >= 13
		},
		Build: func(d *domain.DailyInsightData) (string, string) {
			return fmt.Sprintf("Water is at %d%% of your target. Time for a glass.", d.WaterPercent), "💧"
		},
	},
	{
		Priority: 7,
		Name:     "streak",
		Match:    func(d *domain.DailyInsightData) bool { return d.LoggingStreak >= 7 },
		Build: func(d *domain.DailyInsightData) (string, string) {
			return fmt.Sprintf("%d-day logging streak. Keep it going.", d.LoggingStreak), "🔥"
		},
	},
	{
		Priority: 8,
		Name:     "remaining",
		Match:    func(*domain.DailyInsightData) bool { return true },
		Build: func(d *domain.DailyInsightData) (string, string) {
			remaining := math.Max(0, d.RemainingCalories())
			meals := domain.EstimateRemainingMeals(d.CurrentHour, d.MealCount, d.CaloriePercent)
			switch meals {
			case 0:
				return fmt.Sprintf("%s kcal left for today.", whole(remaining)), "🍴"
			case 1:
				return fmt.Sprintf("%s kcal left, about 1 more meal.", whole(remaining)), "🍴"
			default:
				return fmt.Sprintf("%s kcal left, about %d more meals.", whole(remaining), meals), "🍴"
			}
		},
	},
}

// Rules returns the cascade in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Select evaluates the cascade top-down and returns the first match.
// A nil snapshot is treated as empty.
func Select(d *domain.DailyInsightData, now time.Time) domain.WidgetHeadlineData {
	if d == nil {
		d = &domain.DailyInsightData{}
	}
	for _, r := range rules {
		if !r.Match(d) {
			continue
		}
		text, icon := r.Build(d)
		return domain.WidgetHeadlineData{Text: text, Icon: icon, Priority: r.Priority, ComputedAt: now}
	}
	// unreachable: the last rule always matches
	return domain.WidgetHeadlineData{ComputedAt: now}
}

func whole(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
