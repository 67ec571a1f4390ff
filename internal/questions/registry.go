package questions

import (
	"math"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

// Definition is one entry of the static question catalog.
type Definition struct {
	ID        domain.QuestionID
	Category  domain.QuestionCategory
	Text      string
	Icon      string
	Available func(d *domain.DailyInsightData) bool
	Relevance func(d *domain.DailyInsightData) float64
}

// factor adds a bonus to the base score when its condition holds.
type factor func(d *domain.DailyInsightData) float64

func bonus(points float64, cond func(d *domain.DailyInsightData) bool) factor {
	return func(d *domain.DailyInsightData) float64 {
		if cond(d) {
			return points
		}
		return 0
	}
}

// relevance builds an additive score: base plus every matching factor,
// clamped to [0,100].
func relevance(base float64, factors ...factor) func(d *domain.DailyInsightData) float64 {
	return func(d *domain.DailyInsightData) float64 {
		score := base
		for _, f := range factors {
			score += f(d)
		}
		return math.Max(0, math.Min(100, score))
	}
}

func afterHour(h int) func(d *domain.DailyInsightData) bool {
	return func(d *domain.DailyInsightData) bool { return d.CurrentHour >= h }
}

func hasMeals(n int) func(d *domain.DailyInsightData) bool {
	return func(d *domain.DailyInsightData) bool { return d.MealCount >= n }
}

func loggedDays(d *domain.DailyInsightData) int {
	return len(d.LoggedDays())
}

func macroSpread(d *domain.DailyInsightData) int {
	ps := []int{d.ProteinPercent, d.CarbsPercent, d.FatPercent}
	lo, hi := ps[0], ps[0]
	for _, p := range ps[1:] {
		lo = min(lo, p)
		hi = max(hi, p)
	}
	return hi - lo
}

func hasConcern(d *domain.DailyInsightData) bool {
	for _, a := range d.ActiveAlerts {
		if a.Severity == domain.SeverityConcern {
			return true
		}
	}
	return false
}

// FiberAlert returns the active fiber alert, if any.
func FiberAlert(d *domain.DailyInsightData) *domain.DeficiencyCheck {
	for i := range d.ActiveAlerts {
		if d.ActiveAlerts[i].NutrientID == "fiber" {
			return &d.ActiveAlerts[i]
		}
	}
	return nil
}

var catalog = []Definition{
	{
		ID:        domain.QuestionMacroOverview,
		Category:  domain.CategoryMacros,
		Text:      "How are my macros looking today?",
		Icon:      "📊",
		Available: hasMeals(1),
		Relevance: relevance(40,
			bonus(25, func(d *domain.DailyInsightData) bool { return macroSpread(d) > 15 }),
			bonus(15, func(d *domain.DailyInsightData) bool { return d.CaloriePercent > 110 }),
			bonus(10, afterHour(17)),
		),
	},
	{
		ID:       domain.QuestionMacroRatio,
		Category: domain.CategoryMacros,
		Text:     "What does my macro split look like?",
		Icon:     "🥧",
		Available: func(d *domain.DailyInsightData) bool {
			return d.TodayCalories > 0
		},
		Relevance: relevance(30,
			bonus(20, func(d *domain.DailyInsightData) bool {
				s := domain.ComputeMacroShares(d.TodayProtein, d.TodayCarbs, d.TodayFat)
				return s.Protein < 20 || s.Protein > 35
			}),
			bonus(20, func(d *domain.DailyInsightData) bool {
				return domain.ComputeMacroShares(d.TodayProtein, d.TodayCarbs, d.TodayFat).Fat > 40
			}),
		),
	},
	{
		ID:       domain.QuestionProteinStatus,
		Category: domain.CategoryMacros,
		Text:     "Am I getting enough protein?",
		Icon:     "💪",
		Available: func(d *domain.DailyInsightData) bool {
			return d.MealCount >= 1 && d.ProteinTarget > 0
		},
		Relevance: relevance(35,
			bonus(30, func(d *domain.DailyInsightData) bool { return d.ProteinPercent < d.CaloriePercent-15 }),
			bonus(20, func(d *domain.DailyInsightData) bool { return d.CurrentHour >= 17 && d.ProteinPercent < 70 }),
		),
	},
	{
		ID:       domain.QuestionCaloriePacing,
		Category: domain.CategoryCalories,
		Text:     "Am I on pace with my calories?",
		Icon:     "🕒",
		Available: func(d *domain.DailyInsightData) bool {
			return d.MealCount >= 1 && d.CalorieTarget > 0
		},
		Relevance: relevance(40,
			bonus(25, func(d *domain.DailyInsightData) bool {
				p := domain.ComputePace(d.CaloriePercent, d.DayProgress)
				return p.Pace != domain.PaceOn
			}),
			bonus(10, afterHour(12)),
		),
	},
	{
		ID:       domain.QuestionRemainingBudget,
		Category: domain.CategoryCalories,
		Text:     "What can I still eat today?",
		Icon:     "🍴",
		Available: func(d *domain.DailyInsightData) bool {
			return d.RemainingCalories() > 200
		},
		Relevance: relevance(35,
			bonus(20, afterHour(17)),
			bonus(15, func(d *domain.DailyInsightData) bool { return d.RemainingCalories() > 800 }),
		),
	},
	{
		ID:       domain.QuestionCalorieAverage,
		Category: domain.CategoryCalories,
		Text:     "How does today compare to my usual?",
		Icon:     "📅",
		Available: func(d *domain.DailyInsightData) bool {
			return loggedDays(d) >= 3
		},
		Relevance: relevance(25,
			bonus(20, func(d *domain.DailyInsightData) bool {
				diff := math.Abs(d.TodayCalories-d.Avg7DayCalories) / math.Max(1, d.Avg7DayCalories)
				return diff > 0.25 && d.CurrentHour >= 17
			}),
		),
	},
	{
		ID:        domain.QuestionProteinPerMeal,
		Category:  domain.CategoryMeals,
		Text:      "How is my protein spread across meals?",
		Icon:      "🥚",
		Available: hasMeals(2),
		Relevance: relevance(30,
			bonus(25, func(d *domain.DailyInsightData) bool { return domain.ComputeProteinSpread(d.Meals).Uneven }),
			bonus(15, func(d *domain.DailyInsightData) bool {
				return len(domain.ComputeProteinSpread(d.Meals).LowMeals) > 0
			}),
		),
	},
	{
		ID:       domain.QuestionMealTiming,
		Category: domain.CategoryMeals,
		Text:     "How is my meal timing?",
		Icon:     "🕐",
		Available: func(d *domain.DailyInsightData) bool {
			return len(d.TimedMeals()) >= 2
		},
		Relevance: relevance(25,
			bonus(30, func(d *domain.DailyInsightData) bool {
				return domain.LongestGap(domain.ComputeMealGaps(d)).Hours > domain.LongGapHours
			}),
		),
	},
	{
		ID:       domain.QuestionMealVariety,
		Category: domain.CategoryMeals,
		Text:     "Am I eating a good variety?",
		Icon:     "🥗",
		Available: func(d *domain.DailyInsightData) bool {
			return domain.ComputeVariety(d.Meals).Distinct >= 3
		},
		Relevance: relevance(20,
			bonus(25, func(d *domain.DailyInsightData) bool { return domain.ComputeVariety(d.Meals).Repetitive }),
		),
	},
	{
		ID:       domain.QuestionTrendDirection,
		Category: domain.CategoryTrends,
		Text:     "Which way is my intake trending?",
		Icon:     "📈",
		Available: func(d *domain.DailyInsightData) bool {
			return loggedDays(d) >= domain.TrendMinDays
		},
		Relevance: relevance(30,
			bonus(20, func(d *domain.DailyInsightData) bool {
				return domain.ComputeTrend(d).Direction != domain.TrendSteady
			}),
			bonus(10, func(d *domain.DailyInsightData) bool {
				return !domain.GoalAligned(d.Goal, domain.ComputeTrend(d).Direction)
			}),
		),
	},
	{
		ID:       domain.QuestionLoggingStreak,
		Category: domain.CategoryTrends,
		Text:     "How is my logging streak going?",
		Icon:     "🔥",
		Available: func(d *domain.DailyInsightData) bool {
			return d.LoggingStreak >= 2
		},
		Relevance: relevance(20,
			bonus(25, func(d *domain.DailyInsightData) bool { return d.LoggingStreak >= 7 }),
			bonus(10, func(d *domain.DailyInsightData) bool { return d.LoggingStreak > 0 && d.LoggingStreak%7 == 0 }),
		),
	},
	{
		ID:       domain.QuestionWeeklySummary,
		Category: domain.CategoryTrends,
		Text:     "How did my week go?",
		Icon:     "📆",
		Available: func(d *domain.DailyInsightData) bool {
			return d.DaysUsingApp >= 7
		},
		Relevance: relevance(25,
			bonus(20, func(d *domain.DailyInsightData) bool {
				wd := d.CollectedAt.Weekday()
				return !d.CollectedAt.IsZero() && (wd == 0 || wd == 1)
			}),
			bonus(10, func(d *domain.DailyInsightData) bool { return d.CalorieStreak >= 3 }),
		),
	},
	{
		ID:       domain.QuestionGoalAlignment,
		Category: domain.CategoryTrends,
		Text:     "Is my eating lining up with my goal?",
		Icon:     "🎯",
		Available: func(d *domain.DailyInsightData) bool {
			return d.DaysUsingApp >= 3 && loggedDays(d) >= 3
		},
		Relevance: relevance(25,
			bonus(25, func(d *domain.DailyInsightData) bool {
				return !domain.GoalAligned(d.Goal, domain.AverageDirection(d))
			}),
		),
	},
	{
		ID:       domain.QuestionHydrationPacing,
		Category: domain.CategoryHydration,
		Text:     "Am I drinking enough water?",
		Icon:     "💧",
		Available: func(d *domain.DailyInsightData) bool {
			return d.WaterTarget > 0
		},
		Relevance: relevance(30,
			bonus(30, func(d *domain.DailyInsightData) bool {
				return domain.ComputePace(d.WaterPercent, d.DayProgress).Pace == domain.PaceBelow
			}),
			bonus(10, afterHour(13)),
		),
	},
	{
		ID:       domain.QuestionHydrationTrend,
		Category: domain.CategoryHydration,
		Text:     "How does my water compare to usual?",
		Icon:     "🚰",
		Available: func(d *domain.DailyInsightData) bool {
			return d.WaterTarget > 0 && d.Avg7DayWater > 0
		},
		Relevance: relevance(20,
			bonus(20, func(d *domain.DailyInsightData) bool {
				return d.TodayWater < 0.75*d.Avg7DayWater && d.CurrentHour >= 15
			}),
		),
	},
	{
		ID:       domain.QuestionNutrientGaps,
		Category: domain.CategoryNutrients,
		Text:     "Are there any nutrient gaps?",
		Icon:     "🧪",
		Available: func(d *domain.DailyInsightData) bool {
			return len(d.ActiveAlerts) > 0
		},
		Relevance: relevance(45,
			bonus(20, hasConcern),
			func(d *domain.DailyInsightData) float64 {
				if len(d.ActiveAlerts) <= 1 {
					return 0
				}
				return float64(10 * (len(d.ActiveAlerts) - 1))
			},
		),
	},
	{
		ID:       domain.QuestionFiberCheck,
		Category: domain.CategoryNutrients,
		Text:     "How is my fiber intake?",
		Icon:     "🌾",
		Available: func(d *domain.DailyInsightData) bool {
			return d.MealCount >= 1 && d.FiberTarget > 0
		},
		Relevance: relevance(25,
			bonus(30, func(d *domain.DailyInsightData) bool { return FiberAlert(d) != nil }),
			bonus(15, func(d *domain.DailyInsightData) bool { return d.FiberPercent < 50 && d.CurrentHour >= 17 }),
		),
	},
	{
		ID:       domain.QuestionMicronutrientFocus,
		Category: domain.CategoryNutrients,
		Text:     "Which nutrient should I focus on?",
		Icon:     "🥦",
		Available: func(d *domain.DailyInsightData) bool {
			return len(d.ActiveAlerts) > 0
		},
		Relevance: relevance(35,
			bonus(15, func(d *domain.DailyInsightData) bool {
				return len(d.ActiveAlerts) > 0 && d.ActiveAlerts[0].Tier == 1
			}),
		),
	},
}

var byID = func() map[domain.QuestionID]int {
	m := make(map[domain.QuestionID]int, len(catalog))
	for i, def := range catalog {
		m[def.ID] = i
	}
	return m
}()

// All returns the catalog in its canonical order.
func All() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the definition for id.
func Lookup(id domain.QuestionID) (Definition, bool) {
	i, ok := byID[id]
	if !ok {
		return Definition{}, false
	}
	return catalog[i], true
}

// Index returns the catalog position of id, or -1.
func Index(id domain.QuestionID) int {
	if i, ok := byID[id]; ok {
		return i
	}
	return -1
}
