package questions

import (
	"testing"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ShapeAndCoverage(t *testing.T) {
	all := All()
	require.Len(t, all, 18)

	seen := map[domain.QuestionID]bool{}
	categories := map[domain.QuestionCategory]bool{}
	for _, def := range all {
		assert.False(t, seen[def.ID], "duplicate id %s", def.ID)
		seen[def.ID] = true
		categories[def.Category] = true
		assert.NotEmpty(t, def.Text)
		assert.NotEmpty(t, def.Icon)
		assert.NotNil(t, def.Available)
		assert.NotNil(t, def.Relevance)
	}
	for _, c := range domain.AllCategories {
		assert.True(t, categories[c], "category %s has no questions", c)
	}
}

func TestLookup(t *testing.T) {
	def, ok := Lookup(domain.QuestionMealTiming)
	require.True(t, ok)
	assert.Equal(t, domain.CategoryMeals, def.Category)

	_, ok = Lookup("not_a_question")
	assert.False(t, ok)
	assert.Equal(t, -1, Index("not_a_question"))
}

func TestRemainingBudget_Availability(t *testing.T) {
	def, _ := Lookup(domain.QuestionRemainingBudget)

	tests := []struct {
		name  string
		today float64
		want  bool
	}{
		{"300 remaining", 1700, true},
		{"100 remaining", 1900, false},
		{"exactly 200 remaining", 1800, false},
		{"over target", 2300, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testutil.NewSnapshot(
				testutil.WithTargets(2000, 120, 250, 65),
				testutil.WithToday(tt.today, 80, 200, 60),
			)
			assert.Equal(t, tt.want, def.Available(d))
		})
	}
}

func TestAvailability_Gates(t *testing.T) {
	tests := []struct {
		name string
		id   domain.QuestionID
		snap *domain.DailyInsightData
		want bool
	}{
		{"macro overview needs a meal", domain.QuestionMacroOverview, testutil.NewSnapshot(testutil.WithMeals()), false},
		{"macro overview with meals", domain.QuestionMacroOverview, testutil.NewSnapshot(), true},
		{"protein per meal needs two meals", domain.QuestionProteinPerMeal,
			testutil.NewSnapshot(testutil.WithMeals(testutil.MealAt(domain.MealLunch, 12, 0, 500, 30))), false},
		{"meal timing needs timestamps", domain.QuestionMealTiming,
			testutil.NewSnapshot(testutil.WithMeals(domain.Meal{Type: domain.MealLunch}, domain.Meal{Type: domain.MealDinner})), false},
		{"variety needs three distinct foods", domain.QuestionMealVariety,
			testutil.NewSnapshot(testutil.WithMeals(
				testutil.MealAt(domain.MealLunch, 12, 0, 500, 30, "rice", "Rice"),
				testutil.MealAt(domain.MealDinner, 18, 0, 500, 30, "beans"),
			)), false},
		{"nutrient gaps need alerts", domain.QuestionNutrientGaps, testutil.NewSnapshot(), false},
		{"nutrient gaps with alert", domain.QuestionNutrientGaps,
			testutil.NewSnapshot(testutil.WithAlerts(testutil.NewAlert("iron", "Iron", domain.SeverityWarning, 40, 1))), true},
		{"weekly summary needs 7 days", domain.QuestionWeeklySummary, testutil.NewSnapshot(testutil.WithDaysUsingApp(6)), false},
		{"weekly summary at 7 days", domain.QuestionWeeklySummary, testutil.NewSnapshot(testutil.WithDaysUsingApp(7)), true},
		{"trend needs five logged days", domain.QuestionTrendDirection,
			testutil.NewSnapshot(testutil.WithWeekly(testutil.Week(0, 0, 0, 1800, 1900, 2000, 1500)...)), false},
		{"hydration needs a target", domain.QuestionHydrationPacing, testutil.NewSnapshot(testutil.WithWater(500, 0)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, def.Available(tt.snap))
		})
	}
}

func TestRelevance_AdditiveBonuses(t *testing.T) {
	def, _ := Lookup(domain.QuestionMacroOverview)

	base := testutil.NewSnapshot(
		testutil.WithToday(1000, 50, 125, 33),
		testutil.WithHour(12),
	)
	// protein 42%, carbs 50%, fat 51%: spread 9 -> no divergence bonus.
	assert.Equal(t, 40.0, def.Relevance(base))

	late := testutil.NewSnapshot(
		testutil.WithToday(1000, 50, 125, 33),
		testutil.WithHour(17),
	)
	assert.Equal(t, 50.0, def.Relevance(late))

	divergent := testutil.NewSnapshot(
		testutil.WithToday(1000, 20, 125, 33),
		testutil.WithHour(17),
	)
	assert.Equal(t, 75.0, def.Relevance(divergent))
}
