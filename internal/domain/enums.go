package domain

type GoalType string

const (
	GoalLose     GoalType = "lose"
	GoalMaintain GoalType = "maintain"
	GoalGain     GoalType = "gain"
)

// ValidGoalTypes is the canonical set of accepted goal strings.
var ValidGoalTypes = map[string]bool{
	"lose": true, "maintain": true, "gain": true,
}

type QuestionCategory string

const (
	CategoryMacros    QuestionCategory = "macros"
	CategoryCalories  QuestionCategory = "calories"
	CategoryMeals     QuestionCategory = "meals"
	CategoryHydration QuestionCategory = "hydration"
	CategoryTrends    QuestionCategory = "trends"
	CategoryNutrients QuestionCategory = "nutrients"
)

// AllCategories lists every question category in display order.
var AllCategories = []QuestionCategory{
	CategoryMacros, CategoryCalories, CategoryMeals,
	CategoryHydration, CategoryTrends, CategoryNutrients,
}

type QuestionID string

const (
	QuestionMacroOverview      QuestionID = "macro_overview"
	QuestionMacroRatio         QuestionID = "macro_ratio"
	QuestionProteinStatus      QuestionID = "protein_status"
	QuestionCaloriePacing      QuestionID = "calorie_pacing"
	QuestionRemainingBudget    QuestionID = "remaining_budget"
	QuestionCalorieAverage     QuestionID = "calorie_average"
	QuestionProteinPerMeal     QuestionID = "protein_per_meal"
	QuestionMealTiming         QuestionID = "meal_timing"
	QuestionMealVariety        QuestionID = "meal_variety"
	QuestionTrendDirection     QuestionID = "trend_direction"
	QuestionLoggingStreak      QuestionID = "logging_streak"
	QuestionWeeklySummary      QuestionID = "weekly_summary"
	QuestionGoalAlignment      QuestionID = "goal_alignment"
	QuestionHydrationPacing    QuestionID = "hydration_pacing"
	QuestionHydrationTrend     QuestionID = "hydration_trend"
	QuestionNutrientGaps       QuestionID = "nutrient_gaps"
	QuestionFiberCheck         QuestionID = "fiber_check"
	QuestionMicronutrientFocus QuestionID = "micronutrient_focus"
)

type CardStatus string

const (
	CardOnTrack CardStatus = "on_track"
	CardAhead   CardStatus = "ahead"
	CardBehind  CardStatus = "behind"
	CardNeutral CardStatus = "neutral"
)

type ResponseSource string

const (
	SourceLLM      ResponseSource = "llm"
	SourceFallback ResponseSource = "fallback"
)

type Severity string

const (
	SeverityNotice  Severity = "notice"
	SeverityWarning Severity = "warning"
	SeverityConcern Severity = "concern"
)

// SeverityRank returns a sort rank (lower = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityConcern:
		return 0
	case SeverityWarning:
		return 1
	case SeverityNotice:
		return 2
	default:
		return 3
	}
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// ValidMealTypes is the canonical set of accepted meal type strings.
var ValidMealTypes = map[string]bool{
	"breakfast": true, "lunch": true, "dinner": true, "snack": true,
}
