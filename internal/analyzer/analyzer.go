// Package analyzer turns a daily snapshot into per-question structured
// analyses: a data block for model grounding, a complete fallback
// narrative, and UI data cards.
package analyzer

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

// ErrUnknownQuestion indicates a question id that has no analyzer.
var ErrUnknownQuestion = errors.New("unknown question")

// result is what each analyzer builds before Analyze stamps it.
type result struct {
	block    []string
	fallback string
	cards    []domain.DataCard
}

func (r *result) line(label, format string, args ...any) {
	r.block = append(r.block, label+": "+fmt.Sprintf(format, args...))
}

func (r *result) card(c domain.DataCard) {
	r.cards = append(r.cards, c)
}

type analyzerFunc func(d *domain.DailyInsightData) result

var analyzers = map[domain.QuestionID]analyzerFunc{
	domain.QuestionMacroOverview:      macroOverview,
	domain.QuestionMacroRatio:         macroRatio,
	domain.QuestionProteinStatus:      proteinStatus,
	domain.QuestionCaloriePacing:      caloriePacing,
	domain.QuestionRemainingBudget:    remainingBudget,
	domain.QuestionCalorieAverage:     calorieAverage,
	domain.QuestionProteinPerMeal:     proteinPerMeal,
	domain.QuestionMealTiming:         mealTiming,
	domain.QuestionMealVariety:        mealVariety,
	domain.QuestionTrendDirection:     trendDirection,
	domain.QuestionLoggingStreak:      loggingStreak,
	domain.QuestionWeeklySummary:      weeklySummary,
	domain.QuestionGoalAlignment:      goalAlignment,
	domain.QuestionHydrationPacing:    hydrationPacing,
	domain.QuestionHydrationTrend:     hydrationTrend,
	domain.QuestionNutrientGaps:       nutrientGaps,
	domain.QuestionFiberCheck:         fiberCheck,
	domain.QuestionMicronutrientFocus: micronutrientFocus,
}

// Has reports whether id has an analyzer.
func Has(id domain.QuestionID) bool {
	_, ok := analyzers[id]
	return ok
}

// Analyze runs the analyzer for id against d. A nil snapshot is analyzed
// as an empty one. The only error is ErrUnknownQuestion.
func Analyze(id domain.QuestionID, d *domain.DailyInsightData, now time.Time) (domain.QuestionAnalysis, error) {
	fn, ok := analyzers[id]
	if !ok {
		return domain.QuestionAnalysis{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}
	if d == nil {
		d = &domain.DailyInsightData{}
	}
	r := fn(d)

	a := domain.QuestionAnalysis{
		QuestionID:   id,
		DataBlock:    strings.Join(r.block, "\n"),
		FallbackText: r.fallback,
		DataCards:    r.cards,
		ComputedAt:   now,
	}
	if a.DataBlock == "" {
		a.DataBlock = "No data logged yet today."
	}
	if a.FallbackText == "" {
		a.FallbackText = "Log a meal to see this insight."
	}
	if len(a.DataCards) == 0 {
		a.DataCards = []domain.DataCard{{Label: "Status", Value: "No data yet", Status: domain.CardNeutral}}
	}
	return a, nil
}

func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return fmt.Sprintf("%.0f", v)
}

func one(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func signed(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}

func pct(p int) *int {
	return &p
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func mealLabel(t domain.MealType) string {
	s := string(t)
	if s == "" {
		return "Meal"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func mealName(t domain.MealType) string {
	if t == "" {
		return "one meal"
	}
	return string(t)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// paceStatus maps a pace onto a card status.
func paceStatus(p domain.Pace) domain.CardStatus {
	switch p {
	case domain.PaceAhead:
		return domain.CardAhead
	case domain.PaceBelow:
		return domain.CardBehind
	default:
		return domain.CardOnTrack
	}
}

// targetStatus rates a percent of target: over 110 ahead, 80+ on track.
func targetStatus(percent int, target float64) domain.CardStatus {
	switch {
	case target <= 0:
		return domain.CardNeutral
	case percent > 110:
		return domain.CardAhead
	case percent >= 80:
		return domain.CardOnTrack
	default:
		return domain.CardBehind
	}
}

func goalPhrase(g domain.GoalType) string {
	switch g {
	case domain.GoalLose:
		return "lose weight"
	case domain.GoalGain:
		return "gain weight"
	default:
		return "maintain your weight"
	}
}

func goalName(g domain.GoalType) string {
	if g == "" {
		return string(domain.GoalMaintain)
	}
	return string(g)
}

// foodList joins up to n suggestions as "a", "a and b".
func foodList(foods []string, n int) string {
	if len(foods) > n {
		foods = foods[:n]
	}
	switch len(foods) {
	case 0:
		return ""
	case 1:
		return foods[0]
	default:
		return strings.Join(foods[:len(foods)-1], ", ") + " and " + foods[len(foods)-1]
	}
}

func topAlert(d *domain.DailyInsightData) *domain.DeficiencyCheck {
	if len(d.ActiveAlerts) == 0 {
		return nil
	}
	return &d.ActiveAlerts[0]
}
