package domain

import (
	"math"
	"strings"
)

// Pace classifies intake against the expected share of the waking day.
type Pace string

const (
	PaceAhead Pace = "ahead"
	PaceOn    Pace = "on_pace"
	PaceBelow Pace = "below"
)

// PaceThreshold is the deviation in percentage points that separates
// on-pace from ahead/below.
const PaceThreshold = 15

// PaceResult holds the expected percentage and the deviation from it.
type PaceResult struct {
	Expected  int
	Deviation int
	Pace      Pace
}

// ComputePace compares actual percent against dayProgress*100.
func ComputePace(percent int, dayProgress float64) PaceResult {
	expected := int(math.Round(dayProgress * 100))
	dev := percent - expected
	r := PaceResult{Expected: expected, Deviation: dev, Pace: PaceOn}
	switch {
	case dev > PaceThreshold:
		r.Pace = PaceAhead
	case dev < -PaceThreshold:
		r.Pace = PaceBelow
	}
	return r
}

// MacroShares is the calorie split across macros, in percent.
type MacroShares struct {
	ProteinCal float64
	CarbsCal   float64
	FatCal     float64
	Total      float64
	Protein    float64
	Carbs      float64
	Fat        float64
}

// Balanced reports protein share within [20,35] and fat share at most 40.
func (s MacroShares) Balanced() bool {
	return s.Protein >= 20 && s.Protein <= 35 && s.Fat <= 40
}

// ComputeMacroShares converts grams to calories (4/4/9) over max(1, total).
func ComputeMacroShares(protein, carbs, fat float64) MacroShares {
	s := MacroShares{
		ProteinCal: protein * 4,
		CarbsCal:   carbs * 4,
		FatCal:     fat * 9,
	}
	s.Total = s.ProteinCal + s.CarbsCal + s.FatCal
	denom := math.Max(1, s.Total)
	s.Protein = s.ProteinCal / denom * 100
	s.Carbs = s.CarbsCal / denom * 100
	s.Fat = s.FatCal / denom * 100
	return s
}

// LowMealProtein is the per-meal protein floor in grams.
const LowMealProtein = 20

// ProteinSpread summarizes protein distribution across meals.
type ProteinSpread struct {
	Meals    int
	Min      float64
	Max      float64
	Uneven   bool
	LowMeals []MealType
}

// ComputeProteinSpread flags uneven distribution (max > 3*min across 2+ meals)
// and any meal under LowMealProtein grams.
func ComputeProteinSpread(meals []Meal) ProteinSpread {
	s := ProteinSpread{Meals: len(meals)}
	for i, m := range meals {
		if i == 0 || m.Protein < s.Min {
			s.Min = m.Protein
		}
		if i == 0 || m.Protein > s.Max {
			s.Max = m.Protein
		}
		if m.Protein < LowMealProtein {
			s.LowMeals = append(s.LowMeals, m.Type)
		}
	}
	s.Uneven = len(meals) >= 2 && s.Max > 3*s.Min
	return s
}

// LongGapHours is the gap between meals that is worth pointing out.
const LongGapHours = 6

// MealGap is the time between two consecutive meals.
type MealGap struct {
	From  MealType
	To    MealType
	Hours float64
}

// ComputeMealGaps returns consecutive gaps between timestamped meals.
func ComputeMealGaps(d *DailyInsightData) []MealGap {
	timed := d.TimedMeals()
	var gaps []MealGap
	for i := 1; i < len(timed); i++ {
		h := timed[i].FirstLoggedAt.Sub(*timed[i-1].FirstLoggedAt).Hours()
		gaps = append(gaps, MealGap{From: timed[i-1].Type, To: timed[i].Type, Hours: h})
	}
	return gaps
}

// LongestGap returns the largest gap, or a zero gap when none exist.
func LongestGap(gaps []MealGap) MealGap {
	var best MealGap
	for _, g := range gaps {
		if g.Hours > best.Hours {
			best = g
		}
	}
	return best
}

// Variety counts logged food items by case-insensitive name.
type Variety struct {
	Total      int
	Distinct   int
	Repeated   int
	MostCommon string
	Repetitive bool
}

// ComputeVariety flags repetition when repeated items exceed half of all items.
func ComputeVariety(meals []Meal) Variety {
	counts := map[string]int{}
	var order []string
	v := Variety{}
	for _, m := range meals {
		for _, item := range m.Items {
			name := strings.ToLower(strings.TrimSpace(item))
			if name == "" {
				continue
			}
			v.Total++
			if counts[name] == 0 {
				order = append(order, name)
			}
			counts[name]++
		}
	}
	v.Distinct = len(order)
	v.Repeated = v.Total - v.Distinct
	best := 0
	for _, name := range order {
		if counts[name] > best {
			best = counts[name]
			v.MostCommon = name
		}
	}
	v.Repetitive = v.Total > 0 && v.Repeated*2 > v.Total
	return v
}

// TrendDirection is the direction of the calorie trend over the week.
type TrendDirection string

const (
	TrendUp     TrendDirection = "upward"
	TrendDown   TrendDirection = "downward"
	TrendSteady TrendDirection = "steady"
)

// Trend thresholds.
const (
	TrendMinDays   = 5
	TrendWindow    = 3
	TrendSteadyPct = 5.0
)

// Trend compares the earliest and most recent logged days.
type Trend struct {
	OK        bool
	Days      int
	EarlyAvg  float64
	RecentAvg float64
	ChangePct float64
	Direction TrendDirection
}

// ComputeTrend needs at least TrendMinDays logged days.
func ComputeTrend(d *DailyInsightData) Trend {
	logged := d.LoggedDays()
	t := Trend{Days: len(logged), Direction: TrendSteady}
	if len(logged) < TrendMinDays {
		return t
	}
	t.OK = true
	for _, day := range logged[:TrendWindow] {
		t.EarlyAvg += day.Calories
	}
	for _, day := range logged[len(logged)-TrendWindow:] {
		t.RecentAvg += day.Calories
	}
	t.EarlyAvg /= TrendWindow
	t.RecentAvg /= TrendWindow
	t.ChangePct = (t.RecentAvg - t.EarlyAvg) / math.Max(1, t.EarlyAvg) * 100
	switch {
	case t.ChangePct > TrendSteadyPct:
		t.Direction = TrendUp
	case t.ChangePct < -TrendSteadyPct:
		t.Direction = TrendDown
	}
	return t
}

// GoalAligned reports whether a direction matches the user's goal.
func GoalAligned(goal GoalType, dir TrendDirection) bool {
	switch goal {
	case GoalLose:
		return dir != TrendUp
	case GoalGain:
		return dir != TrendDown
	default:
		return dir == TrendSteady
	}
}

// EstimateRemainingMeals guesses how many meals are left from hour-of-day
// buckets. It is 0 whenever the calorie target has been reached.
func EstimateRemainingMeals(hour, mealCount, caloriePercent int) int {
	if caloriePercent >= 100 {
		return 0
	}
	switch {
	case hour >= 21:
		return 0
	case hour >= 18:
		return 1
	case hour >= 12:
		return max(1, 3-mealCount)
	default:
		return max(1, 4-mealCount)
	}
}

// AverageDirection classifies the 7-day average against the calorie target:
// more than 5% under is downward, more than 5% over is upward.
func AverageDirection(d *DailyInsightData) TrendDirection {
	if d.CalorieTarget <= 0 {
		return TrendSteady
	}
	diff := (d.Avg7DayCalories - d.CalorieTarget) / d.CalorieTarget * 100
	switch {
	case diff > TrendSteadyPct:
		return TrendUp
	case diff < -TrendSteadyPct:
		return TrendDown
	default:
		return TrendSteady
	}
}
