package domain

import (
	"math"
	"sort"
	"time"
)

// DateLayout is the calendar-day format used for cache keys and weekly totals.
const DateLayout = "2006-01-02"

// Waking window used for day progress.
const (
	DayStartHour = 6
	DayEndHour   = 22
)

// Meal is one meal slot of the day with its summed macros.
type Meal struct {
	Type          MealType   `json:"type"`
	Calories      float64    `json:"calories"`
	Protein       float64    `json:"protein"`
	Carbs         float64    `json:"carbs"`
	Fat           float64    `json:"fat"`
	Fiber         float64    `json:"fiber"`
	FirstLoggedAt *time.Time `json:"firstLoggedAt,omitempty"`
	Items         []string   `json:"items"`
}

// DayTotal is one entry of the 7-day weekly series.
type DayTotal struct {
	Date     string  `json:"date"`
	Logged   bool    `json:"logged"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// DailyInsightData is an immutable point-in-time snapshot of the user's day.
// It is built once per refresh and read by every downstream component.
type DailyInsightData struct {
	Date string `json:"date"`

	TodayCalories float64 `json:"todayCalories"`
	TodayProtein  float64 `json:"todayProtein"`
	TodayCarbs    float64 `json:"todayCarbs"`
	TodayFat      float64 `json:"todayFat"`
	TodayFiber    float64 `json:"todayFiber"`
	TodayWater    float64 `json:"todayWater"`

	CalorieTarget float64 `json:"calorieTarget"`
	ProteinTarget float64 `json:"proteinTarget"`
	CarbsTarget   float64 `json:"carbsTarget"`
	FatTarget     float64 `json:"fatTarget"`
	FiberTarget   float64 `json:"fiberTarget"`
	WaterTarget   float64 `json:"waterTarget"`

	MealCount int    `json:"mealCount"`
	Meals     []Meal `json:"meals"`

	Avg7DayCalories float64 `json:"avg7DayCalories"`
	Avg7DayProtein  float64 `json:"avg7DayProtein"`
	Avg7DayWater    float64 `json:"avg7DayWater"`
	LoggingStreak   int     `json:"loggingStreak"`
	CalorieStreak   int     `json:"calorieStreak"`

	WeeklyTotals []DayTotal `json:"weeklyTotals"`

	Goal         GoalType `json:"goal"`
	DaysUsingApp int      `json:"daysUsingApp"`

	CaloriePercent int `json:"caloriePercent"`
	ProteinPercent int `json:"proteinPercent"`
	CarbsPercent   int `json:"carbsPercent"`
	FatPercent     int `json:"fatPercent"`
	FiberPercent   int `json:"fiberPercent"`
	WaterPercent   int `json:"waterPercent"`

	CurrentHour int     `json:"currentHour"`
	DayProgress float64 `json:"dayProgress"`

	ActiveAlerts []DeficiencyCheck `json:"activeAlerts"`

	CollectedAt time.Time `json:"collectedAt"`
}

// RemainingCalories returns target minus today's intake (may be negative).
func (d *DailyInsightData) RemainingCalories() float64 {
	return d.CalorieTarget - d.TodayCalories
}

// LoggedDays returns the logged entries of the weekly series, ascending by date.
func (d *DailyInsightData) LoggedDays() []DayTotal {
	var out []DayTotal
	for _, t := range d.WeeklyTotals {
		if t.Logged {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// TimedMeals returns meals that carry a timestamp, sorted by first-log time.
func (d *DailyInsightData) TimedMeals() []Meal {
	var out []Meal
	for _, m := range d.Meals {
		if m.FirstLoggedAt != nil {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FirstLoggedAt.Before(*out[j].FirstLoggedAt)
	})
	return out
}

// DayProgress maps a wall-clock time onto the fixed 06:00-22:00 waking window.
func DayProgress(t time.Time) float64 {
	hours := float64(t.Hour()) + float64(t.Minute())/60
	p := (hours - DayStartHour) / (DayEndHour - DayStartHour)
	return math.Max(0, math.Min(1, p))
}

// Percent returns value as a rounded percentage of target, 0 when target <= 0.
func Percent(value, target float64) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(value / target * 100))
}

// FormatDate returns the calendar-day key for t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
