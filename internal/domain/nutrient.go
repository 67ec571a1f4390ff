package domain

import "time"

// DeficiencyCheck is one nutrient-gap alert computed from 7-day history.
type DeficiencyCheck struct {
	NutrientID      string   `json:"nutrientId"`
	NutrientName    string   `json:"nutrientName"`
	Unit            string   `json:"unit"`
	AvgIntake       float64  `json:"avgIntake"`
	RDATarget       float64  `json:"rdaTarget"`
	PercentOfRDA    int      `json:"percentOfRda"`
	Severity        Severity `json:"severity"`
	Message         string   `json:"message"`
	FoodSuggestions []string `json:"foodSuggestions"`
	Tier            int      `json:"tier"`
}

// AlertDismissal suppresses one nutrient/severity alert until ExpiresAt.
type AlertDismissal struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	NutrientID  string    `json:"nutrientId"`
	Severity    Severity  `json:"severity"`
	DismissedAt time.Time `json:"dismissedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// DismissalKey builds the composite key "nutrientId_severity".
func DismissalKey(nutrientID string, severity Severity) string {
	return nutrientID + "_" + string(severity)
}

// Active reports whether the dismissal still suppresses its alert at now.
// The expiry instant itself counts as expired.
func (d AlertDismissal) Active(now time.Time) bool {
	return now.Before(d.ExpiresAt)
}

// NutrientIntake is one day's recorded amount for a nutrient.
type NutrientIntake struct {
	NutrientID string
	Date       string
	Amount     float64
}

// FoodLog is one logged food entry.
type FoodLog struct {
	ID       string
	LoggedAt time.Time
	MealType MealType
	FoodName string
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
}

// WaterLog is one logged drink in millilitres.
type WaterLog struct {
	ID       string
	LoggedAt time.Time
	AmountMl float64
}

// NutrientLog is one logged micronutrient amount for a calendar day.
type NutrientLog struct {
	ID         string
	Date       string
	NutrientID string
	Amount     float64
	CreatedAt  time.Time
}

// Profile holds the user's targets and goal.
type Profile struct {
	ID            string
	Goal          GoalType
	CalorieTarget float64
	ProteinTarget float64
	CarbsTarget   float64
	FatTarget     float64
	FiberTarget   float64
	WaterTarget   float64
	StartedAt     time.Time
}
