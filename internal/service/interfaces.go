package service

import (
	"errors"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/llm"
	"github.com/alexanderramin/nutrimind/internal/questions"
)

var (
	// ErrInvalidInput wraps every rejected argument.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsightsDisabled is returned by Digest while the legacy insights flag is off.
	ErrInsightsDisabled = errors.New("insights are disabled")
	// ErrNoModel is returned by model operations when no provider is wired.
	ErrNoModel = errors.New("no model provider configured")
)

// SuggestionLimit is how many questions Today and Digest surface.
const SuggestionLimit = 3

// TodayView is the home screen: headline, top questions and alerts.
type TodayView struct {
	Date        string                     `json:"date"`
	Headline    *domain.WidgetHeadlineData `json:"headline"`
	Suggestions []QuestionView             `json:"suggestions"`
	Alerts      []domain.DeficiencyCheck   `json:"alerts"`
	Snapshot    *domain.DailyInsightData   `json:"snapshot"`
	RefreshedAt time.Time                  `json:"refreshedAt"`
}

// QuestionView is one catalog entry scored against the current snapshot.
type QuestionView struct {
	ID             domain.QuestionID       `json:"id"`
	Category       domain.QuestionCategory `json:"category"`
	Text           string                  `json:"text"`
	Icon           string                  `json:"icon"`
	Available      bool                    `json:"available"`
	RelevanceScore float64                 `json:"relevanceScore"`
}

func newQuestionView(s questions.ScoredQuestion) QuestionView {
	return QuestionView{
		ID:             s.Definition.ID,
		Category:       s.Definition.Category,
		Text:           s.Definition.Text,
		Icon:           s.Definition.Icon,
		Available:      s.Available,
		RelevanceScore: s.RelevanceScore,
	}
}

// FoodItem is one row of a logged meal.
type FoodItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// GoalUpdate changes the goal and any non-zero target.
type GoalUpdate struct {
	Goal          domain.GoalType `json:"goal"`
	CalorieTarget float64         `json:"calorieTarget"`
	ProteinTarget float64         `json:"proteinTarget"`
	CarbsTarget   float64         `json:"carbsTarget"`
	FatTarget     float64         `json:"fatTarget"`
	FiberTarget   float64         `json:"fiberTarget"`
	WaterTarget   float64         `json:"waterTarget"`
}

// LegacyInsightsView is the digest list with its flag and transient status.
type LegacyInsightsView struct {
	Enabled    bool                   `json:"enabled"`
	Generating bool                   `json:"generating"`
	Status     string                 `json:"status,omitempty"`
	LastError  string                 `json:"lastError,omitempty"`
	Insights   []domain.LegacyInsight `json:"insights"`
}

// ModelView reports the model runtime state.
type ModelView struct {
	Model        string           `json:"model"`
	Status       llm.ModelStatus  `json:"status"`
	Capabilities llm.Capabilities `json:"capabilities"`
	Progress     llm.Progress     `json:"progress"`
	LastError    string           `json:"lastError,omitempty"`
	Narration    bool             `json:"narration"`
}
