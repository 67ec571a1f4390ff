package domain

import "time"

// DataCard is one UI card produced by an analyzer.
type DataCard struct {
	Label    string     `json:"label"`
	Value    string     `json:"value"`
	SubValue string     `json:"subValue,omitempty"`
	Percent  *int       `json:"percent,omitempty"`
	Status   CardStatus `json:"status"`
}

// QuestionAnalysis is the deterministic output of one analyzer.
type QuestionAnalysis struct {
	QuestionID   QuestionID `json:"questionId"`
	DataBlock    string     `json:"dataBlock"`
	FallbackText string     `json:"fallbackText"`
	DataCards    []DataCard `json:"dataCards"`
	ComputedAt   time.Time  `json:"computedAt"`
}

// QuestionScore is the persisted form of a scored question.
type QuestionScore struct {
	QuestionID     QuestionID       `json:"questionId"`
	Category       QuestionCategory `json:"category"`
	Available      bool             `json:"available"`
	RelevanceScore float64          `json:"relevanceScore"`
}

// DailyInsightResponse is one narrative answer cached per question.
type DailyInsightResponse struct {
	QuestionID  QuestionID     `json:"questionId"`
	Text        string         `json:"text"`
	Icon        string         `json:"icon"`
	Source      ResponseSource `json:"source"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Date        string         `json:"date"`
	Issues      []string       `json:"issues,omitempty"`
}

// WidgetHeadlineData is the single one-line headline for the day.
type WidgetHeadlineData struct {
	Text       string    `json:"text"`
	Icon       string    `json:"icon"`
	Priority   int       `json:"priority"`
	ComputedAt time.Time `json:"computedAt"`
}

// DailyInsightCache is the persisted per-day cache of snapshot, scores and responses.
type DailyInsightCache struct {
	Date           string                              `json:"date"`
	Headline       *WidgetHeadlineData                 `json:"headline,omitempty"`
	Data           *DailyInsightData                   `json:"data,omitempty"`
	Scores         []QuestionScore                     `json:"scores"`
	Responses      map[QuestionID]DailyInsightResponse `json:"responses"`
	LastDataUpdate time.Time                           `json:"lastDataUpdate"`
}

// LegacyInsight is one entry of the digest-style insights list.
type LegacyInsight struct {
	ID         string           `json:"id"`
	QuestionID QuestionID       `json:"questionId"`
	Category   QuestionCategory `json:"category"`
	Text       string           `json:"text"`
	Icon       string           `json:"icon"`
	Source     ResponseSource   `json:"source"`
	CreatedAt  time.Time        `json:"createdAt"`
}
