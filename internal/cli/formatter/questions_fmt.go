package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nutrimind/internal/service"
)

// FormatQuestions renders the full catalog with availability and score.
func FormatQuestions(qs []service.QuestionView) string {
	rows := make([][]string, 0, len(qs))
	for _, q := range qs {
		score := Dim("--")
		text := Dim(q.Text)
		if q.Available {
			score = scoreStyle(q.RelevanceScore)
			text = StyleFg.Render(q.Text)
		}
		rows = append(rows, []string{q.Icon, string(q.ID), text, StylePurple.Render(string(q.Category)), score})
	}
	var b strings.Builder
	b.WriteString(RenderTable([]string{"", "ID", "QUESTION", "CATEGORY", "SCORE"}, rows))
	b.WriteString("\n" + Dim("nutrimind ask <id> for an answer") + "\n")
	return b.String()
}

func scoreStyle(score float64) string {
	s := fmt.Sprintf("%3.0f", score)
	switch {
	case score >= 70:
		return StyleGreen.Render(s)
	case score >= 40:
		return StyleYellow.Render(s)
	default:
		return StyleFg.Render(s)
	}
}
