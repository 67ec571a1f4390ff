package questions

import (
	"sort"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

// ScoredQuestion pairs a definition with its availability and score for one snapshot.
type ScoredQuestion struct {
	Definition     Definition
	Available      bool
	RelevanceScore float64
}

// Summary returns the persistable form of the scored question.
func (s ScoredQuestion) Summary() domain.QuestionScore {
	return domain.QuestionScore{
		QuestionID:     s.Definition.ID,
		Category:       s.Definition.Category,
		Available:      s.Available,
		RelevanceScore: s.RelevanceScore,
	}
}

// Score evaluates every definition against d, in catalog order.
// Unavailable questions always score 0.
func Score(d *domain.DailyInsightData) []ScoredQuestion {
	out := make([]ScoredQuestion, 0, len(catalog))
	for _, def := range catalog {
		sq := ScoredQuestion{Definition: def}
		if d != nil && def.Available(d) {
			sq.Available = true
			sq.RelevanceScore = def.Relevance(d)
		}
		out = append(out, sq)
	}
	return out
}

// Rank sorts scored questions by score descending, ties by catalog order.
func Rank(scored []ScoredQuestion) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		return Index(a.Definition.ID) < Index(b.Definition.ID)
	})
}

// Suggested returns up to limit available questions, best first.
// A limit <= 0 returns all available questions.
func Suggested(d *domain.DailyInsightData, limit int) []ScoredQuestion {
	var avail []ScoredQuestion
	for _, sq := range Score(d) {
		if sq.Available {
			avail = append(avail, sq)
		}
	}
	Rank(avail)
	if limit > 0 && len(avail) > limit {
		avail = avail[:limit]
	}
	return avail
}

// Summaries converts scored questions to their persistable form.
func Summaries(scored []ScoredQuestion) []domain.QuestionScore {
	out := make([]domain.QuestionScore, len(scored))
	for i, s := range scored {
		out[i] = s.Summary()
	}
	return out
}
