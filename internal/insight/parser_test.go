package insight

import (
	"strings"
	"testing"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/questions"
	"github.com/alexanderramin/nutrimind/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(p Parsed) []string {
	out := make([]string, len(p.Issues))
	for i, is := range p.Issues {
		out[i] = is.Kind
	}
	return out
}

func TestParseResponse_CleanTextUntouched(t *testing.T) {
	p := ParseResponse("Protein is at 54% of target. A yogurt would round it out.")
	assert.Equal(t, "Protein is at 54% of target. A yogurt would round it out.", p.Text)
	assert.Empty(t, p.Issues)
	assert.Nil(t, p.IssueStrings())
}

func TestParseResponse_StripsLeadingGlyph(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"🥗 Nice balance today.", "Nice balance today."},
		{"💪🏽 Protein is on track.", "Protein is on track."},
		{"❤️ Good pacing.", "Good pacing."},
		{"👨‍🍳 Great cooking.", "Great cooking."},
	}
	for _, tt := range tests {
		p := ParseResponse(tt.raw)
		assert.Equal(t, tt.want, p.Text, tt.raw)
		assert.Contains(t, kinds(p), IssueLeadingGlyph)
	}
}

func TestParseResponse_TruncatesOverlongText(t *testing.T) {
	raw := "One. Two. Three. Four. Five. Six."
	p := ParseResponse(raw)
	assert.Equal(t, "One. Two. Three.", p.Text)
	assert.Contains(t, kinds(p), IssueTruncated)

	// exactly five terminators is allowed through
	five := "One. Two. Three. Four. Five."
	assert.Equal(t, five, ParseResponse(five).Text)

	// decimals are not sentence ends
	decimals := "Iron is 2.5 mg. Zinc is 3.1 mg. Fiber is 14.0 g. Water is 1.2 l. Calcium is 0.4 g."
	assert.Equal(t, decimals, ParseResponse(decimals).Text)
}

func TestParseResponse_SoftensBannedWords(t *testing.T) {
	p := ParseResponse("You're Behind on protein. Don't feel guilty about dessert.")
	assert.Equal(t, "You're Below on protein. Don't feel mindful about dessert.", p.Text)
	assert.Empty(t, voice.FindBanned(p.Text))
	assert.ElementsMatch(t, []string{IssueBannedWord, IssueBannedWord}, kinds(p))
}

func TestParseResponse_ReplacesExclamations(t *testing.T) {
	p := ParseResponse("Great job!! Keep going!")
	assert.Equal(t, "Great job. Keep going.", p.Text)
	assert.NotContains(t, p.Text, "!")
	assert.Contains(t, kinds(p), IssueExclamation)
}

func TestParseResponse_RemovesWrappers(t *testing.T) {
	p := ParseResponse("```\n🥗 Balanced day so far.\n```")
	assert.Equal(t, "Balanced day so far.", p.Text)

	p = ParseResponse(`"Balanced day so far."`)
	assert.Equal(t, "Balanced day so far.", p.Text)
	assert.Contains(t, kinds(p), IssueWrapper)
}

func TestParseResponse_SoftensInflectedBannedWords(t *testing.T) {
	for _, raw := range []string{
		"📊 No warnings here, just a badly timed lunch.",
		"Protein is poorly spread across your meals.",
		"No cheating needed, dinner still fits.",
		"Skipping breakfast is not a failure.",
	} {
		p := ParseResponse(raw)
		assert.Empty(t, voice.FindBanned(p.Text), p.Text)
		assert.Contains(t, kinds(p), IssueBannedWord, raw)
	}
}

func TestPrompts(t *testing.T) {
	sys := SystemPrompt()
	for _, w := range voice.BannedWords() {
		assert.Contains(t, sys, w)
	}
	assert.Contains(t, sys, "exactly one emoji")
	assert.Contains(t, sys, "2 to 3")
	assert.Contains(t, sys, "exclamation")

	def, ok := questions.Lookup(domain.QuestionMealTiming)
	require.True(t, ok)
	q := QuestionPrompt(def, "Timed meals: 2\nLongest gap: 5.0 hours\n")
	assert.True(t, strings.HasPrefix(q, "QUESTION: "+def.Text))
	assert.Contains(t, q, "DATA:\nTimed meals: 2\nLongest gap: 5.0 hours\n\n")
}
