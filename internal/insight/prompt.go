// Package insight builds model prompts, validates model output against the
// voice rules, and orchestrates narrative generation with fallbacks.
package insight

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nutrimind/internal/questions"
	"github.com/alexanderramin/nutrimind/internal/voice"
)

// SystemPrompt fixes the voice every narrative must follow.
func SystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a supportive nutrition coach inside a food-tracking app.\n")
	b.WriteString("You narrate precomputed facts about the user's day. You never calculate anything yourself.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Start your reply with exactly one emoji, then a space.\n")
	b.WriteString("- Write 2 to 3 short sentences. Never more than 3.\n")
	b.WriteString("- Use only numbers that appear in the DATA section, copied exactly. Do not round, convert or estimate.\n")
	b.WriteString("- Do not use exclamation marks.\n")
	b.WriteString("- Be warm and specific. Suggest one small, practical next step when it fits.\n")
	b.WriteString("- No medical advice and no judgement about food choices.\n")
	fmt.Fprintf(&b, "- Never use these words: %s.\n", strings.Join(voice.BannedWords(), ", "))
	fmt.Fprintf(&b, "- Prefer phrases like: %s.\n", strings.Join(voice.PreferredPhrases, ", "))
	b.WriteString("- Reply with the narrative only. No headings, lists or quotes.\n")
	return b.String()
}

// QuestionPrompt frames one question and the analyzer's data block.
func QuestionPrompt(def questions.Definition, dataBlock string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "QUESTION: %s\n\n", def.Text)
	b.WriteString("DATA:\n")
	b.WriteString(strings.TrimSpace(dataBlock))
	b.WriteString("\n\nAnswer the question in 2 to 3 sentences using only the DATA above.")
	return b.String()
}
