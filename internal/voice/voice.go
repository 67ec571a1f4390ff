// Package voice holds the tone rules every insight narrative must follow.
package voice

import (
	"regexp"
	"strings"
)

// Replacement maps one banned phrase to its softened alternative.
type Replacement struct {
	Banned string
	Soft   string
}

// Replacements is ordered so multi-word phrases and inflected forms are
// tried before their stems.
var Replacements = []Replacement{
	{"falling short", "building toward"},
	{"failures", "misses"},
	{"failure", "miss"},
	{"failed", "fell short of"},
	{"failing", "working toward"},
	{"fails", "misses"},
	{"fail", "miss"},
	{"cheating", "treating"},
	{"cheated", "enjoyed a treat"},
	{"cheats", "treats"},
	{"cheat", "treat"},
	{"warnings", "heads-ups"},
	{"warning", "heads-up"},
	{"behind", "below"},
	{"poorly", "lightly"},
	{"poorer", "lighter"},
	{"poor", "lighter"},
	{"badly", "less ideally"},
	{"bad", "less ideal"},
	{"guilty", "mindful"},
	{"terribly", "very"},
	{"terrible", "tough"},
	{"overate", "went over"},
}

// BannedWords lists every phrase a narrative must never contain.
func BannedWords() []string {
	out := make([]string, len(Replacements))
	for i, r := range Replacements {
		out[i] = r.Banned
	}
	return out
}

// PreferredPhrases are offered to the model as alternatives.
var PreferredPhrases = []string{
	"on track", "room to grow", "building toward", "a good start",
	"consider adding", "nice work", "below target", "within range",
}

var patterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(Replacements))
	for i, r := range Replacements {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(r.Banned) + `\b`)
	}
	return out
}()

// FindBanned returns every banned phrase contained in text, case-insensitively.
func FindBanned(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, r := range Replacements {
		if strings.Contains(lower, r.Banned) {
			found = append(found, r.Banned)
		}
	}
	return found
}

// Soften replaces whole-word banned phrases with their softened alternatives.
// It returns the rewritten text and the banned phrases that were replaced.
func Soften(text string) (string, []string) {
	var replaced []string
	for i, re := range patterns {
		if !re.MatchString(text) {
			continue
		}
		replaced = append(replaced, Replacements[i].Banned)
		soft := Replacements[i].Soft
		text = re.ReplaceAllStringFunc(text, func(m string) string {
			return matchCase(m, soft)
		})
	}
	return text, replaced
}

// matchCase capitalizes soft when the original match started uppercase.
func matchCase(orig, soft string) string {
	if orig == "" || soft == "" {
		return soft
	}
	if orig[0] >= 'A' && orig[0] <= 'Z' {
		return strings.ToUpper(soft[:1]) + soft[1:]
	}
	return soft
}
