package insight

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alexanderramin/nutrimind/internal/voice"
)

// Issue kinds recorded while repairing model output.
const (
	IssueLeadingGlyph = "leading_glyph_stripped"
	IssueTruncated    = "truncated_to_three_sentences"
	IssueBannedWord   = "banned_word_replaced"
	IssueExclamation  = "exclamation_replaced"
	IssueWrapper      = "wrapper_removed"
)

// MaxTerminators is the sentence-terminator count above which output is
// cut to its first three sentences.
const MaxTerminators = 5

// ValidationIssue is one correction applied to model output.
type ValidationIssue struct {
	Kind   string
	Detail string
}

func (v ValidationIssue) String() string {
	if v.Detail == "" {
		return v.Kind
	}
	return v.Kind + ": " + v.Detail
}

// Parsed is repaired model output. Issues never invalidate the text.
type Parsed struct {
	Text   string
	Issues []ValidationIssue
}

// IssueStrings flattens issues for storage on a response.
func (p Parsed) IssueStrings() []string {
	if len(p.Issues) == 0 {
		return nil
	}
	out := make([]string, len(p.Issues))
	for i, is := range p.Issues {
		out[i] = is.String()
	}
	return out
}

// ParseResponse repairs raw model output: wrappers, a leading glyph,
// overlong text, banned words and exclamation marks, in that order.
func ParseResponse(raw string) Parsed {
	var p Parsed
	text := strings.TrimSpace(raw)

	if unwrapped := unwrap(text); unwrapped != text {
		text = unwrapped
		p.Issues = append(p.Issues, ValidationIssue{Kind: IssueWrapper})
	}

	if stripped, glyph := stripLeadingGlyph(text); glyph != "" {
		text = stripped
		p.Issues = append(p.Issues, ValidationIssue{Kind: IssueLeadingGlyph, Detail: glyph})
	}

	if n := countTerminators(text); n > MaxTerminators {
		text = firstSentences(text, 3)
		p.Issues = append(p.Issues, ValidationIssue{Kind: IssueTruncated, Detail: fmt.Sprintf("%d terminators", n)})
	}

	softened, replaced := voice.Soften(text)
	for _, w := range replaced {
		p.Issues = append(p.Issues, ValidationIssue{Kind: IssueBannedWord, Detail: w})
	}
	text = softened

	if n := strings.Count(text, "!"); n > 0 {
		text = strings.ReplaceAll(text, "!", ".")
		text = collapseDots(text)
		p.Issues = append(p.Issues, ValidationIssue{Kind: IssueExclamation, Detail: fmt.Sprintf("%d replaced", n)})
	}

	p.Text = strings.TrimSpace(text)
	return p
}

// unwrap removes code fences and matching surrounding quotes.
func unwrap(s string) string {
	if strings.HasPrefix(s, "```") {
		lines := strings.Split(s, "\n")
		var kept []string
		for _, l := range lines {
			if strings.HasPrefix(strings.TrimSpace(l), "```") {
				continue
			}
			kept = append(kept, l)
		}
		s = strings.TrimSpace(strings.Join(kept, "\n"))
	}
	for _, q := range []string{`"`, "'", "“"} {
		end := q
		if q == "“" {
			end = "”"
		}
		if len(s) >= len(q)+len(end) && strings.HasPrefix(s, q) && strings.HasSuffix(s, end) {
			s = strings.TrimSpace(s[len(q) : len(s)-len(end)])
		}
	}
	return s
}

// isPictograph reports runes that can make up an emoji glyph.
func isPictograph(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x2B00 && r <= 0x2BFF:
		return true
	case r == 0x200D || r == 0xFE0F || r == 0x20E3:
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF:
		return true
	}
	return unicode.Is(unicode.So, r)
}

// stripLeadingGlyph removes one leading emoji sequence and the space after it.
func stripLeadingGlyph(s string) (string, string) {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isPictograph(r) {
			break
		}
		i += size
	}
	if i == 0 {
		return s, ""
	}
	return strings.TrimLeftFunc(s[i:], unicode.IsSpace), s[:i]
}

// isTerminatorAt reports a sentence end: '.', '!' or '?' followed by
// whitespace or the end of text. Decimal points do not count.
func isTerminatorAt(s string, i int) bool {
	switch s[i] {
	case '.', '!', '?':
	default:
		return false
	}
	if i+1 >= len(s) {
		return true
	}
	next := s[i+1]
	return next == ' ' || next == '\n' || next == '\t' || next == '\r'
}

func countTerminators(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if isTerminatorAt(s, i) {
			n++
		}
	}
	return n
}

func firstSentences(s string, n int) string {
	count := 0
	for i := 0; i < len(s); i++ {
		if isTerminatorAt(s, i) {
			count++
			if count == n {
				return strings.TrimSpace(s[:i+1])
			}
		}
	}
	return s
}

func collapseDots(s string) string {
	for strings.Contains(s, "..") {
		s = strings.ReplaceAll(s, "..", ".")
	}
	return s
}
