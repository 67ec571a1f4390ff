package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityColor returns the style for an alert severity.
func SeverityColor(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityConcern:
		return StyleRed
	case domain.SeverityWarning:
		return StyleYellow
	case domain.SeverityNotice:
		return StyleBlue
	default:
		return StyleDim
	}
}

// SeverityIndicator returns a colored label such as "● CONCERN".
func SeverityIndicator(s domain.Severity) string {
	if s == "" {
		return StyleDim.Render("● UNKNOWN")
	}
	return SeverityColor(s).Render("● " + strings.ToUpper(string(s)))
}

// SourceBadge marks whether a narrative came from the model or the template.
func SourceBadge(src domain.ResponseSource) string {
	if src == domain.SourceLLM {
		return StylePurple.Render("✦ model")
	}
	return StyleDim.Render("◇ summary")
}

// CardStyle colors an analyzer card by its status.
func CardStyle(s domain.CardStatus) lipgloss.Style {
	switch s {
	case domain.CardOnTrack:
		return StyleGreen
	case domain.CardAhead:
		return StyleYellow
	case domain.CardBehind:
		return StyleRed
	default:
		return StyleFg
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
