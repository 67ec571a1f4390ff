package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/nutrimind/internal/cli/formatter"
	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// nutrimindHuhTheme returns a huh theme using the formatter palette.
func nutrimindHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// questionOptions lists available questions in the order given.
func questionOptions(qs []service.QuestionView) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(qs))
	for _, q := range qs {
		if !q.Available {
			continue
		}
		options = append(options, huh.NewOption(fmt.Sprintf("%s %s", q.Icon, q.Text), string(q.ID)))
	}
	return options
}

// questionPicker builds the form behind "nutrimind ask" with no argument.
// It returns nil when no question is available.
func questionPicker(qs []service.QuestionView, result *string) *huh.Form {
	options := questionOptions(qs)
	if len(options) == 0 {
		return nil
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to know?").
				Options(options...).
				Value(result),
		),
	).WithTheme(nutrimindHuhTheme()).WithShowHelp(false)
}

var errNothingToAsk = errors.New("no question has enough data yet; log a meal first")

func pickQuestion(qs []service.QuestionView) (domain.QuestionID, error) {
	var id string
	form := questionPicker(qs, &id)
	if form == nil {
		return "", errNothingToAsk
	}
	if err := form.Run(); err != nil {
		return "", err
	}
	return domain.QuestionID(id), nil
}
