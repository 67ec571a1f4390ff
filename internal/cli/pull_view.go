package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/nutrimind/internal/cli/formatter"
	"github.com/alexanderramin/nutrimind/internal/llm"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type pullProgressMsg llm.Progress

type pullDoneMsg struct{ err error }

// pullModel is the bubbletea view of a model download. Ctrl-C asks the
// provider to cancel and waits for the pull to unwind.
type pullModel struct {
	name       string
	cancel     func()
	bar        progress.Model
	spinner    spinner.Model
	last       llm.Progress
	cancelling bool
	done       bool
	err        error
}

func newPullModel(name string, cancel func()) pullModel {
	return pullModel{
		name:   name,
		cancel: cancel,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(formatter.StylePurple),
		),
	}
}

func (m pullModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m pullModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			if !m.cancelling && m.cancel != nil {
				m.cancel()
			}
			m.cancelling = true
		}
		return m, nil
	case pullProgressMsg:
		m.last = llm.Progress(msg)
		return m, nil
	case pullDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m pullModel) View() string {
	if m.done {
		switch {
		case m.err == nil:
			return formatter.StyleGreen.Render("✔ ") + formatter.Bold(m.name) + " is ready.\n"
		case errors.Is(m.err, llm.ErrDownloadCancelled):
			return formatter.StyleYellow.Render("Download cancelled.") + "\n"
		default:
			return formatter.StyleRed.Render("✖ "+m.err.Error()) + "\n"
		}
	}

	var b strings.Builder
	status := m.last.Status
	if status == "" {
		status = "starting"
	}
	if m.cancelling {
		status = "cancelling"
	}
	fmt.Fprintf(&b, "%s Pulling %s %s\n\n", m.spinner.View(), formatter.Bold(m.name), formatter.Dim(status))
	b.WriteString("  " + m.bar.ViewAs(m.last.Percent/100) + "\n")
	if m.last.Total > 0 {
		detail := formatter.Bytes(m.last.Bytes) + " / " + formatter.Bytes(m.last.Total)
		if m.last.ETA > 0 {
			detail += fmt.Sprintf("  eta %s", m.last.ETA.Round(time.Second))
		}
		b.WriteString("  " + formatter.Dim(detail) + "\n")
	}
	b.WriteString("\n" + formatter.Dim("ctrl+c to cancel") + "\n")
	return b.String()
}
