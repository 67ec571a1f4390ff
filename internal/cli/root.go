package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/nutrimind/internal/service"
	"github.com/spf13/cobra"
)

// App holds what the commands need. Clock and IsInteractive default to
// time.Now and false.
type App struct {
	Service *service.InsightService
	Logger  *slog.Logger

	Clock         func() time.Time
	IsInteractive func() bool
	APIAddr       string

	at timeValue
}

// now is the --at override when given, otherwise the clock.
func (a *App) now() time.Time {
	if a.at.set {
		return a.at.t
	}
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "nutrimind" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "nutrimind",
		Short:         "Daily nutrition insights from your food log",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Var(&app.at, "at", "Evaluate as of this time (RFC3339)")

	root.AddCommand(
		newTodayCmd(app),
		newQuestionsCmd(app),
		newAskCmd(app),
		newDigestCmd(app),
		newInsightsCmd(app),
		newAlertsCmd(app),
		newLogCmd(app),
		newGoalCmd(app),
		newModelCmd(app),
		newServeCmd(app),
	)
	return root
}
