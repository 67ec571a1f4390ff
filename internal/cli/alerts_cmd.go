package cli

import (
	"fmt"

	"github.com/alexanderramin/nutrimind/internal/cli/formatter"
	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/spf13/cobra"
)

func newAlertsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show nutrient alerts for the last 7 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			alerts, err := app.Service.Alerts(cmd.Context(), now)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatAlerts(alerts))
			fmt.Fprint(out, formatter.FormatDismissals(app.Service.Dismissals(now), now))
			return nil
		},
	}

	dismiss := &cobra.Command{
		Use:   "dismiss <nutrient> <severity>",
		Short: "Hide an alert for 7 days",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Service.DismissAlert(cmd.Context(), args[0], domain.Severity(args[1]), app.now())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDismissal(d))
			return nil
		},
	}

	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Remove expired dismissals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Service.SweepDismissals(cmd.Context(), app.now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired dismissal(s).\n", n)
			return nil
		},
	}

	cmd.AddCommand(dismiss, sweep)
	return cmd
}
