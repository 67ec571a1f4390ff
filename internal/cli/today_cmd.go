package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/nutrimind/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTodayCmd(app *App) *cobra.Command {
	var asJSON, refresh bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's headline, suggested questions and alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			view, err := app.Service.Today(cmd.Context(), now, refresh)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatToday(view, now))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the view as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Recollect the snapshot even if the cache is fresh")
	return cmd
}

func newQuestionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List every question with availability and relevance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := app.Service.Questions(cmd.Context(), app.now())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuestions(qs))
			return nil
		},
	}
}
