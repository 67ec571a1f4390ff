package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/nutrimind/internal/cli/formatter"
	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/questions"
	"github.com/alexanderramin/nutrimind/internal/service"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	var showData bool

	cmd := &cobra.Command{
		Use:   "ask [question-id]",
		Short: "Answer one question about your day",
		Long: "Answer one question about your day. Without an id an interactive\n" +
			"picker lists the questions that have enough data.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := app.now()

			var id domain.QuestionID
			if len(args) == 1 {
				id = domain.QuestionID(args[0])
			} else {
				if !app.interactive() {
					return errors.New("question id required (see nutrimind questions)")
				}
				qs, err := app.Service.Questions(ctx, now)
				if err != nil {
					return err
				}
				sort.SliceStable(qs, func(i, j int) bool { return qs[i].RelevanceScore > qs[j].RelevanceScore })
				if id, err = pickQuestion(qs); err != nil {
					return err
				}
			}

			var stop func()
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
			}
			resp, err := app.Service.Ask(ctx, id, now)
			if stop != nil {
				stop()
			}
			if err != nil {
				return err
			}

			var cards []domain.DataCard
			if showData {
				a, err := app.Service.Analysis(ctx, id, now)
				if err != nil {
					return err
				}
				cards = a.DataCards
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInsight(questionTitle(id), resp, cards))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showData, "data", true, "Show the numbers behind the answer")
	return cmd
}

func questionTitle(id domain.QuestionID) string {
	if def, ok := questions.Lookup(id); ok {
		return def.Text
	}
	return string(id)
}

func newDigestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Narrate the top suggestions into the insights list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			if _, err := app.Service.Digest(cmd.Context(), now); err != nil {
				if errors.Is(err, service.ErrInsightsDisabled) {
					return fmt.Errorf("%w; run nutrimind insights enable", err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLegacyInsights(app.Service.LegacyInsights(), now))
			return nil
		},
	}
}

func newInsightsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Manage the stored digest insights",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show stored insights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLegacyInsights(app.Service.LegacyInsights(), app.now()))
			return nil
		},
	}
	toggle := func(use string, enabled bool) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: use + " digest insights",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Service.SetInsightsEnabled(cmd.Context(), enabled); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Insights %sd.\n", use)
				return nil
			},
		}
	}
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete stored insights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Service.ClearInsights(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Insights cleared.")
			return nil
		},
	}

	cmd.AddCommand(show, toggle("enable", true), toggle("disable", false), clearCmd)
	return cmd
}
