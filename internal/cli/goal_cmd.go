package cli

import (
	"fmt"

	"github.com/alexanderramin/nutrimind/internal/cli/formatter"
	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/service"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Show or change your goal and daily targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Service.EnsureProfile(cmd.Context(), app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}

	var goal string
	var u service.GoalUpdate
	set := &cobra.Command{
		Use:     "set",
		Short:   "Change the goal or any target; omitted targets keep their value",
		Example: "  nutrimind goal set --goal lose --calories 1800",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u.Goal = domain.GoalType(goal)
			p, err := app.Service.SetGoal(cmd.Context(), u, app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}
	f := set.Flags()
	f.StringVar(&goal, "goal", "", "lose, maintain or gain")
	f.Float64Var(&u.CalorieTarget, "calories", 0, "Daily calories (kcal)")
	f.Float64Var(&u.ProteinTarget, "protein", 0, "Daily protein (g)")
	f.Float64Var(&u.CarbsTarget, "carbs", 0, "Daily carbs (g)")
	f.Float64Var(&u.FatTarget, "fat", 0, "Daily fat (g)")
	f.Float64Var(&u.FiberTarget, "fiber", 0, "Daily fiber (g)")
	f.Float64Var(&u.WaterTarget, "water", 0, "Daily water (ml)")

	cmd.AddCommand(set)
	return cmd
}
