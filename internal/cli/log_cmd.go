package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/nutrimind/internal/cli/formatter"
	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/service"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log food, water or a nutrient",
	}
	cmd.AddCommand(newLogMealCmd(app), newLogWaterCmd(app), newLogNutrientCmd(app))
	return cmd
}

func newLogMealCmd(app *App) *cobra.Command {
	var mealType string
	var items []string

	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Log a meal",
		Long: "Log a meal. Each --item is name:calories[:protein[:carbs[:fat[:fiber]]]],\n" +
			"for example --item \"greek yogurt:150:15:8:4\".",
		Example: `  nutrimind log meal --type lunch --item "rice:300:6:65:1" --item "tofu:200:20"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([]service.FoodItem, 0, len(items))
			for _, raw := range items {
				it, err := parseFoodItem(raw)
				if err != nil {
					return err
				}
				parsed = append(parsed, it)
			}
			logs, err := app.Service.LogMeal(cmd.Context(), domain.MealType(mealType), parsed, app.now())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMealLogged(logs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&mealType, "type", "t", "", "breakfast, lunch, dinner or snack")
	cmd.Flags().StringArrayVarP(&items, "item", "i", nil, "Food item (repeatable)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

// parseFoodItem reads name:calories[:protein[:carbs[:fat[:fiber]]]].
func parseFoodItem(raw string) (service.FoodItem, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 6 {
		return service.FoodItem{}, fmt.Errorf("%w: item %q: want name:calories[:protein[:carbs[:fat[:fiber]]]]", service.ErrInvalidInput, raw)
	}
	values := make([]float64, 5)
	for i, p := range parts[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return service.FoodItem{}, fmt.Errorf("%w: item %q: %q is not a number", service.ErrInvalidInput, raw, p)
		}
		values[i] = v
	}
	return service.FoodItem{
		Name:     strings.TrimSpace(parts[0]),
		Calories: values[0],
		Protein:  values[1],
		Carbs:    values[2],
		Fat:      values[3],
		Fiber:    values[4],
	}, nil
}

func newLogWaterCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "water <ml>",
		Short: "Log a drink in millilitres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ml, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", service.ErrInvalidInput, args[0])
			}
			w, err := app.Service.LogWater(cmd.Context(), ml, app.now())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWaterLogged(w))
			return nil
		},
	}
}

func newLogNutrientCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "nutrient <id> <amount>",
		Short:   "Log a micronutrient amount in its catalog unit",
		Example: "  nutrimind log nutrient iron 8",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", service.ErrInvalidInput, args[1])
			}
			n, err := app.Service.LogNutrient(cmd.Context(), args[0], amount, app.now())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNutrientLogged(n))
			return nil
		},
	}
}
