package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nutrimind/internal/deficiency"
	"github.com/alexanderramin/nutrimind/internal/domain"
)

// FormatMealLogged confirms a stored meal.
func FormatMealLogged(logs []*domain.FoodLog) string {
	if len(logs) == 0 {
		return ""
	}
	var total float64
	names := make([]string, 0, len(logs))
	for _, f := range logs {
		total += f.Calories
		names = append(names, f.FoodName)
	}
	return fmt.Sprintf("%s %s %s %s\n", StyleGreen.Render("✔"), Bold(string(logs[0].MealType)),
		strings.Join(names, ", "), Dim(Kcal(total)))
}

// FormatWaterLogged confirms a stored drink.
func FormatWaterLogged(w *domain.WaterLog) string {
	return fmt.Sprintf("%s %s %s\n", StyleGreen.Render("✔"), Bold("water"), Dim(Amount(w.AmountMl, "ml")))
}

// FormatNutrientLogged confirms a stored nutrient amount.
func FormatNutrientLogged(n *domain.NutrientLog) string {
	unit := ""
	name := n.NutrientID
	if def, ok := deficiency.Lookup(n.NutrientID); ok {
		unit = def.Unit
		name = def.Name
	}
	return fmt.Sprintf("%s %s %s %s\n", StyleGreen.Render("✔"), Bold(name), Dim(Amount(n.Amount, unit)), Dim(n.Date))
}

// FormatProfile renders goal and targets.
func FormatProfile(p *domain.Profile) string {
	rows := [][]string{
		{"Goal", StylePurple.Render(string(p.Goal))},
		{"Calories", Amount(p.CalorieTarget, "kcal")},
		{"Protein", Amount(p.ProteinTarget, "g")},
		{"Carbs", Amount(p.CarbsTarget, "g")},
		{"Fat", Amount(p.FatTarget, "g")},
		{"Fiber", Amount(p.FiberTarget, "g")},
		{"Water", Amount(p.WaterTarget, "ml")},
	}
	return RenderBox("Targets", strings.TrimRight(RenderTable([]string{"", "TARGET"}, rows), "\n"))
}
