package analyzer

import (
	"fmt"
	"math"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

func macroCard(label string, today, target float64, percent int, unit string) domain.DataCard {
	return domain.DataCard{
		Label:    label,
		Value:    num(today) + unit,
		SubValue: "of " + num(target) + unit,
		Percent:  pct(percent),
		Status:   targetStatus(percent, target),
	}
}

func macroOverview(d *domain.DailyInsightData) result {
	var r result
	balanced := d.ProteinPercent >= 80 && d.CarbsPercent >= 80 && d.FatPercent >= 80
	proteinLag := d.ProteinPercent < d.CaloriePercent-15
	over := d.CaloriePercent > 110

	r.line("Calories", "%s of %s kcal (%d%%)", num(d.TodayCalories), num(d.CalorieTarget), d.CaloriePercent)
	r.line("Protein", "%s of %s g (%d%%)", num(d.TodayProtein), num(d.ProteinTarget), d.ProteinPercent)
	r.line("Carbs", "%s of %s g (%d%%)", num(d.TodayCarbs), num(d.CarbsTarget), d.CarbsPercent)
	r.line("Fat", "%s of %s g (%d%%)", num(d.TodayFat), num(d.FatTarget), d.FatPercent)
	r.line("Meals logged", "%d", d.MealCount)
	r.line("All macros at 80%+", "%s", yesNo(balanced))
	r.line("Protein lagging calories by 15+ points", "%s", yesNo(proteinLag))
	r.line("Over calorie target", "%s", yesNo(over))

	switch {
	case d.MealCount == 0 && d.TodayCalories == 0:
		r.fallback = "No meals are logged yet today, so there is nothing to break down. Log your first meal and your macro picture will fill in."
	case over:
		r.fallback = fmt.Sprintf("You're at %d%% of your calorie target with %s of %s kcal. Protein is at %d%%, carbs at %d%% and fat at %d%%.",
			d.CaloriePercent, num(d.TodayCalories), num(d.CalorieTarget), d.ProteinPercent, d.CarbsPercent, d.FatPercent)
	case balanced:
		r.fallback = fmt.Sprintf("All three macros are at 80%% or more of target, a well-rounded day so far. Protein is at %d%% of your %sg goal.",
			d.ProteinPercent, num(d.ProteinTarget))
	case proteinLag:
		r.fallback = fmt.Sprintf("Protein is at %d%% of target while calories are at %d%%. Adding a protein-rich food to your next meal would help it catch up.",
			d.ProteinPercent, d.CaloriePercent)
	default:
		r.fallback = fmt.Sprintf("You're at %d%% of your calorie target so far. Protein is at %d%%, carbs at %d%% and fat at %d%%.",
			d.CaloriePercent, d.ProteinPercent, d.CarbsPercent, d.FatPercent)
	}

	r.card(macroCard("Calories", d.TodayCalories, d.CalorieTarget, d.CaloriePercent, " kcal"))
	r.card(macroCard("Protein", d.TodayProtein, d.ProteinTarget, d.ProteinPercent, "g"))
	r.card(macroCard("Carbs", d.TodayCarbs, d.CarbsTarget, d.CarbsPercent, "g"))
	r.card(macroCard("Fat", d.TodayFat, d.FatTarget, d.FatPercent, "g"))
	return r
}

func macroRatio(d *domain.DailyInsightData) result {
	var r result
	s := domain.ComputeMacroShares(d.TodayProtein, d.TodayCarbs, d.TodayFat)
	balanced := s.Balanced()

	r.line("Protein", "%sg x 4 = %s kcal (%s%%)", num(d.TodayProtein), num(s.ProteinCal), num(s.Protein))
	r.line("Carbs", "%sg x 4 = %s kcal (%s%%)", num(d.TodayCarbs), num(s.CarbsCal), num(s.Carbs))
	r.line("Fat", "%sg x 9 = %s kcal (%s%%)", num(d.TodayFat), num(s.FatCal), num(s.Fat))
	r.line("Total macro calories", "%s", num(s.Total))
	r.line("Balanced (protein 20-35%, fat 40% or less)", "%s", yesNo(balanced && s.Total > 0))

	switch {
	case s.Total == 0:
		r.fallback = "No macro calories are logged yet today. Your split will show up after your first meal."
	case balanced:
		r.fallback = fmt.Sprintf("Your calories split into %s%% protein, %s%% carbs and %s%% fat, a balanced mix.",
			num(s.Protein), num(s.Carbs), num(s.Fat))
	case s.Protein < 20:
		r.fallback = fmt.Sprintf("Protein makes up %s%% of your calories today, under the 20-35%% range. Carbs are at %s%% and fat at %s%%, so a protein-forward next meal would even things out.",
			num(s.Protein), num(s.Carbs), num(s.Fat))
	case s.Protein > 35:
		r.fallback = fmt.Sprintf("Protein makes up %s%% of your calories today, above the 20-35%% range. Adding some whole grains or fruit would round out the mix.",
			num(s.Protein))
	default:
		r.fallback = fmt.Sprintf("Fat accounts for %s%% of your calories today, above the 40%% mark. Leaner choices at your next meal would bring the split closer to range.",
			num(s.Fat))
	}

	status := func(share, lo, hi float64) domain.CardStatus {
		switch {
		case s.Total == 0:
			return domain.CardNeutral
		case share > hi:
			return domain.CardAhead
		case share < lo:
			return domain.CardBehind
		default:
			return domain.CardOnTrack
		}
	}
	r.card(domain.DataCard{Label: "Protein share", Value: num(s.Protein) + "%", SubValue: num(s.ProteinCal) + " kcal", Percent: pct(int(math.Round(s.Protein))), Status: status(s.Protein, 20, 35)})
	r.card(domain.DataCard{Label: "Carb share", Value: num(s.Carbs) + "%", SubValue: num(s.CarbsCal) + " kcal", Percent: pct(int(math.Round(s.Carbs))), Status: status(s.Carbs, 0, 100)})
	r.card(domain.DataCard{Label: "Fat share", Value: num(s.Fat) + "%", SubValue: num(s.FatCal) + " kcal", Percent: pct(int(math.Round(s.Fat))), Status: status(s.Fat, 0, 40)})
	return r
}

func proteinStatus(d *domain.DailyInsightData) result {
	var r result
	remaining := math.Max(0, d.ProteinTarget-d.TodayProtein)
	lagging := d.ProteinPercent < d.CaloriePercent-15

	r.line("Protein", "%s of %s g (%d%%)", num(d.TodayProtein), num(d.ProteinTarget), d.ProteinPercent)
	r.line("Calories", "%d%% of target", d.CaloriePercent)
	r.line("Protein remaining", "%s g", num(remaining))
	r.line("Protein lagging calories by 15+ points", "%s", yesNo(lagging))
	r.line("7-day protein average", "%s g", num(d.Avg7DayProtein))

	switch {
	case d.ProteinTarget <= 0:
		r.fallback = fmt.Sprintf("You've had %sg of protein today. Set a protein target to see how that compares.", num(d.TodayProtein))
	case d.ProteinPercent >= 100:
		r.fallback = fmt.Sprintf("You've reached your protein target with %sg today. Nice work.", num(d.TodayProtein))
	case lagging:
		r.fallback = fmt.Sprintf("Protein is at %d%% of target while calories are at %d%%. About %sg to go, so leaning on eggs, yogurt, fish or beans at your next meal would help.",
			d.ProteinPercent, d.CaloriePercent, num(remaining))
	default:
		r.fallback = fmt.Sprintf("You've had %sg of protein, %d%% of your %sg target, with %sg still to go.",
			num(d.TodayProtein), d.ProteinPercent, num(d.ProteinTarget), num(remaining))
	}

	r.card(macroCard("Protein", d.TodayProtein, d.ProteinTarget, d.ProteinPercent, "g"))
	r.card(domain.DataCard{Label: "Remaining", Value: num(remaining) + "g", Status: domain.CardNeutral})
	r.card(domain.DataCard{Label: "7-day average", Value: num(d.Avg7DayProtein) + "g", Status: domain.CardNeutral})
	return r
}
