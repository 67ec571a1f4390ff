package analyzer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

func proteinPerMeal(d *domain.DailyInsightData) result {
	var r result
	s := domain.ComputeProteinSpread(d.Meals)

	minIdx, maxIdx := 0, 0
	for i, m := range d.Meals {
		if m.Protein < d.Meals[minIdx].Protein {
			minIdx = i
		}
		if m.Protein > d.Meals[maxIdx].Protein {
			maxIdx = i
		}
		r.line(mealLabel(m.Type), "%sg protein", num(m.Protein))
	}
	r.line("Meals", "%d", s.Meals)
	r.line("Range", "%sg to %sg", num(s.Min), num(s.Max))
	r.line("Uneven (largest more than 3x smallest)", "%s", yesNo(s.Uneven))
	if len(s.LowMeals) > 0 {
		r.line("Meals under 20g", "%s", joinMeals(s.LowMeals))
	} else {
		r.line("Meals under 20g", "none")
	}

	switch {
	case s.Meals < 2:
		r.fallback = "Log at least two meals to see how your protein is spread across the day."
	case s.Uneven:
		r.fallback = fmt.Sprintf("Your protein ranges from %sg at %s to %sg at %s. Spreading it more evenly, around 20g or more per meal, helps your body use it well.",
			num(s.Min), mealName(d.Meals[minIdx].Type), num(s.Max), mealName(d.Meals[maxIdx].Type))
	case len(s.LowMeals) > 0:
		r.fallback = fmt.Sprintf("Your protein is fairly even across meals, though %s came in under 20g. Adding a protein source there would round things out.",
			joinMeals(s.LowMeals))
	default:
		r.fallback = fmt.Sprintf("Your protein is well distributed across %d meals, each with at least %sg.", s.Meals, num(s.Min))
	}

	for _, m := range d.Meals {
		status := domain.CardOnTrack
		if m.Protein < domain.LowMealProtein {
			status = domain.CardBehind
		}
		r.card(domain.DataCard{Label: mealLabel(m.Type), Value: num(m.Protein) + "g", SubValue: num(m.Calories) + " kcal", Status: status})
	}
	if len(r.cards) == 0 {
		r.card(domain.DataCard{Label: "Meals", Value: "0", Status: domain.CardNeutral})
	}
	return r
}

func joinMeals(types []domain.MealType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = mealName(t)
	}
	return foodList(names, len(names))
}

func mealTiming(d *domain.DailyInsightData) result {
	var r result
	timed := d.TimedMeals()
	gaps := domain.ComputeMealGaps(d)
	longest := domain.LongestGap(gaps)
	long := longest.Hours > domain.LongGapHours

	times := make([]string, len(timed))
	for i, m := range timed {
		times[i] = mealLabel(m.Type) + " " + m.FirstLoggedAt.Format("15:04")
	}
	r.line("Timed meals", "%d", len(timed))
	if len(times) > 0 {
		r.line("Meal times", "%s", strings.Join(times, ", "))
	}
	for _, g := range gaps {
		r.line("Gap", "%s to %s, %s hours", mealLabel(g.From), mealLabel(g.To), one(g.Hours))
	}
	r.line("Longest gap", "%s hours", one(longest.Hours))
	if long {
		r.line("Long gap", "yes, over %d hours", domain.LongGapHours)
	} else {
		r.line("Long gap", "no (%d-hour limit)", domain.LongGapHours)
	}

	switch {
	case len(timed) < 2:
		r.fallback = "Log at least two meals with times to see how your meals are spaced."
	case long:
		r.fallback = fmt.Sprintf("There was a %s-hour gap between %s and %s. A snack in between can keep your energy steadier.",
			num(longest.Hours), mealName(longest.From), mealName(longest.To))
	default:
		r.fallback = fmt.Sprintf("Your meals are nicely spaced, with the longest stretch at about %s hours.", num(longest.Hours))
	}

	for _, m := range timed {
		r.card(domain.DataCard{Label: mealLabel(m.Type), Value: m.FirstLoggedAt.Format("15:04"), Status: domain.CardNeutral})
	}
	status := domain.CardOnTrack
	if long {
		status = domain.CardBehind
	}
	if len(timed) < 2 {
		status = domain.CardNeutral
	}
	r.card(domain.DataCard{Label: "Longest gap", Value: one(longest.Hours) + "h", Status: status})
	return r
}

func mealVariety(d *domain.DailyInsightData) result {
	var r result
	v := domain.ComputeVariety(d.Meals)

	r.line("Items logged", "%d", v.Total)
	r.line("Distinct foods", "%d", v.Distinct)
	r.line("Repeated items", "%d", v.Repeated)
	if v.MostCommon != "" {
		r.line("Most common", "%s", v.MostCommon)
	}
	r.line("Repetition (repeats over half of items)", "%s", yesNo(v.Repetitive))

	switch {
	case v.Total == 0:
		r.fallback = "No foods are logged yet today, so variety will show up as you add meals."
	case v.Repetitive:
		r.fallback = fmt.Sprintf("%d of today's %d items are repeats, with %s showing up most often. Swapping in a different food at your next meal adds more nutrients to the mix.",
			v.Repeated, v.Total, v.MostCommon)
	default:
		r.fallback = fmt.Sprintf("You've had %s across %s today, a nicely varied mix.",
			plural(v.Distinct, "different food"), plural(v.Total, "item"))
	}

	status := domain.CardOnTrack
	switch {
	case v.Total == 0:
		status = domain.CardNeutral
	case v.Repetitive:
		status = domain.CardBehind
	}
	r.card(domain.DataCard{Label: "Distinct foods", Value: fmt.Sprintf("%d", v.Distinct), SubValue: fmt.Sprintf("of %d items", v.Total), Status: status})
	r.card(domain.DataCard{Label: "Repeats", Value: fmt.Sprintf("%d", v.Repeated), Status: domain.CardNeutral})
	return r
}
