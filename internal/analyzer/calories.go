package analyzer

import (
	"fmt"
	"math"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

func paceLabel(p domain.Pace) string {
	switch p {
	case domain.PaceAhead:
		return "ahead of pace"
	case domain.PaceBelow:
		return "below pace"
	default:
		return "on pace"
	}
}

func caloriePacing(d *domain.DailyInsightData) result {
	var r result
	p := domain.ComputePace(d.CaloriePercent, d.DayProgress)

	r.line("Calories so far", "%s of %s kcal (%d%%)", num(d.TodayCalories), num(d.CalorieTarget), d.CaloriePercent)
	r.line("Day progress", "%d%% of waking hours (06:00-22:00)", p.Expected)
	r.line("Expected by now", "%d%%", p.Expected)
	r.line("Deviation", "%s points", signed(p.Deviation))
	r.line("Pace", "%s", paceLabel(p.Pace))

	switch {
	case d.CalorieTarget <= 0:
		r.fallback = fmt.Sprintf("You've had %s kcal so far today. Set a calorie target to see how your pace compares.", num(d.TodayCalories))
	case p.Pace == domain.PaceAhead:
		r.fallback = fmt.Sprintf("You're ahead of pace at %d%% of your calorie target, compared with about %d%% expected by this time of day. A lighter next meal keeps the day balanced.",
			d.CaloriePercent, p.Expected)
	case p.Pace == domain.PaceBelow:
		r.fallback = fmt.Sprintf("You're below pace at %d%% of your calorie target, compared with about %d%% expected by now. There's plenty of room for a satisfying meal.",
			d.CaloriePercent, p.Expected)
	default:
		r.fallback = fmt.Sprintf("You're on pace at %d%% of your calorie target, right around the %d%% expected for this time of day.",
			d.CaloriePercent, p.Expected)
	}

	status := paceStatus(p.Pace)
	if d.CalorieTarget <= 0 {
		status = domain.CardNeutral
	}
	r.card(domain.DataCard{Label: "Calories", Value: num(d.TodayCalories) + " kcal", SubValue: "of " + num(d.CalorieTarget) + " kcal", Percent: pct(d.CaloriePercent), Status: status})
	r.card(domain.DataCard{Label: "Expected", Value: fmt.Sprintf("%d%%", p.Expected), SubValue: "by this hour", Percent: pct(p.Expected), Status: domain.CardNeutral})
	return r
}

func remainingBudget(d *domain.DailyInsightData) result {
	var r result
	remaining := d.RemainingCalories()
	meals := domain.EstimateRemainingMeals(d.CurrentHour, d.MealCount, d.CaloriePercent)
	proteinLeft := math.Max(0, d.ProteinTarget-d.TodayProtein)
	perMeal := 0.0
	if meals > 0 && remaining > 0 {
		perMeal = remaining / float64(meals)
	}

	r.line("Calorie target", "%s kcal", num(d.CalorieTarget))
	r.line("Eaten so far", "%s kcal", num(d.TodayCalories))
	r.line("Remaining", "%s kcal", num(math.Max(0, remaining)))
	r.line("Protein remaining", "%s g", num(proteinLeft))
	r.line("Estimated meals left", "%d", meals)
	r.line("Per remaining meal", "%s kcal", num(perMeal))

	switch {
	case d.CalorieTarget <= 0:
		r.fallback = "Set a calorie target to see how much room is left in your day."
	case remaining <= 0:
		r.fallback = fmt.Sprintf("You've reached your calorie target of %s kcal for today. If you're still hungry, vegetables and broth-based options are light choices.",
			num(d.CalorieTarget))
	case meals > 0:
		r.fallback = fmt.Sprintf("You have about %s kcal left today, roughly %s kcal for each of your %s. Aim to include around %sg of protein across them.",
			num(remaining), num(perMeal), plural(meals, "remaining meal"), num(proteinLeft))
	default:
		r.fallback = fmt.Sprintf("You have about %s kcal left today, room for a light snack if you're hungry.", num(remaining))
	}

	r.card(domain.DataCard{Label: "Remaining", Value: num(math.Max(0, remaining)) + " kcal", SubValue: "of " + num(d.CalorieTarget) + " kcal", Percent: pct(max(0, 100-d.CaloriePercent)), Status: targetStatus(d.CaloriePercent, d.CalorieTarget)})
	r.card(domain.DataCard{Label: "Meals left", Value: fmt.Sprintf("%d", meals), SubValue: num(perMeal) + " kcal each", Status: domain.CardNeutral})
	r.card(domain.DataCard{Label: "Protein left", Value: num(proteinLeft) + "g", Status: domain.CardNeutral})
	return r
}

func calorieAverage(d *domain.DailyInsightData) result {
	var r result
	logged := d.LoggedDays()
	diff := d.TodayCalories - d.Avg7DayCalories
	diffPct := 0
	if d.Avg7DayCalories > 0 {
		diffPct = int(math.Round(diff / d.Avg7DayCalories * 100))
	}

	r.line("Today", "%s kcal", num(d.TodayCalories))
	r.line("7-day average", "%s kcal", num(d.Avg7DayCalories))
	r.line("Difference", "%s kcal (%s%%)", signed(int(math.Round(diff))), signed(diffPct))
	r.line("Logged days this week", "%d of 7", len(logged))
	r.line("Day progress", "%d%%", int(math.Round(d.DayProgress*100)))

	switch {
	case d.Avg7DayCalories <= 0:
		r.fallback = "There isn't enough logged history yet to compare today with your usual. A few more days of logging will fill this in."
	case diffPct > 10:
		r.fallback = fmt.Sprintf("Today's %s kcal is %d%% above your 7-day average of %s kcal.",
			num(d.TodayCalories), diffPct, num(d.Avg7DayCalories))
	case diffPct < -10 && d.DayProgress < 1:
		r.fallback = fmt.Sprintf("Today's %s kcal is %d%% under your 7-day average of %s kcal, and there's still time left in the day.",
			num(d.TodayCalories), -diffPct, num(d.Avg7DayCalories))
	case diffPct < -10:
		r.fallback = fmt.Sprintf("Today's %s kcal came in %d%% under your 7-day average of %s kcal.",
			num(d.TodayCalories), -diffPct, num(d.Avg7DayCalories))
	default:
		r.fallback = fmt.Sprintf("Today's %s kcal is close to your 7-day average of %s kcal, a consistent pattern.",
			num(d.TodayCalories), num(d.Avg7DayCalories))
	}

	r.card(domain.DataCard{Label: "Today", Value: num(d.TodayCalories) + " kcal", Status: domain.CardNeutral})
	r.card(domain.DataCard{Label: "7-day average", Value: num(d.Avg7DayCalories) + " kcal", SubValue: fmt.Sprintf("%d logged days", len(logged)), Status: domain.CardNeutral})
	status := domain.CardOnTrack
	switch {
	case d.Avg7DayCalories <= 0:
		status = domain.CardNeutral
	case diffPct > 10:
		status = domain.CardAhead
	case diffPct < -10:
		status = domain.CardBehind
	}
	r.card(domain.DataCard{Label: "Difference", Value: signed(diffPct) + "%", Percent: pct(diffPct), Status: status})
	return r
}
