package analyzer

import (
	"fmt"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

func alertLine(r *result, a domain.DeficiencyCheck) {
	r.line(a.NutrientName, "%d%% of RDA (%s of %s %s average), severity %s, tier %d",
		a.PercentOfRDA, one(a.AvgIntake), num(a.RDATarget), a.Unit, a.Severity, a.Tier)
}

func alertStatus(a domain.DeficiencyCheck) domain.CardStatus {
	if a.Severity == domain.SeverityNotice {
		return domain.CardNeutral
	}
	return domain.CardBehind
}

func alertCard(a domain.DeficiencyCheck) domain.DataCard {
	return domain.DataCard{
		Label:    a.NutrientName,
		Value:    fmt.Sprintf("%d%%", a.PercentOfRDA),
		SubValue: "of daily target",
		Percent:  pct(a.PercentOfRDA),
		Status:   alertStatus(a),
	}
}

func foodSentence(a domain.DeficiencyCheck) string {
	foods := foodList(a.FoodSuggestions, 2)
	if foods == "" {
		return ""
	}
	return fmt.Sprintf(" Foods like %s can help bring it up.", foods)
}

func nutrientGaps(d *domain.DailyInsightData) result {
	var r result
	r.line("Active nutrient alerts", "%d", len(d.ActiveAlerts))
	for _, a := range d.ActiveAlerts {
		alertLine(&r, a)
	}

	top := topAlert(d)
	if top == nil {
		r.fallback = "No nutrient gaps stand out from your past week of logging. Keep up the variety."
		r.card(domain.DataCard{Label: "Nutrient gaps", Value: "None", Status: domain.CardOnTrack})
		return r
	}

	r.fallback = fmt.Sprintf("%s has averaged %d%% of its daily target over the past week.%s", top.NutrientName, top.PercentOfRDA, foodSentence(*top))
	if len(d.ActiveAlerts) > 1 {
		names := make([]string, 0, len(d.ActiveAlerts)-1)
		for _, a := range d.ActiveAlerts[1:] {
			names = append(names, a.NutrientName)
		}
		r.fallback += fmt.Sprintf(" %s could also use some attention.", foodList(names, len(names)))
	}
	for _, a := range d.ActiveAlerts {
		r.card(alertCard(a))
	}
	return r
}

func fiberCheck(d *domain.DailyInsightData) result {
	var r result
	var alert *domain.DeficiencyCheck
	for i := range d.ActiveAlerts {
		if d.ActiveAlerts[i].NutrientID == "fiber" {
			alert = &d.ActiveAlerts[i]
			break
		}
	}

	r.line("Fiber today", "%s of %s g (%d%%)", num(d.TodayFiber), num(d.FiberTarget), d.FiberPercent)
	if alert != nil {
		alertLine(&r, *alert)
	} else {
		r.line("Fiber alert", "none")
	}

	switch {
	case alert != nil:
		r.fallback = fmt.Sprintf("Fiber has averaged %d%% of its daily target this week.%s", alert.PercentOfRDA, foodSentence(*alert))
	case d.FiberTarget <= 0:
		r.fallback = fmt.Sprintf("You've had %sg of fiber today. Set a fiber target to see how that compares.", num(d.TodayFiber))
	case d.FiberPercent >= 100:
		r.fallback = fmt.Sprintf("You've reached your fiber target with %sg today. Nice work.", num(d.TodayFiber))
	default:
		r.fallback = fmt.Sprintf("You've had %sg of fiber today, %d%% of your %sg target. Whole grains, beans and fruit are easy ways to add more.",
			num(d.TodayFiber), d.FiberPercent, num(d.FiberTarget))
	}

	r.card(domain.DataCard{Label: "Fiber", Value: num(d.TodayFiber) + "g", SubValue: "of " + num(d.FiberTarget) + "g", Percent: pct(d.FiberPercent), Status: targetStatus(d.FiberPercent, d.FiberTarget)})
	if alert != nil {
		r.card(alertCard(*alert))
	}
	return r
}

func micronutrientFocus(d *domain.DailyInsightData) result {
	var r result
	top := topAlert(d)
	if top == nil {
		r.line("Focus nutrient", "none")
		r.fallback = "No single nutrient needs extra focus right now based on your past week."
		r.card(domain.DataCard{Label: "Focus", Value: "None", Status: domain.CardOnTrack})
		return r
	}

	r.line("Focus nutrient", "%s", top.NutrientName)
	alertLine(&r, *top)
	foods := foodList(top.FoodSuggestions, 2)
	if foods != "" {
		r.line("Suggested foods", "%s", foods)
	}

	r.fallback = fmt.Sprintf("Focus on %s this week: it has averaged %d%% of its daily target.", top.NutrientName, top.PercentOfRDA)
	if len(top.FoodSuggestions) > 0 {
		short := top.FoodSuggestions
		if len(short) > 2 {
			short = short[:2]
		}
		if len(short) == 2 {
			r.fallback += fmt.Sprintf(" Try adding %s or %s.", short[0], short[1])
		} else {
			r.fallback += fmt.Sprintf(" Try adding %s.", short[0])
		}
	}

	r.card(alertCard(*top))
	if foods != "" {
		r.card(domain.DataCard{Label: "Try", Value: foods, Status: domain.CardNeutral})
	}
	return r
}
