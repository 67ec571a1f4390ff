package analyzer

import (
	"fmt"
	"math"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

func trendDirection(d *domain.DailyInsightData) result {
	var r result
	t := domain.ComputeTrend(d)
	aligned := domain.GoalAligned(d.Goal, t.Direction)

	r.line("Logged days", "%d", t.Days)
	r.line("Early average (first 3 logged days)", "%s kcal", num(t.EarlyAvg))
	r.line("Recent average (last 3 logged days)", "%s kcal", num(t.RecentAvg))
	r.line("Change", "%s%%", signed(int(math.Round(t.ChangePct))))
	r.line("Direction", "%s", t.Direction)
	r.line("Goal", "%s", goalName(d.Goal))
	r.line("Direction matches goal", "%s", yesNo(aligned))

	switch {
	case !t.OK:
		r.fallback = fmt.Sprintf("Log at least %d days this week to see which way your intake is trending. You have %s so far.",
			domain.TrendMinDays, plural(t.Days, "logged day"))
	case t.Direction == domain.TrendSteady:
		r.fallback = fmt.Sprintf("Your intake is holding steady at around %s kcal per day.", num(t.RecentAvg))
	default:
		r.fallback = fmt.Sprintf("Your intake is trending %s, from about %s kcal to %s kcal per day.",
			t.Direction, num(t.EarlyAvg), num(t.RecentAvg))
	}
	if t.OK {
		if aligned {
			r.fallback += fmt.Sprintf(" That lines up with your goal to %s.", goalPhrase(d.Goal))
		} else {
			r.fallback += fmt.Sprintf(" Your goal is to %s, so it may be worth a look at portions over the next few days.", goalPhrase(d.Goal))
		}
	}

	status := domain.CardNeutral
	if t.OK {
		status = domain.CardOnTrack
		if !aligned {
			status = domain.CardBehind
		}
	}
	r.card(domain.DataCard{Label: "Direction", Value: string(t.Direction), SubValue: signed(int(math.Round(t.ChangePct))) + "%", Status: status})
	r.card(domain.DataCard{Label: "Recent average", Value: num(t.RecentAvg) + " kcal", SubValue: "early " + num(t.EarlyAvg) + " kcal", Status: domain.CardNeutral})
	return r
}

func loggingStreak(d *domain.DailyInsightData) result {
	var r result
	logged := len(d.LoggedDays())

	r.line("Logging streak", "%s", plural(d.LoggingStreak, "day"))
	r.line("Calorie streak (within 10% of target)", "%s", plural(d.CalorieStreak, "day"))
	r.line("Logged days this week", "%d of 7", logged)
	r.line("Days using app", "%d", d.DaysUsingApp)

	switch {
	case d.LoggingStreak <= 0:
		r.fallback = "Log a meal today to start a new streak. Every logged day makes your insights sharper."
	case d.LoggingStreak >= 7:
		r.fallback = fmt.Sprintf("You've logged %s in a row, a great habit that makes every insight sharper.", plural(d.LoggingStreak, "day"))
	default:
		r.fallback = fmt.Sprintf("You've logged %s in a row. Keep it going to build a full week.", plural(d.LoggingStreak, "day"))
	}
	if d.CalorieStreak >= 3 {
		r.fallback += fmt.Sprintf(" You've also stayed within range of your calorie target for %s.", plural(d.CalorieStreak, "day"))
	}

	status := domain.CardNeutral
	if d.LoggingStreak >= 7 {
		status = domain.CardAhead
	} else if d.LoggingStreak > 0 {
		status = domain.CardOnTrack
	}
	r.card(domain.DataCard{Label: "Logging streak", Value: plural(d.LoggingStreak, "day"), Status: status})
	r.card(domain.DataCard{Label: "Calorie streak", Value: plural(d.CalorieStreak, "day"), Status: domain.CardNeutral})
	r.card(domain.DataCard{Label: "This week", Value: fmt.Sprintf("%d/7", logged), Percent: pct(int(math.Round(float64(logged) / 7 * 100))), Status: domain.CardNeutral})
	return r
}

func weeklySummary(d *domain.DailyInsightData) result {
	var r result
	logged := d.LoggedDays()
	var cal, protein float64
	inRange := 0
	for _, day := range logged {
		cal += day.Calories
		protein += day.Protein
		if p := domain.Percent(day.Calories, d.CalorieTarget); d.CalorieTarget > 0 && p >= 90 && p <= 110 {
			inRange++
		}
	}
	avgCal, avgProtein := 0.0, 0.0
	if len(logged) > 0 {
		avgCal = cal / float64(len(logged))
		avgProtein = protein / float64(len(logged))
	}

	r.line("Logged days", "%d of 7", len(logged))
	r.line("Average calories (logged days)", "%s kcal", num(avgCal))
	r.line("Calorie target", "%s kcal", num(d.CalorieTarget))
	r.line("Days within 10% of target", "%d", inRange)
	r.line("Average protein (logged days)", "%s g", num(avgProtein))
	for _, day := range d.WeeklyTotals {
		if day.Logged {
			r.line(day.Date, "%s kcal, %s g protein", num(day.Calories), num(day.Protein))
		} else {
			r.line(day.Date, "not logged")
		}
	}

	switch {
	case len(logged) == 0:
		r.fallback = "There's no logged data for this week yet. Once you log a few days, your weekly summary will appear here."
	case d.CalorieTarget <= 0:
		r.fallback = fmt.Sprintf("This week you logged %d of 7 days, averaging %s kcal and %sg of protein.",
			len(logged), num(avgCal), num(avgProtein))
	default:
		r.fallback = fmt.Sprintf("This week you logged %d of 7 days, averaging %s kcal against your %s kcal target. %d of those days landed within 10%% of your target.",
			len(logged), num(avgCal), num(d.CalorieTarget), inRange)
	}

	r.card(domain.DataCard{Label: "Logged days", Value: fmt.Sprintf("%d/7", len(logged)), Status: domain.CardNeutral})
	r.card(domain.DataCard{Label: "Average calories", Value: num(avgCal) + " kcal", SubValue: "target " + num(d.CalorieTarget), Percent: pct(domain.Percent(avgCal, d.CalorieTarget)), Status: targetStatus(domain.Percent(avgCal, d.CalorieTarget), d.CalorieTarget)})
	r.card(domain.DataCard{Label: "Days in range", Value: fmt.Sprintf("%d", inRange), Status: domain.CardNeutral})
	return r
}

func goalAlignment(d *domain.DailyInsightData) result {
	var r result
	dir := domain.AverageDirection(d)
	aligned := domain.GoalAligned(d.Goal, dir)
	diffPct := 0
	if d.CalorieTarget > 0 {
		diffPct = int(math.Round((d.Avg7DayCalories - d.CalorieTarget) / d.CalorieTarget * 100))
	}

	r.line("Goal", "%s", goalName(d.Goal))
	r.line("7-day average", "%s kcal", num(d.Avg7DayCalories))
	r.line("Calorie target", "%s kcal", num(d.CalorieTarget))
	r.line("Average vs target", "%s%%", signed(diffPct))
	r.line("Average direction vs target", "%s", dir)
	r.line("Matches goal", "%s", yesNo(aligned))

	switch {
	case d.Avg7DayCalories <= 0 || d.CalorieTarget <= 0:
		r.fallback = "Once a few days are logged against a calorie target, you'll see how your eating lines up with your goal."
	case aligned:
		r.fallback = fmt.Sprintf("Your 7-day average of %s kcal lines up with your goal to %s.", num(d.Avg7DayCalories), goalPhrase(d.Goal))
	case diffPct > 0:
		r.fallback = fmt.Sprintf("Your 7-day average of %s kcal is %d%% above your %s kcal target, while your goal is to %s. Small portion adjustments could bring them closer.",
			num(d.Avg7DayCalories), diffPct, num(d.CalorieTarget), goalPhrase(d.Goal))
	default:
		r.fallback = fmt.Sprintf("Your 7-day average of %s kcal is %d%% under your %s kcal target, while your goal is to %s. A little more at each meal could bring them closer.",
			num(d.Avg7DayCalories), -diffPct, num(d.CalorieTarget), goalPhrase(d.Goal))
	}

	status := domain.CardNeutral
	if d.Avg7DayCalories > 0 && d.CalorieTarget > 0 {
		status = domain.CardOnTrack
		if !aligned {
			status = domain.CardBehind
		}
	}
	r.card(domain.DataCard{Label: "Goal", Value: goalName(d.Goal), Status: status})
	r.card(domain.DataCard{Label: "7-day average", Value: num(d.Avg7DayCalories) + " kcal", SubValue: signed(diffPct) + "% vs target", Percent: pct(domain.Percent(d.Avg7DayCalories, d.CalorieTarget)), Status: domain.CardNeutral})
	return r
}
