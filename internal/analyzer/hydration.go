package analyzer

import (
	"fmt"
	"math"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

func hydrationPacing(d *domain.DailyInsightData) result {
	var r result
	p := domain.ComputePace(d.WaterPercent, d.DayProgress)
	remaining := math.Max(0, d.WaterTarget-d.TodayWater)

	r.line("Water so far", "%s of %s ml (%d%%)", num(d.TodayWater), num(d.WaterTarget), d.WaterPercent)
	r.line("Expected by now", "%d%%", p.Expected)
	r.line("Deviation", "%s points", signed(p.Deviation))
	r.line("Pace", "%s", paceLabel(p.Pace))
	r.line("Remaining", "%s ml", num(remaining))

	switch {
	case d.WaterTarget <= 0:
		r.fallback = "Set a water target to track your hydration through the day."
	case d.WaterPercent >= 100:
		r.fallback = fmt.Sprintf("You've reached your water target with %s ml today. Nice work.", num(d.TodayWater))
	case p.Pace == domain.PaceAhead:
		r.fallback = fmt.Sprintf("You're ahead of pace with %s ml, %d%% of your daily water target.", num(d.TodayWater), d.WaterPercent)
	case p.Pace == domain.PaceBelow:
		r.fallback = fmt.Sprintf("You're at %d%% of your water target, below the %d%% expected by now. A glass of water with your next meal helps close the gap.",
			d.WaterPercent, p.Expected)
	default:
		r.fallback = fmt.Sprintf("You're on pace with %s ml, %d%% of your water target, with %s ml to go.",
			num(d.TodayWater), d.WaterPercent, num(remaining))
	}

	status := paceStatus(p.Pace)
	if d.WaterTarget <= 0 {
		status = domain.CardNeutral
	}
	r.card(domain.DataCard{Label: "Water", Value: num(d.TodayWater) + " ml", SubValue: "of " + num(d.WaterTarget) + " ml", Percent: pct(d.WaterPercent), Status: status})
	r.card(domain.DataCard{Label: "Remaining", Value: num(remaining) + " ml", Status: domain.CardNeutral})
	return r
}

func hydrationTrend(d *domain.DailyInsightData) result {
	var r result
	diffPct := 0
	if d.Avg7DayWater > 0 {
		diffPct = int(math.Round((d.TodayWater - d.Avg7DayWater) / d.Avg7DayWater * 100))
	}

	r.line("Water today", "%s ml", num(d.TodayWater))
	r.line("7-day water average", "%s ml", num(d.Avg7DayWater))
	r.line("Difference", "%s%%", signed(diffPct))
	r.line("Water target", "%s ml", num(d.WaterTarget))

	switch {
	case d.Avg7DayWater <= 0:
		r.fallback = "Once a few days of water are logged, you'll see how today compares with your usual."
	case diffPct < -25:
		r.fallback = fmt.Sprintf("You've had %s ml today, compared with your usual %s ml. Keeping a bottle nearby makes it easier to catch up.",
			num(d.TodayWater), num(d.Avg7DayWater))
	case diffPct > 10:
		r.fallback = fmt.Sprintf("You've had %s ml today, %d%% more than your usual %s ml.", num(d.TodayWater), diffPct, num(d.Avg7DayWater))
	default:
		r.fallback = fmt.Sprintf("You've had %s ml today, in line with your usual %s ml.", num(d.TodayWater), num(d.Avg7DayWater))
	}

	status := domain.CardOnTrack
	switch {
	case d.Avg7DayWater <= 0:
		status = domain.CardNeutral
	case diffPct < -25:
		status = domain.CardBehind
	case diffPct > 10:
		status = domain.CardAhead
	}
	r.card(domain.DataCard{Label: "Today", Value: num(d.TodayWater) + " ml", Status: status})
	r.card(domain.DataCard{Label: "Usual", Value: num(d.Avg7DayWater) + " ml", SubValue: signed(diffPct) + "%", Status: domain.CardNeutral})
	return r
}
