package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/service"
)

const targetBarWidth = 12

// FormatToday renders the home view: headline, intake bars, suggestions and alerts.
func FormatToday(v *service.TodayView, now time.Time) string {
	var b strings.Builder

	if v.Headline != nil {
		b.WriteString(v.Headline.Icon + "  " + Bold(v.Headline.Text) + "\n\n")
	}

	if d := v.Snapshot; d != nil {
		b.WriteString(formatIntake(d))
		b.WriteString("\n")
	}

	if len(v.Suggestions) > 0 {
		b.WriteString(Header("Ask about") + "\n")
		for i, q := range v.Suggestions {
			fmt.Fprintf(&b, "  %d. %s %s %s\n", i+1, q.Icon, q.Text, Dim(string(q.ID)))
		}
		b.WriteString("\n")
	}

	if len(v.Alerts) > 0 {
		b.WriteString(Header("Nutrient alerts") + "\n")
		for _, a := range v.Alerts {
			fmt.Fprintf(&b, "  %s %s %s\n", SeverityIndicator(a.Severity), Bold(a.NutrientName),
				Dim(fmt.Sprintf("%d%% of daily target", a.PercentOfRDA)))
		}
		b.WriteString("\n")
	}

	b.WriteString(Dim("Updated " + HumanTimestampFrom(v.RefreshedAt, now)))
	return RenderBox("Today · "+v.Date, b.String())
}

func formatIntake(d *domain.DailyInsightData) string {
	rows := [][]string{
		{"Calories", OfTarget(d.TodayCalories, d.CalorieTarget, "kcal"), RenderTargetBar(d.CaloriePercent, targetBarWidth)},
		{"Protein", OfTarget(d.TodayProtein, d.ProteinTarget, "g"), RenderTargetBar(d.ProteinPercent, targetBarWidth)},
		{"Carbs", OfTarget(d.TodayCarbs, d.CarbsTarget, "g"), RenderTargetBar(d.CarbsPercent, targetBarWidth)},
		{"Fat", OfTarget(d.TodayFat, d.FatTarget, "g"), RenderTargetBar(d.FatPercent, targetBarWidth)},
		{"Fiber", OfTarget(d.TodayFiber, d.FiberTarget, "g"), RenderTargetBar(d.FiberPercent, targetBarWidth)},
		{"Water", OfTarget(d.TodayWater, d.WaterTarget, "ml"), RenderTargetBar(d.WaterPercent, targetBarWidth)},
	}
	out := RenderTable([]string{"", "TODAY", "OF TARGET"}, rows)

	meals := "no meals logged yet"
	if d.MealCount > 0 {
		names := make([]string, 0, len(d.Meals))
		for _, m := range d.Meals {
			names = append(names, string(m.Type))
		}
		meals = fmt.Sprintf("%d meals (%s)", d.MealCount, strings.Join(names, ", "))
	}
	streak := ""
	if d.LoggingStreak > 1 {
		streak = fmt.Sprintf(" · %d-day logging streak", d.LoggingStreak)
	}
	return out + Dim(meals+streak) + "\n"
}
