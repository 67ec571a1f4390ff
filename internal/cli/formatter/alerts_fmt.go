package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

// FormatAlerts renders active deficiency alerts, most severe first.
func FormatAlerts(alerts []domain.DeficiencyCheck) string {
	if len(alerts) == 0 {
		return StyleGreen.Render("No nutrient alerts this week.") + "\n"
	}

	var b strings.Builder
	for i, a := range alerts {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s %s\n", SeverityIndicator(a.Severity), Bold(a.NutrientName), Dim(a.NutrientID))
		fmt.Fprintf(&b, "  avg %s of %s %s\n",
			Amount(a.AvgIntake, a.Unit), Amount(a.RDATarget, a.Unit),
			SeverityColor(a.Severity).Render(fmt.Sprintf("(%d%%)", a.PercentOfRDA)))
		if a.Message != "" {
			b.WriteString("  " + StyleFg.Render(a.Message) + "\n")
		}
		if len(a.FoodSuggestions) > 0 {
			b.WriteString("  " + Dim("try: "+strings.Join(a.FoodSuggestions, ", ")) + "\n")
		}
	}
	return RenderBox("Nutrient alerts", strings.TrimRight(b.String(), "\n"))
}

// FormatDismissal confirms one dismissed alert.
func FormatDismissal(d domain.AlertDismissal) string {
	return fmt.Sprintf("%s %s %s until %s\n", StyleGreen.Render("✔"), Bold(d.NutrientID),
		SeverityColor(d.Severity).Render(string(d.Severity)), d.ExpiresAt.Format("Mon Jan 2 15:04"))
}

// FormatDismissals lists the dismissals in effect.
func FormatDismissals(list []domain.AlertDismissal, now time.Time) string {
	if len(list) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(list))
	for _, d := range list {
		left := d.ExpiresAt.Sub(now).Round(time.Hour)
		rows = append(rows, []string{d.NutrientID, string(d.Severity), Dim(fmt.Sprintf("%s left", left))})
	}
	return "\n" + Header("Dismissed") + "\n" + RenderTable([]string{"NUTRIENT", "SEVERITY", "EXPIRES"}, rows)
}
