package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/service"
)

// FormatInsight renders one narrative with its analyzer cards.
func FormatInsight(title string, resp domain.DailyInsightResponse, cards []domain.DataCard) string {
	var b strings.Builder
	b.WriteString(resp.Icon + "  " + StyleFg.Render(resp.Text) + "\n")

	if len(cards) > 0 {
		b.WriteString("\n")
		for _, c := range cards {
			line := fmt.Sprintf("  %s %s", Dim(c.Label+":"), CardStyle(c.Status).Render(c.Value))
			if c.SubValue != "" {
				line += " " + Dim(c.SubValue)
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n" + SourceBadge(resp.Source))
	if len(resp.Issues) > 0 {
		b.WriteString(Dim(fmt.Sprintf(" · %d adjustments", len(resp.Issues))))
	}
	return RenderBox(title, b.String())
}

// FormatLegacyInsights renders the digest list.
func FormatLegacyInsights(v service.LegacyInsightsView, now time.Time) string {
	var b strings.Builder
	state := StyleYellow.Render("○ disabled")
	if v.Enabled {
		state = StyleGreen.Render("● enabled")
	}
	b.WriteString(state)
	if v.Status != "" {
		b.WriteString(Dim(" · last run " + v.Status))
	}
	if v.LastError != "" {
		b.WriteString("\n" + StyleRed.Render(v.LastError))
	}
	b.WriteString("\n\n")

	if len(v.Insights) == 0 {
		b.WriteString(Dim("No insights yet. Run nutrimind digest."))
		return RenderBox("Insights", b.String())
	}
	for _, in := range v.Insights {
		fmt.Fprintf(&b, "%s  %s\n   %s\n", in.Icon, StyleFg.Render(in.Text),
			Dim(fmt.Sprintf("%s · %s", in.Category, HumanTimestampFrom(in.CreatedAt, now))))
	}
	return RenderBox("Insights", strings.TrimRight(b.String(), "\n"))
}
