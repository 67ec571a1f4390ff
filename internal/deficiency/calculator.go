// Package deficiency detects nutrient gaps from a trailing week of intake
// and ranks them into at most three alerts.
package deficiency

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

const (
	MinDaysUsingApp     = 7
	MaxDaysSinceLastLog = 3
	MinDaysWithData     = 5
	MinNutrientDays     = 5
	MaxAlerts           = 3
)

// Dismissals answers whether an alert key is currently dismissed.
type Dismissals interface {
	IsDismissed(nutrientID string, severity domain.Severity, now time.Time) bool
}

// Input is everything the calculator needs for one evaluation.
type Input struct {
	Now              time.Time
	DaysUsingApp     int
	DaysSinceLastLog int
	// DaysWithData counts days in the trailing week with any food logged.
	DaysWithData int
	// History holds daily intake totals for the trailing week.
	History    []domain.NutrientIntake
	Dismissals Dismissals
}

// Result is the ranked alert list.
type Result struct {
	Checks    []domain.DeficiencyCheck `json:"checks"`
	HasAlerts bool                     `json:"hasAlerts"`
}

func empty() Result {
	return Result{Checks: []domain.DeficiencyCheck{}}
}

// SeverityFor maps percent of RDA to a severity band. ok is false at 70
// percent and above.
func SeverityFor(percent int) (domain.Severity, bool) {
	switch {
	case percent >= 70:
		return "", false
	case percent >= 50:
		return domain.SeverityNotice, true
	case percent >= 30:
		return domain.SeverityWarning, true
	default:
		return domain.SeverityConcern, true
	}
}

// Calculate runs the gates, then evaluates every alertable nutrient.
func Calculate(in Input) Result {
	if in.DaysUsingApp < MinDaysUsingApp ||
		in.DaysSinceLastLog < 0 || in.DaysSinceLastLog > MaxDaysSinceLastLog ||
		in.DaysWithData < MinDaysWithData {
		return empty()
	}

	type agg struct {
		days  map[string]bool
		total float64
	}
	perNutrient := map[string]*agg{}
	for _, h := range in.History {
		a := perNutrient[h.NutrientID]
		if a == nil {
			a = &agg{days: map[string]bool{}}
			perNutrient[h.NutrientID] = a
		}
		a.days[h.Date] = true
		a.total += h.Amount
	}

	checks := []domain.DeficiencyCheck{}
	for _, n := range catalog {
		if !n.Alertable() {
			continue
		}
		a := perNutrient[n.ID]
		if a == nil || len(a.days) < MinNutrientDays {
			continue
		}
		avg := a.total / float64(len(a.days))
		percent := int(math.Round(avg / n.RDA * 100))
		sev, ok := SeverityFor(percent)
		if !ok {
			continue
		}
		if n.Tier == 2 && sev == domain.SeverityNotice {
			continue
		}
		if in.Dismissals != nil && in.Dismissals.IsDismissed(n.ID, sev, in.Now) {
			continue
		}
		checks = append(checks, domain.DeficiencyCheck{
			NutrientID:      n.ID,
			NutrientName:    n.Name,
			Unit:            n.Unit,
			AvgIntake:       math.Round(avg*10) / 10,
			RDATarget:       n.RDA,
			PercentOfRDA:    percent,
			Severity:        sev,
			Message:         message(n, percent, sev),
			FoodSuggestions: FoodSuggestions(n.ID),
			Tier:            n.Tier,
		})
	}

	sort.SliceStable(checks, func(i, j int) bool {
		ri, rj := domain.SeverityRank(checks[i].Severity), domain.SeverityRank(checks[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return checks[i].Tier < checks[j].Tier
	})
	if len(checks) > MaxAlerts {
		checks = checks[:MaxAlerts]
	}
	return Result{Checks: checks, HasAlerts: len(checks) > 0}
}

func message(n Nutrient, percent int, sev domain.Severity) string {
	if n.Tier == 1 {
		switch sev {
		case domain.SeverityConcern:
			return fmt.Sprintf("%s has averaged only %d%% of your daily target this week. It plays a key role in how you feel day to day, so it's worth adding more.", n.Name, percent)
		case domain.SeverityWarning:
			return fmt.Sprintf("%s has averaged %d%% of your daily target this week. A few additions could make a real difference.", n.Name, percent)
		default:
			return fmt.Sprintf("%s is at %d%% of your daily target this week, with some room to grow.", n.Name, percent)
		}
	}
	return fmt.Sprintf("%s has averaged %d%% of your daily target this week. Consider adding a source or two.", n.Name, percent)
}
