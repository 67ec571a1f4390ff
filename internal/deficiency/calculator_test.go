package deficiency

import (
	"testing"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// daily builds one intake per day for the given number of days ending at BaseTime.
func daily(nutrientID string, amount float64, days int) []domain.NutrientIntake {
	out := make([]domain.NutrientIntake, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, domain.NutrientIntake{
			NutrientID: nutrientID,
			Date:       domain.FormatDate(testutil.BaseTime.AddDate(0, 0, -i)),
			Amount:     amount,
		})
	}
	return out
}

func input(history ...[]domain.NutrientIntake) Input {
	in := Input{Now: testutil.BaseTime, DaysUsingApp: 30, DaysSinceLastLog: 0, DaysWithData: 7}
	for _, h := range history {
		in.History = append(in.History, h...)
	}
	return in
}

type fakeDismissals map[string]bool

func (f fakeDismissals) IsDismissed(id string, sev domain.Severity, _ time.Time) bool {
	return f[domain.DismissalKey(id, sev)]
}

func TestCalculate_Gates(t *testing.T) {
	lowIron := daily("iron", 2, 7)
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"new user", func(in *Input) { in.DaysUsingApp = 6 }},
		{"stale logging", func(in *Input) { in.DaysSinceLastLog = 4 }},
		{"sparse week", func(in *Input) { in.DaysWithData = 4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := input(lowIron)
			tt.mutate(&in)
			res := Calculate(in)
			assert.False(t, res.HasAlerts)
			assert.NotNil(t, res.Checks)
			assert.Empty(t, res.Checks)
		})
	}
}

func TestCalculate_SeverityBands(t *testing.T) {
	tests := []struct {
		amount float64
		want   domain.Severity
		alert  bool
	}{
		{12.6, "", false},                   // 70%
		{12.4, domain.SeverityNotice, true}, // 69%
		{9, domain.SeverityNotice, true},    // 50%
		{8.8, domain.SeverityWarning, true}, // 49%
		{5.4, domain.SeverityWarning, true}, // 30%
		{5.2, domain.SeverityConcern, true}, // 29%
		{0, domain.SeverityConcern, true},
	}
	for _, tt := range tests {
		res := Calculate(input(daily("iron", tt.amount, 7)))
		if !tt.alert {
			assert.False(t, res.HasAlerts, "amount %v", tt.amount)
			continue
		}
		require.Len(t, res.Checks, 1, "amount %v", tt.amount)
		assert.Equal(t, tt.want, res.Checks[0].Severity, "amount %v", tt.amount)
	}
}

func TestCalculate_RequiresFiveDaysPerNutrient(t *testing.T) {
	res := Calculate(input(daily("iron", 2, 4)))
	assert.False(t, res.HasAlerts)

	res = Calculate(input(daily("iron", 2, 5)))
	require.Len(t, res.Checks, 1)
	assert.Equal(t, 11, res.Checks[0].PercentOfRDA)
	assert.InDelta(t, 2.0, res.Checks[0].AvgIntake, 0.001)
}

func TestCalculate_TierTwoSuppressesNotice(t *testing.T) {
	// magnesium RDA 420: 252 = 60% notice, 168 = 40% warning
	res := Calculate(input(daily("magnesium", 252, 7)))
	assert.False(t, res.HasAlerts)

	res = Calculate(input(daily("magnesium", 168, 7)))
	require.Len(t, res.Checks, 1)
	assert.Equal(t, domain.SeverityWarning, res.Checks[0].Severity)
	assert.Equal(t, 2, res.Checks[0].Tier)
}

func TestCalculate_TierThreeNeverAlerts(t *testing.T) {
	res := Calculate(input(daily("vitamin_a", 0, 7)))
	assert.False(t, res.HasAlerts)
}

func TestCalculate_SortsAndCaps(t *testing.T) {
	res := Calculate(input(
		daily("iron", 10, 7),       // notice, tier 1
		daily("magnesium", 100, 7), // concern, tier 2
		daily("calcium", 400, 7),   // warning, tier 1
		daily("vitamin_d", 2, 7),   // concern, tier 1
		daily("zinc", 4, 7),        // warning, tier 2
	))

	require.True(t, res.HasAlerts)
	require.Len(t, res.Checks, MaxAlerts)
	assert.Equal(t, "vitamin_d", res.Checks[0].NutrientID)
	assert.Equal(t, "magnesium", res.Checks[1].NutrientID)
	assert.Equal(t, "calcium", res.Checks[2].NutrientID)
}

func TestCalculate_SkipsDismissed(t *testing.T) {
	in := input(daily("iron", 2, 7), daily("calcium", 400, 7))
	in.Dismissals = fakeDismissals{"iron_concern": true}

	res := Calculate(in)
	require.Len(t, res.Checks, 1)
	assert.Equal(t, "calcium", res.Checks[0].NutrientID)

	// a dismissal at another severity does not hide the alert
	in.Dismissals = fakeDismissals{"iron_warning": true}
	res = Calculate(in)
	assert.Len(t, res.Checks, 2)
}

func TestCalculate_FoodSuggestionsCapped(t *testing.T) {
	res := Calculate(input(daily("iron", 2, 7)))
	require.Len(t, res.Checks, 1)
	assert.Len(t, res.Checks[0].FoodSuggestions, MaxFoodSuggestions)
	assert.Equal(t, "spinach", res.Checks[0].FoodSuggestions[0])
	assert.NotEmpty(t, res.Checks[0].Message)
}

func TestCatalog(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range Catalog() {
		assert.False(t, seen[n.ID], "duplicate %s", n.ID)
		seen[n.ID] = true
		assert.Greater(t, n.RDA, 0.0)
		assert.Contains(t, []int{1, 2, 3}, n.Tier)
		assert.NotEmpty(t, n.Foods)
	}
	_, ok := Lookup("fiber")
	assert.True(t, ok)
	assert.Nil(t, FoodSuggestions("unobtainium"))
}
