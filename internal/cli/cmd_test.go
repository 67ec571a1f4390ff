package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/nutrimind/internal/insight"
	"github.com/alexanderramin/nutrimind/internal/repository"
	"github.com/alexanderramin/nutrimind/internal/service"
	"github.com/alexanderramin/nutrimind/internal/state"
	"github.com/alexanderramin/nutrimind/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseAt = "2026-03-10T14:00:00Z"

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

type testEnv struct {
	app      *App
	profiles *repository.SQLiteProfileRepo
}

// testApp wires a full App backed by an in-memory DB with no model.
func testApp(t *testing.T) testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	profiles := repository.NewSQLiteProfileRepo(db)
	foods := repository.NewSQLiteFoodLogRepo(db)
	water := repository.NewSQLiteWaterLogRepo(db)
	nutrients := repository.NewSQLiteNutrientLogRepo(db)
	states := repository.NewSQLiteStateRepo(db)

	cache := state.NewDailyCacheStore(states, 0, 0)
	dismissals := state.NewDismissalStore(states, 0)
	collector := service.NewCollector(profiles, foods, water, nutrients, dismissals)
	cfg := insight.DefaultConfig()
	cfg.Enabled = false

	svc := service.NewInsightService(service.Deps{
		Profiles:   profiles,
		Foods:      foods,
		Water:      water,
		Nutrients:  nutrients,
		UoW:        testutil.NewTestUoW(db),
		Generator:  insight.NewGenerator(cfg, collector, cache, nil, nil),
		Cache:      cache,
		Dismissals: dismissals,
		Legacy:     state.NewLegacyInsightsStore(states),
	})
	return testEnv{
		app:      &App{Service: svc, Clock: func() time.Time { return testutil.BaseTime }},
		profiles: profiles,
	}
}

func (e testEnv) boot(t *testing.T) {
	t.Helper()
	require.NoError(t, e.app.Service.Boot(context.Background(), testutil.BaseTime))
}

// executeCmd runs a fresh command tree and returns output without ANSI codes.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	app.at = timeValue{}
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

func TestLogMealThenToday(t *testing.T) {
	env := testApp(t)
	env.boot(t)

	out, err := executeCmd(t, env.app, "log", "meal", "--type", "breakfast",
		"--item", "oats:350:12:60:6:8", "--item", "coffee:50", "--at", "2026-03-10T08:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "breakfast oats, coffee 400 kcal")

	out, err = executeCmd(t, env.app, "today")
	require.NoError(t, err)
	assert.Contains(t, out, "TODAY · 2026-03-10")
	assert.Contains(t, out, "400 / 2000 kcal")
	assert.Contains(t, out, "1 meals (breakfast)")
}

func TestTodayJSON(t *testing.T) {
	env := testApp(t)
	env.boot(t)
	_, err := executeCmd(t, env.app, "log", "water", "500")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "today", "--json")
	require.NoError(t, err)

	var view service.TodayView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "2026-03-10", view.Date)
	require.NotNil(t, view.Snapshot)
	assert.Equal(t, 500.0, view.Snapshot.TodayWater)
	assert.NotNil(t, view.Headline)
}

func TestToday_WithoutProfileFails(t *testing.T) {
	env := testApp(t)
	_, err := executeCmd(t, env.app, "today")
	assert.ErrorIs(t, err, insight.ErrDataUnavailable)
}

func TestQuestionsAndAsk(t *testing.T) {
	env := testApp(t)
	env.boot(t)
	_, err := executeCmd(t, env.app, "log", "meal", "-t", "lunch", "-i", "salad:600:30")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "questions")
	require.NoError(t, err)
	assert.Contains(t, out, "calorie_pacing")
	assert.Contains(t, out, "micronutrient_focus")

	out, err = executeCmd(t, env.app, "ask", "calorie_pacing")
	require.NoError(t, err)
	assert.Contains(t, out, "◇ summary")

	_, err = executeCmd(t, env.app, "ask", "favorite_color")
	assert.ErrorIs(t, err, insight.ErrUnknownQuestion)

	_, err = executeCmd(t, env.app, "ask")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question id required")
}

func TestDigestAndInsights(t *testing.T) {
	env := testApp(t)
	env.boot(t)
	_, err := executeCmd(t, env.app, "log", "meal", "-t", "lunch", "-i", "salad:600:30")
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, "digest")
	assert.ErrorIs(t, err, service.ErrInsightsDisabled)
	assert.Contains(t, err.Error(), "nutrimind insights enable")

	out, err := executeCmd(t, env.app, "insights", "enable")
	require.NoError(t, err)
	assert.Contains(t, out, "Insights enabled.")

	out, err = executeCmd(t, env.app, "digest")
	require.NoError(t, err)
	assert.Contains(t, out, "● enabled · last run ready")
	assert.NotEmpty(t, env.app.Service.LegacyInsights().Insights)

	_, err = executeCmd(t, env.app, "insights", "clear")
	require.NoError(t, err)
	out, err = executeCmd(t, env.app, "insights", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No insights yet")
}

func TestAlertsDismissAndSweep(t *testing.T) {
	env := testApp(t)
	ctx := context.Background()
	require.NoError(t, env.profiles.Upsert(ctx, testutil.NewProfile(testutil.BaseTime, 10)))
	env.boot(t)

	for i := 0; i < 5; i++ {
		at := testutil.BaseTime.AddDate(0, 0, -i).Add(-4 * time.Hour).Format(time.RFC3339)
		_, err := executeCmd(t, env.app, "log", "meal", "-t", "breakfast", "-i", "porridge:1900:90:250:60:26", "--at", at)
		require.NoError(t, err)
		_, err = executeCmd(t, env.app, "log", "nutrient", "iron", "3", "--at", at)
		require.NoError(t, err)
	}

	out, err := executeCmd(t, env.app, "alerts")
	require.NoError(t, err)
	assert.Contains(t, out, "● CONCERN Iron iron")
	assert.Contains(t, out, "avg 3 mg of 18 mg (17%)")

	out, err = executeCmd(t, env.app, "alerts", "dismiss", "iron", "concern")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ iron concern until Tue Mar 17 14:00")

	out, err = executeCmd(t, env.app, "alerts")
	require.NoError(t, err)
	assert.Contains(t, out, "No nutrient alerts this week.")
	assert.Contains(t, out, "DISMISSED")

	_, err = executeCmd(t, env.app, "alerts", "dismiss", "iron", "severe")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	out, err = executeCmd(t, env.app, "alerts", "sweep", "--at", "2026-03-18T00:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 expired dismissal(s).")
}

func TestGoal(t *testing.T) {
	env := testApp(t)
	env.boot(t)

	out, err := executeCmd(t, env.app, "goal", "set", "--goal", "lose", "--calories", "1800")
	require.NoError(t, err)
	assert.Contains(t, out, "lose")
	assert.Contains(t, out, "1800 kcal")
	assert.Contains(t, out, "120 g")

	_, err = executeCmd(t, env.app, "goal", "set", "--goal", "bulk")
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	out, err = executeCmd(t, env.app, "goal")
	require.NoError(t, err)
	assert.Contains(t, out, "1800 kcal")
}

func TestLogValidation(t *testing.T) {
	env := testApp(t)
	env.boot(t)

	_, err := executeCmd(t, env.app, "log", "water", "lots")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = executeCmd(t, env.app, "log", "water", "0")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = executeCmd(t, env.app, "log", "nutrient", "unobtainium", "3")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = executeCmd(t, env.app, "log", "meal", "-t", "brunch", "-i", "eggs:200")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = executeCmd(t, env.app, "log", "meal", "-t", "lunch")
	require.Error(t, err)
	_, err = executeCmd(t, env.app, "today", "--at", "yesterday")
	require.Error(t, err)
}

func TestModelWithoutProvider(t *testing.T) {
	env := testApp(t)
	for _, args := range [][]string{{"model", "status"}, {"model", "pull"}, {"model", "unload"}} {
		_, err := executeCmd(t, env.app, args...)
		assert.ErrorIs(t, err, service.ErrNoModel, args)
	}
}

func TestParseFoodItem(t *testing.T) {
	tests := []struct {
		raw     string
		want    service.FoodItem
		wantErr bool
	}{
		{raw: "oats:350", want: service.FoodItem{Name: "oats", Calories: 350}},
		{raw: "greek yogurt:150:15:8:4:0.5", want: service.FoodItem{Name: "greek yogurt", Calories: 150, Protein: 15, Carbs: 8, Fat: 4, Fiber: 0.5}},
		{raw: " tofu : 200 : 20", want: service.FoodItem{Name: "tofu", Calories: 200, Protein: 20}},
		{raw: "oats", wantErr: true},
		{raw: "oats:lots", wantErr: true},
		{raw: "a:1:2:3:4:5:6", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseFoodItem(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeValue(t *testing.T) {
	var v timeValue
	assert.Equal(t, "", v.String())
	assert.Equal(t, "time", v.Type())

	require.NoError(t, v.Set(baseAt))
	assert.True(t, v.t.Equal(testutil.BaseTime))
	assert.Equal(t, "2026-03-10T14:00:00Z", v.String())

	require.NoError(t, v.Set("2026-03-10"))
	assert.Equal(t, 0, v.t.Hour())

	assert.Error(t, v.Set("noon"))
}

func TestAtFlagOverridesClock(t *testing.T) {
	env := testApp(t)
	env.boot(t)

	_, err := executeCmd(t, env.app, "log", "water", "250", "--at", "2026-03-09T09:00:00Z")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "today", "--json", "--at", "2026-03-09T20:00:00Z")
	require.NoError(t, err)
	var view service.TodayView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "2026-03-09", view.Date)
	assert.Equal(t, 250.0, view.Snapshot.TodayWater)
}
