package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/nutrimind/internal/db"
	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/insight"
	"github.com/alexanderramin/nutrimind/internal/llm"
	"github.com/alexanderramin/nutrimind/internal/questions"
	"github.com/alexanderramin/nutrimind/internal/repository"
	"github.com/alexanderramin/nutrimind/internal/state"
	"github.com/google/uuid"
)

// Deps wires an InsightService. Model may be nil.
type Deps struct {
	Profiles   repository.ProfileRepo
	Foods      repository.FoodLogRepo
	Water      repository.WaterLogRepo
	Nutrients  repository.NutrientLogRepo
	UoW        db.UnitOfWork
	Generator  *insight.Generator
	Cache      *state.DailyCacheStore
	Dismissals *state.DismissalStore
	Legacy     *state.LegacyInsightsStore
	Model      llm.ModelProvider
	ModelName  string
	Narration  bool
}

// InsightService is the single entry point for the CLI and the HTTP API.
type InsightService struct {
	profiles   repository.ProfileRepo
	foods      repository.FoodLogRepo
	water      repository.WaterLogRepo
	nutrients  repository.NutrientLogRepo
	uow        db.UnitOfWork
	generator  *insight.Generator
	cache      *state.DailyCacheStore
	dismissals *state.DismissalStore
	legacy     *state.LegacyInsightsStore
	model      llm.ModelProvider
	modelName  string
	narration  bool
	observer   UseCaseObserver
}

func NewInsightService(d Deps, observers ...UseCaseObserver) *InsightService {
	return &InsightService{
		profiles:   d.Profiles,
		foods:      d.Foods,
		water:      d.Water,
		nutrients:  d.Nutrients,
		uow:        d.UoW,
		generator:  d.Generator,
		cache:      d.Cache,
		dismissals: d.Dismissals,
		legacy:     d.Legacy,
		model:      d.Model,
		modelName:  d.ModelName,
		narration:  d.Narration,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Boot restores persisted state, creates the profile on first run, drops
// expired dismissals and picks up an installed model.
func (s *InsightService) Boot(ctx context.Context, now time.Time) error {
	if err := s.cache.Load(ctx); err != nil {
		return fmt.Errorf("restoring daily cache: %w", err)
	}
	if err := s.dismissals.Load(ctx); err != nil {
		return fmt.Errorf("restoring dismissals: %w", err)
	}
	if err := s.legacy.Load(ctx); err != nil {
		return fmt.Errorf("restoring insights: %w", err)
	}
	if _, err := s.EnsureProfile(ctx, now); err != nil {
		return err
	}
	if _, err := s.dismissals.Sweep(ctx, now); err != nil {
		return fmt.Errorf("sweeping dismissals: %w", err)
	}
	s.syncModel(ctx)
	return nil
}

// syncModel re-reads the runtime when the model is not known to be ready,
// so a model installed outside this process is used without a status call.
func (s *InsightService) syncModel(ctx context.Context) {
	if s.model == nil || !s.narration {
		return
	}
	switch s.model.Status() {
	case llm.StatusReady, llm.StatusDownloading, llm.StatusLoading:
		return
	}
	s.model.Refresh(ctx)
}

// EnsureProfile returns the profile, creating the default one when missing.
func (s *InsightService) EnsureProfile(ctx context.Context, now time.Time) (*domain.Profile, error) {
	p, err := s.profiles.Get(ctx)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	p = DefaultProfile(now)
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Today refreshes the cache if needed and returns the home view.
func (s *InsightService) Today(ctx context.Context, now time.Time, force bool) (view *TodayView, err error) {
	startedAt := time.Now()
	fields := map[string]any{"force": force}
	defer s.observe(ctx, "today", startedAt, fields, &err)

	c, err := s.current(ctx, now, force)
	if err != nil {
		return nil, err
	}

	view = &TodayView{
		Date:        c.Date,
		Headline:    c.Headline,
		Snapshot:    c.Data,
		Alerts:      c.Data.ActiveAlerts,
		RefreshedAt: c.LastDataUpdate,
		Suggestions: []QuestionView{},
	}
	for _, q := range questions.Suggested(c.Data, SuggestionLimit) {
		view.Suggestions = append(view.Suggestions, newQuestionView(q))
	}
	fields["suggestions"] = len(view.Suggestions)
	fields["alerts"] = len(view.Alerts)
	return view, nil
}

// current returns the cache after a refresh, requiring a snapshot.
func (s *InsightService) current(ctx context.Context, now time.Time, force bool) (domain.DailyInsightCache, error) {
	c, err := s.generator.Refresh(ctx, now, force)
	if err != nil {
		return c, err
	}
	if c.Data == nil {
		return c, insight.ErrDataUnavailable
	}
	return c, nil
}

// Questions scores the full catalog, in catalog order.
func (s *InsightService) Questions(ctx context.Context, now time.Time) ([]QuestionView, error) {
	c, err := s.current(ctx, now, false)
	if err != nil {
		return nil, err
	}
	scored := questions.Score(c.Data)
	out := make([]QuestionView, 0, len(scored))
	for _, q := range scored {
		out = append(out, newQuestionView(q))
	}
	return out, nil
}

// Ask returns the narrative for one question.
func (s *InsightService) Ask(ctx context.Context, id domain.QuestionID, now time.Time) (resp domain.DailyInsightResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"question": string(id)}
	defer s.observe(ctx, "ask", startedAt, fields, &err)

	if _, ok := questions.Lookup(id); !ok {
		return resp, fmt.Errorf("%w: %s", insight.ErrUnknownQuestion, id)
	}
	if _, err = s.generator.Refresh(ctx, now, false); err != nil {
		return resp, err
	}
	s.syncModel(ctx)
	resp, err = s.generator.Generate(ctx, id, now)
	if err != nil {
		return resp, err
	}
	fields["source"] = string(resp.Source)
	return resp, nil
}

// Analysis returns the deterministic analysis behind a question.
func (s *InsightService) Analysis(ctx context.Context, id domain.QuestionID, now time.Time) (domain.QuestionAnalysis, error) {
	return s.generator.Analyze(ctx, id, now)
}

// Digest narrates the top suggestions into the legacy insights list.
func (s *InsightService) Digest(ctx context.Context, now time.Time) (added []domain.LegacyInsight, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer s.observe(ctx, "digest", startedAt, fields, &err)

	if !s.legacy.Enabled() {
		return nil, ErrInsightsDisabled
	}
	s.legacy.SetGenerating(true)
	defer s.legacy.SetGenerating(false)

	defer func() {
		if err != nil {
			s.legacy.SetStatus("error", err.Error())
			return
		}
		s.legacy.SetStatus("ready", "")
	}()

	c, err := s.current(ctx, now, false)
	if err != nil {
		return nil, err
	}
	s.syncModel(ctx)

	for _, q := range questions.Suggested(c.Data, SuggestionLimit) {
		resp, genErr := s.generator.Generate(ctx, q.Definition.ID, now)
		if genErr != nil {
			return nil, genErr
		}
		added = append(added, domain.LegacyInsight{
			ID:         uuid.New().String(),
			QuestionID: resp.QuestionID,
			Category:   q.Definition.Category,
			Text:       resp.Text,
			Icon:       resp.Icon,
			Source:     resp.Source,
			CreatedAt:  now,
		})
	}
	if err = s.legacy.Add(ctx, added...); err != nil {
		return nil, err
	}
	fields["insights"] = len(added)
	return added, nil
}

// SetInsightsEnabled flips the legacy insights flag.
func (s *InsightService) SetInsightsEnabled(ctx context.Context, enabled bool) error {
	return s.legacy.SetEnabled(ctx, enabled)
}

// ClearInsights removes the stored digest insights.
func (s *InsightService) ClearInsights(ctx context.Context) error {
	return s.legacy.Clear(ctx)
}

// LegacyInsights returns the stored digest list and its status.
func (s *InsightService) LegacyInsights() LegacyInsightsView {
	status, lastErr := s.legacy.Status()
	return LegacyInsightsView{
		Enabled:    s.legacy.Enabled(),
		Generating: s.legacy.Generating(),
		Status:     status,
		LastError:  lastErr,
		Insights:   s.legacy.Insights(),
	}
}

// Alerts returns the active deficiency alerts of the current snapshot.
func (s *InsightService) Alerts(ctx context.Context, now time.Time) ([]domain.DeficiencyCheck, error) {
	c, err := s.current(ctx, now, false)
	if err != nil {
		return nil, err
	}
	return c.Data.ActiveAlerts, nil
}

// DismissAlert hides one nutrient/severity alert for the dismissal TTL and
// re-evaluates alerts.
func (s *InsightService) DismissAlert(ctx context.Context, nutrientID string, severity domain.Severity, now time.Time) (d domain.AlertDismissal, err error) {
	startedAt := time.Now()
	fields := map[string]any{"nutrient": nutrientID, "severity": string(severity)}
	defer s.observe(ctx, "dismiss-alert", startedAt, fields, &err)

	if err = validateNutrient(nutrientID); err != nil {
		return d, err
	}
	if err = validateSeverity(severity); err != nil {
		return d, err
	}
	d, err = s.dismissals.Dismiss(ctx, nutrientID, severity, now)
	if err != nil {
		return d, err
	}
	if err = s.cache.Invalidate(ctx); err != nil {
		return d, err
	}
	return d, nil
}

// Dismissals lists dismissals still in effect at now.
func (s *InsightService) Dismissals(now time.Time) []domain.AlertDismissal {
	return s.dismissals.Active(now)
}

// SweepDismissals removes expired dismissals and returns how many were dropped.
func (s *InsightService) SweepDismissals(ctx context.Context, now time.Time) (int, error) {
	return s.dismissals.Sweep(ctx, now)
}

// LogMeal stores every item of one meal in a single transaction.
func (s *InsightService) LogMeal(ctx context.Context, mealType domain.MealType, items []FoodItem, at time.Time) (logs []*domain.FoodLog, err error) {
	startedAt := time.Now()
	fields := map[string]any{"meal_type": string(mealType), "items": len(items)}
	defer s.observe(ctx, "log-meal", startedAt, fields, &err)

	if err = validateMealType(mealType); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, invalid("a meal needs at least one item")
	}
	for _, it := range items {
		if err = validateFoodItem(it); err != nil {
			return nil, err
		}
	}

	for _, it := range items {
		logs = append(logs, &domain.FoodLog{
			ID:       uuid.New().String(),
			LoggedAt: at,
			MealType: mealType,
			FoodName: it.Name,
			Calories: it.Calories,
			Protein:  it.Protein,
			Carbs:    it.Carbs,
			Fat:      it.Fat,
			Fiber:    it.Fiber,
		})
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteFoodLogRepo(tx)
		for _, f := range logs {
			if err := repo.Create(ctx, f); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return logs, s.cache.Invalidate(ctx)
}

// LogWater stores one drink.
func (s *InsightService) LogWater(ctx context.Context, ml float64, at time.Time) (*domain.WaterLog, error) {
	if !validAmount(ml) || ml == 0 {
		return nil, invalid("water amount must be positive")
	}
	w := &domain.WaterLog{ID: uuid.New().String(), LoggedAt: at, AmountMl: ml}
	if err := s.water.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, s.cache.Invalidate(ctx)
}

// LogNutrient stores one micronutrient amount for the calendar day of at.
func (s *InsightService) LogNutrient(ctx context.Context, nutrientID string, amount float64, at time.Time) (*domain.NutrientLog, error) {
	if err := validateNutrient(nutrientID); err != nil {
		return nil, err
	}
	if !validAmount(amount) {
		return nil, invalid("nutrient amount must be a non-negative number")
	}
	n := &domain.NutrientLog{
		ID:         uuid.New().String(),
		Date:       domain.FormatDate(at),
		NutrientID: nutrientID,
		Amount:     amount,
		CreatedAt:  at,
	}
	if err := s.nutrients.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, s.cache.Invalidate(ctx)
}

// SetGoal updates the goal and targets.
func (s *InsightService) SetGoal(ctx context.Context, u GoalUpdate, now time.Time) (p *domain.Profile, err error) {
	startedAt := time.Now()
	fields := map[string]any{"goal": string(u.Goal)}
	defer s.observe(ctx, "set-goal", startedAt, fields, &err)

	p, err = s.EnsureProfile(ctx, now)
	if err != nil {
		return nil, err
	}
	if err = applyGoal(p, u); err != nil {
		return nil, err
	}
	if err = s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, s.cache.Invalidate(ctx)
}

// ModelStatus refreshes and reports the model runtime.
func (s *InsightService) ModelStatus(ctx context.Context) (ModelView, error) {
	if s.model == nil {
		return ModelView{}, ErrNoModel
	}
	status := s.model.Refresh(ctx)
	return ModelView{
		Model:        s.modelName,
		Status:       status,
		Capabilities: s.model.CheckCapabilities(ctx),
		Progress:     s.model.Progress(),
		LastError:    s.model.LastError(),
		Narration:    s.narration,
	}, nil
}

// ModelProgress returns the last download progress without touching the server.
func (s *InsightService) ModelProgress() (llm.Progress, llm.ModelStatus, error) {
	if s.model == nil {
		return llm.Progress{}, "", ErrNoModel
	}
	return s.model.Progress(), s.model.Status(), nil
}

// PullModel downloads and initializes the model. It blocks until done.
func (s *InsightService) PullModel(ctx context.Context, onProgress func(llm.Progress)) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"model": s.modelName}
	defer s.observe(ctx, "pull-model", startedAt, fields, &err)

	if s.model == nil {
		return ErrNoModel
	}
	return s.model.Download(ctx, onProgress)
}

// CancelPull cancels an in-flight download.
func (s *InsightService) CancelPull() error {
	if s.model == nil {
		return ErrNoModel
	}
	s.model.CancelDownload()
	return nil
}

// UnloadModel releases the model's memory on the server.
func (s *InsightService) UnloadModel(ctx context.Context) error {
	if s.model == nil {
		return ErrNoModel
	}
	return s.model.Unload(ctx)
}

// FoodLogs lists the food rows of one calendar day.
func (s *InsightService) FoodLogs(ctx context.Context, date string) ([]*domain.FoodLog, error) {
	return s.foods.ListByDate(ctx, date)
}
