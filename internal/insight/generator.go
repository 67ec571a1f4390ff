package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/nutrimind/internal/analyzer"
	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/headline"
	"github.com/alexanderramin/nutrimind/internal/llm"
	"github.com/alexanderramin/nutrimind/internal/questions"
	"github.com/alexanderramin/nutrimind/internal/state"
)

// SnapshotSource collects a fresh snapshot for the given time.
type SnapshotSource interface {
	Collect(ctx context.Context, now time.Time) (*domain.DailyInsightData, error)
}

// Generator turns a question into a narrative: cache hit, analyze, decide,
// generate, write back. At most one model call runs at a time; a request
// arriving while one is in flight gets the fallback instead of waiting.
type Generator struct {
	cfg    Config
	source SnapshotSource
	cache  *state.DailyCacheStore
	model  llm.ModelProvider
	logger *slog.Logger

	inFlight atomic.Bool
}

// NewGenerator wires a generator. model may be nil, in which case every
// response is a fallback.
func NewGenerator(cfg Config, source SnapshotSource, cache *state.DailyCacheStore, model llm.ModelProvider, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{cfg: cfg, source: source, cache: cache, model: model, logger: logger}
}

// Refresh collects a new snapshot when the cache needs it (or force is set),
// scores the catalog, picks the headline and stores the result.
func (g *Generator) Refresh(ctx context.Context, now time.Time, force bool) (domain.DailyInsightCache, error) {
	if !force && !g.cache.NeedsRefresh(now) {
		c, _ := g.cache.Cache()
		return c, nil
	}

	g.cache.SetLoading(true)
	defer g.cache.SetLoading(false)

	data, err := g.source.Collect(ctx, now)
	if err != nil {
		return domain.DailyInsightCache{}, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if data == nil {
		return domain.DailyInsightCache{}, ErrDataUnavailable
	}

	scores := questions.Summaries(questions.Score(data))
	h := headline.Select(data, now)
	c, err := g.cache.Refresh(ctx, now, data, scores, &h)
	if err != nil {
		g.logger.Warn("daily cache not persisted", "error", err)
	}
	return c, nil
}

// Generate returns the narrative for one question. Only ErrUnknownQuestion
// and ErrDataUnavailable are returned; model problems resolve to fallbacks.
func (g *Generator) Generate(ctx context.Context, id domain.QuestionID, now time.Time) (domain.DailyInsightResponse, error) {
	def, ok := questions.Lookup(id)
	if !ok {
		return domain.DailyInsightResponse{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}

	if cached, ok := g.cache.Response(id, now); ok {
		return cached, nil
	}

	if g.cache.Stale(now) {
		if _, err := g.Refresh(ctx, now, true); err != nil {
			return domain.DailyInsightResponse{}, err
		}
	}
	data := g.cache.Snapshot()
	if data == nil {
		return domain.DailyInsightResponse{}, ErrDataUnavailable
	}

	analysis, err := analyzer.Analyze(id, data, now)
	if err != nil {
		return domain.DailyInsightResponse{}, err
	}

	resp, reason := g.narrate(ctx, def, analysis, now)
	if reason != ReasonNone {
		g.logger.Debug("insight fallback", "question", string(id), "reason", string(reason))
	}

	if err := g.cache.PutResponse(ctx, resp); err != nil {
		g.logger.Warn("insight response not persisted", "question", string(id), "error", err)
	}
	return resp, nil
}

// Analyze exposes the analysis behind a question for the current snapshot.
func (g *Generator) Analyze(ctx context.Context, id domain.QuestionID, now time.Time) (domain.QuestionAnalysis, error) {
	if _, ok := questions.Lookup(id); !ok {
		return domain.QuestionAnalysis{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}
	if g.cache.Stale(now) {
		if _, err := g.Refresh(ctx, now, true); err != nil {
			return domain.QuestionAnalysis{}, err
		}
	}
	data := g.cache.Snapshot()
	if data == nil {
		return domain.QuestionAnalysis{}, ErrDataUnavailable
	}
	return analyzer.Analyze(id, data, now)
}

// InFlight reports whether a model call is running.
func (g *Generator) InFlight() bool {
	return g.inFlight.Load()
}

func (g *Generator) narrate(ctx context.Context, def questions.Definition, a domain.QuestionAnalysis, now time.Time) (domain.DailyInsightResponse, FallbackReason) {
	fallback := func(reason FallbackReason) (domain.DailyInsightResponse, FallbackReason) {
		return g.response(def, a.FallbackText, domain.SourceFallback, nil, now), reason
	}

	switch {
	case !g.cfg.Enabled:
		return fallback(ReasonFeatureDisabled)
	case g.model == nil || g.model.Status() != llm.StatusReady:
		return fallback(ReasonModelNotReady)
	}
	if !g.inFlight.CompareAndSwap(false, true) {
		return fallback(ReasonInFlight)
	}
	defer g.inFlight.Store(false)

	raw, err := g.model.Generate(ctx, SystemPrompt(), QuestionPrompt(def, a.DataBlock), g.cfg.MaxTokens)
	if err != nil {
		g.cache.SetLastError(err.Error())
		reason := ReasonModelError
		if errors.Is(err, llm.ErrModelNotReady) {
			reason = ReasonModelNotReady
		}
		g.logger.Info("model generation failed", "question", string(def.ID), "error", err)
		return fallback(reason)
	}

	parsed := ParseResponse(raw)
	if strings.TrimSpace(parsed.Text) == "" {
		g.cache.SetLastError("model returned empty output")
		return fallback(ReasonEmptyOutput)
	}
	g.cache.SetLastError("")
	return g.response(def, parsed.Text, domain.SourceLLM, parsed.IssueStrings(), now), ReasonNone
}

func (g *Generator) response(def questions.Definition, text string, source domain.ResponseSource, issues []string, now time.Time) domain.DailyInsightResponse {
	return domain.DailyInsightResponse{
		QuestionID:  def.ID,
		Text:        text,
		Icon:        def.Icon,
		Source:      source,
		GeneratedAt: now,
		Date:        domain.FormatDate(now),
		Issues:      issues,
	}
}
