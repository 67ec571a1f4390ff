package state

import (
	"context"
	"sync"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

// MaxLegacyInsights caps the stored digest list.
const MaxLegacyInsights = 20

type legacyPersisted struct {
	Insights []domain.LegacyInsight `json:"insights"`
	Enabled  bool                   `json:"enabled"`
}

// LegacyInsightsStore keeps the digest insights list and the feature flag.
// Generating, last error and status are transient.
type LegacyInsightsStore struct {
	persist Persister

	// saveMu orders writes to the persister with the mutations behind them.
	saveMu sync.Mutex

	mu         sync.Mutex
	insights   []domain.LegacyInsight
	enabled    bool
	generating bool
	lastError  string
	status     string
}

func NewLegacyInsightsStore(p Persister) *LegacyInsightsStore {
	return &LegacyInsightsStore{persist: p}
}

// Load restores insights and the enabled flag.
func (s *LegacyInsightsStore) Load(ctx context.Context) error {
	var v legacyPersisted
	if _, err := load(ctx, s.persist, KeyLegacyInsights, &v); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insights = v.Insights
	s.enabled = v.Enabled
	return nil
}

func (s *LegacyInsightsStore) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

func (s *LegacyInsightsStore) SetEnabled(ctx context.Context, enabled bool) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	s.enabled = enabled
	v := s.persistedLocked()
	s.mu.Unlock()
	return save(ctx, s.persist, KeyLegacyInsights, v)
}

// Insights returns the stored insights, newest first.
func (s *LegacyInsightsStore) Insights() []domain.LegacyInsight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LegacyInsight{}, s.insights...)
}

// Add prepends insights, newest first, keeping at most MaxLegacyInsights.
func (s *LegacyInsightsStore) Add(ctx context.Context, insights ...domain.LegacyInsight) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	next := make([]domain.LegacyInsight, 0, len(insights)+len(s.insights))
	next = append(next, insights...)
	next = append(next, s.insights...)
	if len(next) > MaxLegacyInsights {
		next = next[:MaxLegacyInsights]
	}
	s.insights = next
	v := s.persistedLocked()
	s.mu.Unlock()
	return save(ctx, s.persist, KeyLegacyInsights, v)
}

// Clear removes every stored insight; the enabled flag is kept.
func (s *LegacyInsightsStore) Clear(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	s.insights = nil
	v := s.persistedLocked()
	s.mu.Unlock()
	return save(ctx, s.persist, KeyLegacyInsights, v)
}

func (s *LegacyInsightsStore) persistedLocked() legacyPersisted {
	return legacyPersisted{Insights: append([]domain.LegacyInsight{}, s.insights...), Enabled: s.enabled}
}

func (s *LegacyInsightsStore) SetGenerating(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = v
}

func (s *LegacyInsightsStore) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

func (s *LegacyInsightsStore) SetStatus(status, lastError string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.lastError = lastError
}

func (s *LegacyInsightsStore) Status() (status, lastError string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.lastError
}
