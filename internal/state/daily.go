package state

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

const (
	DefaultSnapshotTTL = 15 * time.Minute
	DefaultResponseTTL = 2 * time.Hour
)

// DailyCacheStore owns the DailyInsightCache. Only the cache object is
// persisted; the loading flag and last error reset on every boot.
type DailyCacheStore struct {
	persist     Persister
	snapshotTTL time.Duration
	responseTTL time.Duration

	// saveMu orders writes to the persister with the mutations behind them.
	saveMu sync.Mutex

	mu        sync.Mutex
	cache     *domain.DailyInsightCache
	loading   bool
	lastError string
}

// NewDailyCacheStore creates an empty store. Non-positive TTLs use the defaults.
func NewDailyCacheStore(p Persister, snapshotTTL, responseTTL time.Duration) *DailyCacheStore {
	if snapshotTTL <= 0 {
		snapshotTTL = DefaultSnapshotTTL
	}
	if responseTTL <= 0 {
		responseTTL = DefaultResponseTTL
	}
	return &DailyCacheStore{persist: p, snapshotTTL: snapshotTTL, responseTTL: responseTTL}
}

// Load restores the persisted cache.
func (s *DailyCacheStore) Load(ctx context.Context) error {
	var c domain.DailyInsightCache
	found, err := load(ctx, s.persist, KeyDailyCache, &c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if found {
		if c.Responses == nil {
			c.Responses = map[domain.QuestionID]domain.DailyInsightResponse{}
		}
		s.cache = &c
	}
	return nil
}

// NeedsRefresh reports whether the cache is missing, from another day, or
// older than the snapshot TTL.
func (s *DailyCacheStore) NeedsRefresh(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache == nil ||
		s.cache.Date != domain.FormatDate(now) ||
		now.Sub(s.cache.LastDataUpdate) > s.snapshotTTL
}

// Invalidate forces the next NeedsRefresh to report true. Cached responses
// stay until their own TTL runs out.
func (s *DailyCacheStore) Invalidate(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.cache == nil {
		s.mu.Unlock()
		return nil
	}
	s.cache.LastDataUpdate = time.Time{}
	out := s.copyLocked()
	s.mu.Unlock()
	return save(ctx, s.persist, KeyDailyCache, out)
}

// Stale reports whether the cache is missing or from another calendar day.
func (s *DailyCacheStore) Stale(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache == nil || s.cache.Data == nil || s.cache.Date != domain.FormatDate(now)
}

// Refresh replaces the cache with a new snapshot. On the same day prior
// responses are kept, minus any from another date or past their TTL; on a
// new day they are cleared.
func (s *DailyCacheStore) Refresh(ctx context.Context, now time.Time, data *domain.DailyInsightData, scores []domain.QuestionScore, headline *domain.WidgetHeadlineData) (domain.DailyInsightCache, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	today := domain.FormatDate(now)

	s.mu.Lock()
	responses := map[domain.QuestionID]domain.DailyInsightResponse{}
	if s.cache != nil && s.cache.Date == today {
		for id, r := range s.cache.Responses {
			if r.Date == today && s.fresh(r, now) {
				responses[id] = r
			}
		}
	}
	s.cache = &domain.DailyInsightCache{
		Date:           today,
		Headline:       headline,
		Data:           data,
		Scores:         scores,
		Responses:      responses,
		LastDataUpdate: now,
	}
	out := s.copyLocked()
	s.mu.Unlock()

	return out, save(ctx, s.persist, KeyDailyCache, out)
}

func (s *DailyCacheStore) fresh(r domain.DailyInsightResponse, now time.Time) bool {
	return now.Sub(r.GeneratedAt) < s.responseTTL
}

// Response returns a cached response for id when it belongs to today and is
// younger than the response TTL.
func (s *DailyCacheStore) Response(id domain.QuestionID, now time.Time) (domain.DailyInsightResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil || s.cache.Date != domain.FormatDate(now) {
		return domain.DailyInsightResponse{}, false
	}
	r, ok := s.cache.Responses[id]
	if !ok || r.Date != s.cache.Date || !s.fresh(r, now) {
		return domain.DailyInsightResponse{}, false
	}
	return r, true
}

// PutResponse stores r keyed by its question id. A response for another
// date than the cache's is dropped.
func (s *DailyCacheStore) PutResponse(ctx context.Context, r domain.DailyInsightResponse) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.cache == nil || s.cache.Date != r.Date {
		s.mu.Unlock()
		return nil
	}
	if s.cache.Responses == nil {
		s.cache.Responses = map[domain.QuestionID]domain.DailyInsightResponse{}
	}
	s.cache.Responses[r.QuestionID] = r
	out := s.copyLocked()
	s.mu.Unlock()
	return save(ctx, s.persist, KeyDailyCache, out)
}

// Cache returns a copy of the current cache and whether one exists.
func (s *DailyCacheStore) Cache() (domain.DailyInsightCache, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		return domain.DailyInsightCache{}, false
	}
	return s.copyLocked(), true
}

// Snapshot returns the cached snapshot, or nil.
func (s *DailyCacheStore) Snapshot() *domain.DailyInsightData {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		return nil
	}
	return s.cache.Data
}

// Reset drops the cache and transient flags, and clears the persisted copy.
func (s *DailyCacheStore) Reset(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	s.cache = nil
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
	return save(ctx, s.persist, KeyDailyCache, nil)
}

func (s *DailyCacheStore) copyLocked() domain.DailyInsightCache {
	out := *s.cache
	out.Responses = make(map[domain.QuestionID]domain.DailyInsightResponse, len(s.cache.Responses))
	for k, v := range s.cache.Responses {
		out.Responses[k] = v
	}
	out.Scores = append([]domain.QuestionScore(nil), s.cache.Scores...)
	return out
}

func (s *DailyCacheStore) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *DailyCacheStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetLastError records a diagnostic for the UI banner. Empty clears it.
func (s *DailyCacheStore) SetLastError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

func (s *DailyCacheStore) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
