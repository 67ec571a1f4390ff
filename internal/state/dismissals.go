package state

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/google/uuid"
)

// DismissalTTL is how long a dismissed alert stays hidden.
const DismissalTTL = 7 * 24 * time.Hour

// DismissalStore holds alert dismissals keyed by nutrientId_severity. The
// full list is persisted on every change.
type DismissalStore struct {
	persist Persister
	ttl     time.Duration

	// saveMu orders writes to the persister with the mutations behind them.
	saveMu sync.Mutex

	mu   sync.Mutex
	list []domain.AlertDismissal
}

// NewDismissalStore creates an empty store. A non-positive ttl uses DismissalTTL.
func NewDismissalStore(p Persister, ttl time.Duration) *DismissalStore {
	if ttl <= 0 {
		ttl = DismissalTTL
	}
	return &DismissalStore{persist: p, ttl: ttl}
}

// Load restores the persisted list.
func (s *DismissalStore) Load(ctx context.Context) error {
	var list []domain.AlertDismissal
	if _, err := load(ctx, s.persist, KeyDismissals, &list); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = list
	return nil
}

// Dismiss hides an alert until now + ttl. An existing dismissal for the same
// key is replaced, not extended.
func (s *DismissalStore) Dismiss(ctx context.Context, nutrientID string, severity domain.Severity, now time.Time) (domain.AlertDismissal, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	d := domain.AlertDismissal{
		ID:          uuid.New().String(),
		Key:         domain.DismissalKey(nutrientID, severity),
		NutrientID:  nutrientID,
		Severity:    severity,
		DismissedAt: now,
		ExpiresAt:   now.Add(s.ttl),
	}

	s.mu.Lock()
	next := make([]domain.AlertDismissal, 0, len(s.list)+1)
	for _, existing := range s.list {
		if existing.Key != d.Key {
			next = append(next, existing)
		}
	}
	next = append(next, d)
	s.list = next
	out := s.copyLocked()
	s.mu.Unlock()

	return d, save(ctx, s.persist, KeyDismissals, out)
}

// IsDismissed is true only while now is strictly before the expiry.
func (s *DismissalStore) IsDismissed(nutrientID string, severity domain.Severity, now time.Time) bool {
	key := domain.DismissalKey(nutrientID, severity)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.list {
		if d.Key == key && d.Active(now) {
			return true
		}
	}
	return false
}

// Active returns the dismissals still in effect at now.
func (s *DismissalStore) Active(now time.Time) []domain.AlertDismissal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.AlertDismissal{}
	for _, d := range s.list {
		if d.Active(now) {
			out = append(out, d)
		}
	}
	return out
}

// All returns every stored dismissal, expired or not.
func (s *DismissalStore) All() []domain.AlertDismissal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Sweep removes every dismissal with expiresAt <= now and returns how many
// were removed.
func (s *DismissalStore) Sweep(ctx context.Context, now time.Time) (int, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	kept := make([]domain.AlertDismissal, 0, len(s.list))
	for _, d := range s.list {
		if d.ExpiresAt.After(now) {
			kept = append(kept, d)
		}
	}
	removed := len(s.list) - len(kept)
	s.list = kept
	out := s.copyLocked()
	s.mu.Unlock()

	if removed == 0 {
		return 0, nil
	}
	return removed, save(ctx, s.persist, KeyDismissals, out)
}

func (s *DismissalStore) copyLocked() []domain.AlertDismissal {
	return append([]domain.AlertDismissal{}, s.list...)
}
