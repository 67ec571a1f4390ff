// Package state holds the insight engine's long-lived containers: the daily
// insight cache, alert dismissals and the legacy insights list. Each store
// owns its lock, persists only its durable part, and keeps transient flags in
// memory.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Keys under which the stores persist their state.
const (
	KeyDailyCache     = "daily_insight_cache"
	KeyDismissals     = "alert_dismissals"
	KeyLegacyInsights = "legacy_insights"
)

// Persister reads and writes opaque state blobs by key.
type Persister interface {
	LoadState(ctx context.Context, key string) (value []byte, found bool, err error)
	SaveState(ctx context.Context, key string, value []byte) error
}

func load(ctx context.Context, p Persister, key string, v any) (bool, error) {
	if p == nil {
		return false, nil
	}
	raw, found, err := p.LoadState(ctx, key)
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", key, err)
	}
	if !found || len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func save(ctx context.Context, p Persister, key string, v any) error {
	if p == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := p.SaveState(ctx, key, raw); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// MemoryPersister keeps blobs in a map. It backs tests and runs without a database.
type MemoryPersister struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{data: map[string][]byte{}}
}

func (m *MemoryPersister) LoadState(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryPersister) SaveState(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}
