package state

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDismissal_ExpiryBoundaryIsExclusive(t *testing.T) {
	s := NewDismissalStore(nil, 0)
	at := testutil.BaseTime
	moderate := domain.Severity("moderate")

	d, err := s.Dismiss(context.Background(), "iron", moderate, at)
	require.NoError(t, err)
	assert.Equal(t, "iron_moderate", d.Key)
	assert.Equal(t, at.Add(7*24*time.Hour), d.ExpiresAt)

	assert.True(t, s.IsDismissed("iron", moderate, at.Add(7*24*time.Hour-time.Millisecond)))
	assert.False(t, s.IsDismissed("iron", moderate, at.Add(7*24*time.Hour)))
	assert.False(t, s.IsDismissed("iron", domain.SeverityConcern, at))
}

func TestDismissal_ReplacesSameKey(t *testing.T) {
	ctx := context.Background()
	s := NewDismissalStore(nil, 0)
	first := testutil.BaseTime

	_, err := s.Dismiss(ctx, "iron", domain.SeverityWarning, first)
	require.NoError(t, err)
	second, err := s.Dismiss(ctx, "iron", domain.SeverityWarning, first.Add(48*time.Hour))
	require.NoError(t, err)
	_, err = s.Dismiss(ctx, "calcium", domain.SeverityWarning, first)
	require.NoError(t, err)

	all := s.All()
	require.Len(t, all, 2)
	var iron domain.AlertDismissal
	for _, d := range all {
		if d.NutrientID == "iron" {
			iron = d
		}
	}
	assert.Equal(t, second.ID, iron.ID)
	assert.Equal(t, second.ExpiresAt, iron.ExpiresAt)
}

func TestDismissal_Sweep(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()
	s := NewDismissalStore(p, 0)
	start := testutil.BaseTime

	_, _ = s.Dismiss(ctx, "iron", domain.SeverityWarning, start)
	_, _ = s.Dismiss(ctx, "zinc", domain.SeverityConcern, start.Add(24*time.Hour))

	// exactly at iron's expiry: iron is swept, zinc stays
	removed, err := s.Sweep(ctx, start.Add(7*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	require.Len(t, s.All(), 1)
	assert.Equal(t, "zinc", s.All()[0].NutrientID)

	removed, err = s.Sweep(ctx, start.Add(7*24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)

	restored := NewDismissalStore(p, 0)
	require.NoError(t, restored.Load(ctx))
	assert.Len(t, restored.All(), 1)
	assert.True(t, restored.IsDismissed("zinc", domain.SeverityConcern, start.Add(2*24*time.Hour)))
}

func TestDismissal_Active(t *testing.T) {
	ctx := context.Background()
	s := NewDismissalStore(nil, time.Hour)
	now := testutil.BaseTime
	_, _ = s.Dismiss(ctx, "iron", domain.SeverityWarning, now)

	assert.Len(t, s.Active(now.Add(59*time.Minute)), 1)
	assert.Empty(t, s.Active(now.Add(time.Hour)))
	assert.Len(t, s.All(), 1)
}

func TestDismissal_ConcurrentDismissPersistsAll(t *testing.T) {
	ctx := context.Background()
	p := &jitterPersister{MemoryPersister: NewMemoryPersister()}
	s := NewDismissalStore(p, 0)

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Dismiss(ctx, fmt.Sprintf("n%02d", i), domain.SeverityWarning, testutil.BaseTime)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	restored := NewDismissalStore(p, 0)
	require.NoError(t, restored.Load(ctx))
	assert.Len(t, restored.All(), writers)
}
