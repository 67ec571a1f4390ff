package state

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/nutrimind/internal/domain"
	"github.com/alexanderramin/nutrimind/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyInsights_PersistsInsightsAndFlagOnly(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()
	s := NewLegacyInsightsStore(p)

	require.NoError(t, s.SetEnabled(ctx, true))
	require.NoError(t, s.Add(ctx, domain.LegacyInsight{ID: "a", QuestionID: domain.QuestionMacroOverview, Text: "one", CreatedAt: testutil.BaseTime}))
	s.SetGenerating(true)
	s.SetStatus("error", "model offline")

	restored := NewLegacyInsightsStore(p)
	require.NoError(t, restored.Load(ctx))

	assert.True(t, restored.Enabled())
	require.Len(t, restored.Insights(), 1)
	assert.Equal(t, "one", restored.Insights()[0].Text)
	assert.False(t, restored.Generating())
	status, lastErr := restored.Status()
	assert.Empty(t, status)
	assert.Empty(t, lastErr)
}

func TestLegacyInsights_NewestFirstAndCapped(t *testing.T) {
	ctx := context.Background()
	s := NewLegacyInsightsStore(nil)
	for i := 0; i < MaxLegacyInsights+5; i++ {
		require.NoError(t, s.Add(ctx, domain.LegacyInsight{ID: fmt.Sprint(i)}))
	}

	got := s.Insights()
	require.Len(t, got, MaxLegacyInsights)
	assert.Equal(t, fmt.Sprint(MaxLegacyInsights+4), got[0].ID)

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Insights())
}
