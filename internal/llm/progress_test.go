package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time { return c.t }

func TestProgressTracker_SequenceOfUpdates(t *testing.T) {
	clock := &stepClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	p := NewProgressTracker(clock.now)
	p.Reset()

	p.Update("pulling manifest", "", 0, 0)
	snap := p.Snapshot()
	assert.Equal(t, "pulling manifest", snap.Status)
	assert.Zero(t, snap.Percent)
	assert.Zero(t, snap.ETA)

	clock.t = clock.t.Add(10 * time.Second)
	p.Update("pulling abc", "sha256:abc", 250, 1000)
	snap = p.Snapshot()
	assert.Equal(t, int64(250), snap.Bytes)
	assert.Equal(t, int64(1000), snap.Total)
	assert.Equal(t, 25.0, snap.Percent)
	assert.Equal(t, 30*time.Second, snap.ETA)

	clock.t = clock.t.Add(10 * time.Second)
	p.Update("pulling def", "sha256:def", 0, 1000)
	p.Update("pulling abc", "sha256:abc", 100, 1000) // out of order lines never go backwards
	snap = p.Snapshot()
	assert.Equal(t, int64(250), snap.Bytes)
	assert.Equal(t, int64(2000), snap.Total)
	assert.Equal(t, 12.5, snap.Percent)

	p.Finish("success")
	snap = p.Snapshot()
	assert.True(t, snap.Done)
	assert.Equal(t, 100.0, snap.Percent)
	assert.Equal(t, snap.Total, snap.Bytes)
	assert.Zero(t, snap.ETA)
}

func TestProgressTracker_ResetClears(t *testing.T) {
	p := NewProgressTracker(nil)
	p.Update("pulling", "sha256:abc", 10, 100)
	p.Finish("success")
	p.Reset()

	snap := p.Snapshot()
	assert.False(t, snap.Done)
	assert.Zero(t, snap.Bytes)
	assert.Empty(t, snap.Status)
}
