package llm

import (
	"math"
	"sort"
	"sync"
	"time"
)

// Progress is a point-in-time view of a model download.
type Progress struct {
	Status    string        `json:"status"`
	Bytes     int64         `json:"bytes"`
	Total     int64         `json:"total"`
	Percent   float64       `json:"percent"`
	ETA       time.Duration `json:"eta"`
	StartedAt time.Time     `json:"startedAt"`
	Done      bool          `json:"done"`
}

// ProgressTracker aggregates per-layer pull updates into a single pollable
// progress value. It is safe for concurrent use.
type ProgressTracker struct {
	mu      sync.Mutex
	now     func() time.Time
	started time.Time
	status  string
	layers  map[string]layer
	done    bool
}

type layer struct {
	completed int64
	total     int64
}

// NewProgressTracker returns a tracker using now as its clock (time.Now if nil).
func NewProgressTracker(now func() time.Time) *ProgressTracker {
	if now == nil {
		now = time.Now
	}
	return &ProgressTracker{now: now, layers: map[string]layer{}}
}

// Reset clears all state and starts a new download clock.
func (p *ProgressTracker) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = p.now()
	p.status = ""
	p.layers = map[string]layer{}
	p.done = false
}

// Update records one pull status line. Lines without a digest only change
// the status text.
func (p *ProgressTracker) Update(status, digest string, completed, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started.IsZero() {
		p.started = p.now()
	}
	p.status = status
	if digest == "" || total <= 0 {
		return
	}
	prev := p.layers[digest]
	if completed < prev.completed {
		completed = prev.completed
	}
	p.layers[digest] = layer{completed: min(completed, total), total: total}
}

// Finish marks the download complete.
func (p *ProgressTracker) Finish(status string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
	p.done = true
	for k, l := range p.layers {
		l.completed = l.total
		p.layers[k] = l
	}
}

// Snapshot returns the current aggregate progress.
func (p *ProgressTracker) Snapshot() Progress {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := Progress{Status: p.status, StartedAt: p.started, Done: p.done}
	digests := make([]string, 0, len(p.layers))
	for d := range p.layers {
		digests = append(digests, d)
	}
	sort.Strings(digests)
	for _, d := range digests {
		out.Bytes += p.layers[d].completed
		out.Total += p.layers[d].total
	}
	if out.Total > 0 {
		out.Percent = math.Round(float64(out.Bytes)/float64(out.Total)*1000) / 10
	}
	if p.done {
		out.Percent = 100
		return out
	}
	elapsed := p.now().Sub(p.started)
	if out.Bytes > 0 && out.Total > out.Bytes && elapsed > 0 {
		rate := float64(out.Bytes) / elapsed.Seconds()
		out.ETA = time.Duration(float64(out.Total-out.Bytes) / rate * float64(time.Second)).Round(time.Second)
	}
	return out
}
