package engine

import (
	"sync"
	"time"
)

const (
	renderTraceSamplesDefault  = 240
	defaultSlowRenderThreshold = 16667 * time.Microsecond
)

// RenderSample is a single render pass trace sample.
type RenderSample struct {
	Timestamp  int64   `json:"ts"`
	RenderMs   float64 `json:"renderMs"`
	Pass       int     `json:"pass"`
	Identities int     `json:"identities"`
	Pruned     int     `json:"pruned,omitempty"`
	Focus      []int   `json:"focus,omitempty"`
	FocusLost  bool    `json:"focusLost,omitempty"`
}

// RenderTimeline is the debug server response shape.
type RenderTimeline struct {
	Samples     []RenderSample `json:"samples"`
	SlowRenders int            `json:"slowRenders"`
	ThresholdMs float64        `json:"thresholdMs"`
}

// RenderTraceBuffer stores recent render samples in a ring buffer.
type RenderTraceBuffer struct {
	mu        sync.RWMutex
	samples   []RenderSample
	index     int
	count     int
	slow      int
	threshold time.Duration
}

// NewRenderTraceBuffer creates a new render trace buffer. Non-positive
// arguments select the defaults.
func NewRenderTraceBuffer(capacity int, threshold time.Duration) *RenderTraceBuffer {
	if capacity <= 0 {
		capacity = renderTraceSamplesDefault
	}
	if threshold <= 0 {
		threshold = defaultSlowRenderThreshold
	}
	return &RenderTraceBuffer{
		samples:   make([]RenderSample, capacity),
		threshold: threshold,
	}
}

// Capacity returns the buffer capacity.
func (b *RenderTraceBuffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// SetThreshold updates the slow render threshold.
func (b *RenderTraceBuffer) SetThreshold(threshold time.Duration) {
	if threshold <= 0 {
		threshold = defaultSlowRenderThreshold
	}
	b.mu.Lock()
	b.threshold = threshold
	b.mu.Unlock()
}

// Threshold returns the slow render threshold.
func (b *RenderTraceBuffer) Threshold() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.threshold
}

// Add records a sample and counts it as slow if d exceeds the threshold.
func (b *RenderTraceBuffer) Add(sample RenderSample, d time.Duration) {
	b.mu.Lock()
	b.samples[b.index] = sample
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	if d > b.threshold {
		b.slow++
	}
	b.mu.Unlock()
}

// Snapshot returns a chronological copy of samples and stats.
func (b *RenderTraceBuffer) Snapshot() RenderTimeline {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return RenderTimeline{ThresholdMs: durationToMillis(b.threshold)}
	}

	result := make([]RenderSample, b.count)
	if b.count < len(b.samples) {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[len(b.samples)-b.index:], b.samples[:b.index])
	}

	return RenderTimeline{
		Samples:     result,
		SlowRenders: b.slow,
		ThresholdMs: durationToMillis(b.threshold),
	}
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
