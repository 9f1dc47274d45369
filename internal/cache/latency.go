package cache

import (
	"sync"
	"time"
)

const (
	latencyWindow     = 100
	slowThreshold     = 2 * time.Second
	criticalThreshold = 5 * time.Second
)

// LatencyStats summarizes recent request durations.
type LatencyStats struct {
	Count         int     `json:"count"`
	AverageMs     float64 `json:"average_ms"`
	MaxMs         float64 `json:"max_ms"`
	SlowCount     int64   `json:"slow_count"`
	CriticalCount int64   `json:"critical_count"`
}

// latencyTracker keeps a ring of the most recent request durations.
type latencyTracker struct {
	mu       sync.Mutex
	ring     [latencyWindow]time.Duration
	next     int
	filled   int
	slow     int64
	critical int64
}

func newLatencyTracker() *latencyTracker {
	return &latencyTracker{}
}

func (t *latencyTracker) record(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ring[t.next] = d
	t.next = (t.next + 1) % latencyWindow
	if t.filled < latencyWindow {
		t.filled++
	}
	if d > criticalThreshold {
		t.critical++
		t.slow++
	} else if d > slowThreshold {
		t.slow++
	}
}

func (t *latencyTracker) stats() LatencyStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := LatencyStats{Count: t.filled, SlowCount: t.slow, CriticalCount: t.critical}
	if t.filled == 0 {
		return s
	}
	var sum, max time.Duration
	for i := 0; i < t.filled; i++ {
		d := t.ring[i]
		sum += d
		if d > max {
			max = d
		}
	}
	s.AverageMs = float64(sum.Milliseconds()) / float64(t.filled)
	s.MaxMs = float64(max.Milliseconds())
	return s
}
