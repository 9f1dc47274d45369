// Package cache provides the in-memory enhancement result cache with
// TTL expiry, LRU eviction and a background sweeper.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/promptpilot/promptpilot/internal/domain/models"
)

const (
	DefaultTTL           = time.Hour
	DefaultMaxEntries    = 10000
	DefaultSweepInterval = 5 * time.Minute

	// Fraction of entries evicted when the cache is full.
	evictFraction = 0.2
)

// Key builds the deterministic fingerprint for one enhancement request.
// The prompt is whitespace-normalized and the technique set sorted and
// deduplicated first, so equivalent requests share an entry.
func Key(prompt string, techniqueIDs []string, mode models.Mode) string {
	normalized := strings.Join(strings.Fields(prompt), " ")

	ids := make([]string, 0, len(techniqueIDs))
	seen := make(map[string]struct{}, len(techniqueIDs))
	for _, id := range techniqueIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	p := sha256.Sum256([]byte(normalized))
	t := sha256.Sum256([]byte(strings.Join(ids, ",")))
	return string(mode) + ":" + hex.EncodeToString(p[:])[:12] + ":" + hex.EncodeToString(t[:])[:8]
}

type entry struct {
	result       *models.EnhancementResult
	createdAt    time.Time
	lastAccessed time.Time
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Stored  int64   `json:"stored"`
	Expired int64   `json:"expired"`
	Cleaned int64   `json:"cleaned"`
	HitRate float64 `json:"hit_rate"`
	Size    int     `json:"size"`
}

// Cache stores enhancement results keyed by request fingerprint.
// Construct one per service instance and inject it; there is no
// package-level singleton.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry

	ttl           time.Duration
	maxEntries    int
	sweepInterval time.Duration

	hits    int64
	misses  int64
	stored  int64
	expired int64
	cleaned int64

	latencies *latencyTracker

	cancel context.CancelFunc
	done   chan struct{}
}

type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

func WithMaxEntries(n int) Option {
	return func(c *Cache) { c.maxEntries = n }
}

func WithSweepInterval(d time.Duration) Option {
	return func(c *Cache) { c.sweepInterval = d }
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries:       make(map[string]*entry),
		ttl:           DefaultTTL,
		maxEntries:    DefaultMaxEntries,
		sweepInterval: DefaultSweepInterval,
		latencies:     newLatencyTracker(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached result for key. Expired entries are purged on
// read and count as misses.
func (c *Cache) Get(key string) (*models.EnhancementResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if time.Since(e.createdAt) > c.ttl {
		delete(c.entries, key)
		c.expired++
		c.misses++
		return nil, false
	}
	e.lastAccessed = time.Now()
	c.hits++

	cp := *e.result
	return &cp, true
}

// Put stores a result. When the cache is full the least recently used
// 20% of entries are evicted first.
func (c *Cache) Put(key string, result *models.EnhancementResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}

	cp := *result
	now := time.Now()
	c.entries[key] = &entry{result: &cp, createdAt: now, lastAccessed: now}
	c.stored++
}

// evictLocked removes the oldest entries by last access. Caller holds
// the mutex.
func (c *Cache) evictLocked() {
	n := int(float64(len(c.entries)) * evictFraction)
	if n < 1 {
		n = 1
	}

	type aged struct {
		key  string
		last time.Time
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{k, e.lastAccessed})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].last.Before(all[j].last) })

	for i := 0; i < n && i < len(all); i++ {
		delete(c.entries, all[i].key)
		c.cleaned++
	}
}

// Sweep removes all expired entries and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.entries {
		if time.Since(e.createdAt) > c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	c.expired += int64(removed)
	c.cleaned += int64(removed)
	return removed
}

// Start launches the background sweeper. Stop with Stop.
func (c *Cache) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})

	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := c.Sweep(); n > 0 {
					log.Printf("cache: swept %d expired entries", n)
				}
			}
		}
	}()
}

// Stop terminates the background sweeper and waits for it to exit.
func (c *Cache) Stop() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel = nil
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total)
	}
	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Stored:  c.stored,
		Expired: c.expired,
		Cleaned: c.cleaned,
		HitRate: rate,
		Size:    len(c.entries),
	}
}

// RecordLatency feeds the request latency tracker.
func (c *Cache) RecordLatency(d time.Duration) {
	c.latencies.record(d)
}

// LatencyStats returns recent request latency statistics.
func (c *Cache) LatencyStats() LatencyStats {
	return c.latencies.stats()
}
