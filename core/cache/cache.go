// Package cache provides the in-process TTL store for conversion results.
// Expired entries are treated as absent and are dropped lazily on Get or
// eagerly by Cleanup.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/html2md/core"
)

// Fingerprint derives the cache key for a URL and its content toggles.
// Fetch method and browser options are deliberately not part of the key,
// so plain and rendered fetches of the same URL share an entry.
func Fingerprint(url string, toggles core.Toggles) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%t|%t|%t", url, toggles.Images, toggles.Tables, toggles.Links)))
	return hex.EncodeToString(sum[:])
}

// Entry is a stored result and the moment it was stored.
type Entry struct {
	StoredAt time.Time
	TTL      time.Duration
	Result   core.Result
}

func (e Entry) expired(now time.Time) bool {
	return now.Sub(e.StoredAt) > e.TTL
}

// Cache is a TTL keyed store, safe for concurrent use. Writes replace whole
// entries, so the last writer wins.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Entry
	now     func() time.Time
	log     *zap.Logger
}

// New creates an empty Cache.
func New(log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		entries: make(map[string]Entry),
		now:     time.Now,
		log:     log,
	}
}

// Get returns the result stored under key if it is no older than maxAge
// and within the TTL it was stored with. Readers pass their own TTL, so a
// request asking for fresher data is not served an entry kept for longer.
// A maxAge of zero or less leaves the stored TTL alone to decide.
func (c *Cache) Get(key string, maxAge time.Duration) (core.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return core.Result{}, false
	}
	now := c.now()
	if entry.expired(now) {
		delete(c.entries, key)
		c.log.Debug("cache entry expired", zap.String("key", short(key)))
		return core.Result{}, false
	}
	age := now.Sub(entry.StoredAt)
	if maxAge > 0 && age > maxAge {
		c.log.Debug("cache entry too old for reader", zap.String("key", short(key)), zap.Duration("age", age), zap.Duration("max_age", maxAge))
		return core.Result{}, false
	}
	c.log.Debug("cache hit", zap.String("key", short(key)), zap.Duration("age", age))
	return entry.Result, true
}

// Set stores result under key for ttl, replacing any previous entry.
func (c *Cache) Set(key string, result core.Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{StoredAt: c.now(), TTL: ttl, Result: result}
	c.log.Debug("cache entry stored", zap.String("key", short(key)))
}

// Cleanup evicts every expired entry and returns how many were removed.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		c.log.Info("cache cleanup", zap.Int("removed", removed))
	}
	return removed
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := len(c.entries)
	c.entries = make(map[string]Entry)
	c.log.Info("cache cleared", zap.Int("removed", count))
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func short(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
