package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/juju/clock"
)

// DefaultTTL applies to prefixes without an explicit entry in the TTL
// table.
const DefaultTTL = 30 * time.Second

// ttlTable maps endpoint-family prefixes to their freshness window.
// Fast-moving aggregates expire quickly; slow-moving reference data
// lives longer.
var ttlTable = map[string]time.Duration{
	"kpis":                   15 * time.Second,
	"alerts_summary":         30 * time.Second,
	"alerts_list":            30 * time.Second,
	"inventory_items":        30 * time.Second,
	"promotions_list":        30 * time.Second,
	"inventory_summary":      60 * time.Second,
	"promotions_summary":     60 * time.Second,
	"admin_dashboard":        60 * time.Second,
	"analytics":              60 * time.Second,
	"inventory_categories":   120 * time.Second,
	"promotions_performance": 120 * time.Second,
	"admin_stores":           120 * time.Second,
}

type entry struct {
	body    []byte
	expires time.Time
}

// Stats counts cache effectiveness since construction.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Cache is a concurrency-safe TTL cache for raw response bodies.
type Cache struct {
	clk        clock.Clock
	defaultTTL time.Duration

	mu      sync.Mutex
	entries map[string]entry
	hits    uint64
	misses  uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the wall clock, for tests.
func WithClock(clk clock.Clock) Option {
	return func(c *Cache) { c.clk = clk }
}

// WithDefaultTTL overrides the fallback TTL for prefixes absent from the
// TTL table. Non-positive values are ignored.
func WithDefaultTTL(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.defaultTTL = d
		}
	}
}

// New builds an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		clk:        clock.WallClock,
		defaultTTL: DefaultTTL,
		entries:    make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key derives the cache key for a prefix and its request parameters.
// Parameter order does not matter: the same logical request always maps
// to the same key.
func Key(prefix string, params map[string]string) string {
	if len(params) == 0 {
		return prefix
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	h := xxhash.New()
	for _, k := range keys {
		_, _ = h.WriteString(k)
		_, _ = h.WriteString("=")
		_, _ = h.WriteString(params[k])
		_, _ = h.WriteString("&")
	}
	var buf [16]byte
	return prefix + ":" + string(appendHex(buf[:0], h.Sum64()))
}

func appendHex(dst []byte, v uint64) []byte {
	const digits = "0123456789abcdef"
	for shift := 60; shift >= 0; shift -= 4 {
		dst = append(dst, digits[(v>>uint(shift))&0xf])
	}
	return dst
}

// TTLFor returns the freshness window for a prefix.
func (c *Cache) TTLFor(prefix string) time.Duration {
	if ttl, ok := ttlTable[prefix]; ok {
		return ttl
	}
	return c.defaultTTL
}

// Get returns the cached body for the key, or false when absent or
// expired. Expired entries are removed on read.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if !c.clk.Now().Before(e.expires) {
		delete(c.entries, key)
		c.misses++
		return nil, false
	}
	c.hits++
	return e.body, true
}

// Set stores body under key using the TTL for the key's prefix (the
// portion before the first ':', or the whole key when unparameterized).
func (c *Cache) Set(key string, body []byte) {
	prefix := key
	if i := strings.IndexByte(key, ':'); i >= 0 {
		prefix = key[:i]
	}
	c.SetTTL(key, body, c.TTLFor(prefix))
}

// SetTTL stores body under key with an explicit TTL.
func (c *Cache) SetTTL(key string, body []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{body: body, expires: c.clk.Now().Add(ttl)}
}

// Invalidate drops every entry under prefix and returns the count
// removed.
func (c *Cache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.entries {
		if k == prefix || strings.HasPrefix(k, prefix+":") {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Stats reports hit/miss counts and the live entry count. Expired but
// not-yet-read entries still count as live.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}
