// Package cache implements the FingerprintCache: a process-local TTL map
// from request fingerprint to a materialized LooksResponse, backed by an
// LRU for overflow eviction.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
)

// Key is the request fingerprint: (anchorSku, numLooks). A typed, comparable
// struct is used directly as the LRU key rather than a hand-joined string,
// so SKUs containing the join character can never collide.
type Key struct {
	Anchor   string
	NumLooks int
}

type entry struct {
	value     domain.LooksResponse
	expiresAt time.Time
}

// FingerprintCache is an in-process map with per-entry expiry and LRU
// eviction on overflow. The underlying hashicorp/golang-lru Cache is
// internally mutex-guarded, so FingerprintCache requires no locking of its
// own and is safe under concurrent requests.
type FingerprintCache struct {
	lru *lru.Cache
	ttl time.Duration
}

// New creates a FingerprintCache with the given capacity (soft upper bound
// before LRU eviction) and per-entry TTL.
func New(capacity int, ttl time.Duration) (*FingerprintCache, error) {
	l, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &FingerprintCache{lru: l, ttl: ttl}, nil
}

// Get returns the cached response for key and whether it was present and
// unexpired. An expired entry is evicted lazily on read.
func (c *FingerprintCache) Get(key Key) (domain.LooksResponse, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		return domain.LooksResponse{}, false
	}
	e := v.(entry)
	if time.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		return domain.LooksResponse{}, false
	}
	return e.value, true
}

// Put stores value under key with a fresh TTL window. A second Put for the
// same key resets its expiry, per the monotonic-TTL requirement. The caller
// must not mutate value after Put: cached responses are treated as frozen.
func (c *FingerprintCache) Put(key Key, value domain.LooksResponse) {
	c.lru.Add(key, entry{value: value, expiresAt: time.Now().Add(c.ttl)})
}

// Len reports the number of entries currently tracked, including any not
// yet lazily evicted past their TTL.
func (c *FingerprintCache) Len() int {
	return c.lru.Len()
}
