// Package cache memoizes full verification results keyed by
// (address, chainId, crossChainFlag).
package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"token_verifier/internal/entity"
)

// entryWrapper pairs the cached payload with its write time so expiry can be
// checked on the read path.
type entryWrapper struct {
	result   *entity.VerificationResult
	storedAt time.Time
}

// Stats is a point-in-time view of cache effectiveness.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

// VerificationCache is a TTL-bound memo of verification results. Eviction is
// lazy on read only; there is no background sweeper. Writes replace the
// whole entry per key (last writer wins), and readers never observe a
// partial write.
type VerificationCache struct {
	store  *gocache.Cache
	ttl    time.Duration
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cache with the given TTL. Items are stored without go-cache
// expiration so the janitor stays off; this type owns the TTL check.
func New(ttl time.Duration) *VerificationCache {
	return &VerificationCache{
		store: gocache.New(gocache.NoExpiration, 0),
		ttl:   ttl,
	}
}

// Key renders the canonical cache key for one verification request.
func Key(address string, chainID int64, crossChain bool) string {
	return fmt.Sprintf("%s:%d:%t", address, chainID, crossChain)
}

// Get returns the cached result for key, or nil on miss. An expired entry is
// evicted and reported as a miss. On a hit the cached payload is reused
// verbatim (the canonical analysis content does not change within the TTL)
// but the returned copy carries a freshly generated request identifier.
func (c *VerificationCache) Get(key string) *entity.VerificationResult {
	raw, found := c.store.Get(key)
	if !found {
		c.misses.Add(1)
		return nil
	}
	entry := raw.(entryWrapper)
	if time.Since(entry.storedAt) > c.ttl {
		c.store.Delete(key)
		c.misses.Add(1)
		return nil
	}

	c.hits.Add(1)
	copied := *entry.result
	copied.RequestID = uuid.NewString()
	return &copied
}

// Set stores result under key, replacing any previous entry atomically.
func (c *VerificationCache) Set(key string, result *entity.VerificationResult) {
	c.store.Set(key, entryWrapper{result: result, storedAt: time.Now()}, gocache.NoExpiration)
}

// Clear drops every entry.
func (c *VerificationCache) Clear() {
	c.store.Flush()
}

// Stats reports hit/miss counters and the current entry count. Entries may
// include expired-but-not-yet-read items since eviction is lazy.
func (c *VerificationCache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.store.ItemCount(),
	}
}
