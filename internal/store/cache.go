package store

import (
	"encoding/json"
	"time"
)

// DefaultCacheValidity is how long a cached dataset stays fresh
const DefaultCacheValidity = 24 * time.Hour

// envelope wraps a cached payload with its fetch time
type envelope struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Payload   json.RawMessage `json:"payload"`
}

// Cache layers a validity window over the store for larger fetched payloads
// (gallery datasets). An entry older than the window is treated as absent.
type Cache struct {
	store    *Store
	validity time.Duration
	now      func() time.Time
}

// NewCache creates a cache on top of s
func NewCache(s *Store, validity time.Duration) *Cache {
	if validity <= 0 {
		validity = DefaultCacheValidity
	}
	return &Cache{
		store:    s,
		validity: validity,
		now:      time.Now,
	}
}

// Get reads a fresh cached payload into the destination. Stale or missing
// entries return false and must be refetched by the caller.
func (c *Cache) Get(key string, into interface{}) bool {
	var env envelope
	if !c.store.Load(key, &env) {
		return false
	}
	if c.now().Sub(env.FetchedAt) > c.validity {
		return false
	}
	if err := json.Unmarshal(env.Payload, into); err != nil {
		c.store.logger.Warnw("cache payload corrupt", "key", key, "error", err)
		return false
	}
	return true
}

// Put stores a payload stamped with the current time
func (c *Cache) Put(key string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.store.logger.Errorw("cache marshal failed", "key", key, "error", err)
		return
	}
	c.store.Save(key, envelope{
		FetchedAt: c.now(),
		Payload:   data,
	})
}
