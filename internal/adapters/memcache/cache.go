package memcache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"offer_post/internal/adapters/observability"
)

const janitorEvery = 15 * time.Minute

type entry struct {
	value   []byte
	expires time.Time
}

// Cache is an in-process TTL cache. Values are stored as JSON so reads
// behave like the Redis adapter.
type Cache struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

func New() *Cache {
	c := newCache(time.Now)
	go c.janitor(janitorEvery)
	return c
}

func newCache(now func() time.Time) *Cache {
	return &Cache{data: make(map[string]entry), now: now, stop: make(chan struct{})}
}

func (c *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expires) {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(e.value, dst)
}

func (c *Cache) Set(_ context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = entry{value: b, expires: c.now().Add(time.Duration(ttlSec) * time.Second)}
	c.mu.Unlock()
	observability.ObserveCache("memory", "set")
	return nil
}

func (c *Cache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
	observability.ObserveCache("memory", "del")
	return nil
}

// Prune drops expired entries and returns how many were removed.
func (c *Cache) Prune() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.data {
		if !now.Before(e.expires) {
			delete(c.data, k)
			n++
		}
	}
	if n > 0 {
		observability.ObserveCache("memory", "prune")
	}
	return n
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Close stops the janitor.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) janitor(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			if n := c.Prune(); n > 0 {
				log.Debug().Int("removed", n).Msg("cache pruned")
			}
		}
	}
}
