package memcache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type payload struct {
	Name     string   `json:"name"`
	Features []string `json:"features"`
}

func TestSetGetRoundTrip(t *testing.T) {
	clk := &clock{t: time.Unix(1_700_000_000, 0)}
	c := newCache(clk.now)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "offer:https://x", payload{Name: "Hotel Sol", Features: []string{"Pool"}}, 60))

	var got payload
	ok, err := c.Get(ctx, "offer:https://x", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Hotel Sol", got.Name)
	assert.Equal(t, []string{"Pool"}, got.Features)
}

func TestExpiry(t *testing.T) {
	clk := &clock{t: time.Unix(1_700_000_000, 0)}
	c := newCache(clk.now)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 10))
	clk.advance(9 * time.Second)
	var s string
	ok, _ := c.Get(ctx, "k", &s)
	assert.True(t, ok)

	clk.advance(time.Second)
	ok, _ = c.Get(ctx, "k", &s)
	assert.False(t, ok)
}

func TestDel(t *testing.T) {
	c := newCache(time.Now)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", 1, 60))
	require.NoError(t, c.Del(ctx, "k"))
	var n int
	ok, err := c.Get(ctx, "k", &n)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrune(t *testing.T) {
	clk := &clock{t: time.Unix(1_700_000_000, 0)}
	c := newCache(clk.now)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", 1, 5))
	require.NoError(t, c.Set(ctx, "long", 2, 500))

	clk.advance(time.Minute)
	assert.Equal(t, 1, c.Prune())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 0, c.Prune())
}

func TestJanitorStopsOnClose(t *testing.T) {
	c := newCache(time.Now)
	done := make(chan struct{})
	go func() {
		c.janitor(time.Millisecond)
		close(done)
	}()
	c.Close()
	c.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
