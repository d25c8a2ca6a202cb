package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "offer_post/internal/adapters/redis"
	"offer_post/internal/domain"
)

func TestCacheRoundTripAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	in := domain.OfferData{Name: "Hotel Sol", Destination: "Mallorca", Price: domain.Ptr("ab 499 €")}
	require.NoError(t, c.Set(ctx, "offer:https://x", in, 30))
	assert.True(t, mr.Exists("offer_post:offer:https://x"))

	var out domain.OfferData
	ok, err := c.Get(ctx, "offer:https://x", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)

	mr.FastForward(31 * time.Second)
	ok, err = c.Get(ctx, "offer:https://x", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "post:1", "text", 60))
	require.NoError(t, c.Del(ctx, "post:1"))
	var s string
	ok, err := c.Get(ctx, "post:1", &s)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	mr.Close()

	var s string
	_, err := c.Get(context.Background(), "k", &s)
	assert.Error(t, err)
}
