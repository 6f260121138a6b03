package cache

import (
	"context"
	"crawl-route-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearchCache(t *testing.T) (*RedisSearchCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSearchCache(client), mr
}

func TestRedisSearchCacheRoundTrip(t *testing.T) {
	c, _ := newTestSearchCache(t)
	ctx := context.Background()

	rating := 4.5
	addr := "347 S 13th St"
	venues := []domain.Venue{
		{PlaceID: "p1", Name: "Dirty Frank's", Address: &addr, Latitude: 39.9451, Longitude: -75.1628, Rating: &rating, UserRatingsTotal: 900},
		{PlaceID: "p2", Name: "Unrated"},
	}

	require.NoError(t, c.Put(ctx, "k", venues, time.Minute))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, venues, got)
}

func TestRedisSearchCacheMissAndExpiry(t *testing.T) {
	c, mr := newTestSearchCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "k", nil, time.Minute))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
