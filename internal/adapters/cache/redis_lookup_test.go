package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuel-route-service/internal/domain"
)

func newTestCache(t *testing.T) (*RedisLookupCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLookupCache(client), mr
}

func TestRedisLookupCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "geocode:denver, co")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache must miss")

	require.NoError(t, c.Set(ctx, "geocode:denver, co", []byte(`{"Lat":39.7,"Lon":-104.9}`), time.Hour))

	val, ok, err := c.Get(ctx, "geocode:denver, co")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"Lat":39.7,"Lon":-104.9}`, string(val))
}

func TestRedisLookupCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "route:abc:driving-car", []byte("payload"), RouteTTL))

	mr.FastForward(RouteTTL + time.Minute)

	_, ok, err := c.Get(ctx, "route:abc:driving-car")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must never be a hit")
}

func TestRedisLookupCacheRejectsMissingTTL(t *testing.T) {
	c, _ := newTestCache(t)

	err := c.Set(context.Background(), "k", []byte("v"), 0)
	require.Error(t, err)

	err = c.Set(context.Background(), "k", []byte("v"), -time.Minute)
	require.Error(t, err)
}

func TestGeocodeKeyNormalization(t *testing.T) {
	assert.Equal(t, GeocodeKey("Denver,   CO"), GeocodeKey("denver, co"))
	assert.Equal(t, "geocode:denver, co", GeocodeKey("  Denver,  CO  "))
	assert.NotEqual(t, GeocodeKey("Denver, CO"), GeocodeKey("Boulder, CO"))
}

func TestRouteKeyDeterminism(t *testing.T) {
	a := domain.Coordinates{Lat: 39.7392, Lon: -104.9903}
	b := domain.Coordinates{Lat: 35.0844, Lon: -106.6504}

	assert.Equal(t, RouteKey(a, b, "driving-car"), RouteKey(a, b, "driving-car"))
	assert.NotEqual(t, RouteKey(a, b, "driving-car"), RouteKey(b, a, "driving-car"))
	assert.NotEqual(t, RouteKey(a, b, "driving-car"), RouteKey(a, b, "driving-hgv"))
}
