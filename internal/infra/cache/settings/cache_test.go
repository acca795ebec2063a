package settings

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, ttl), mr
}

func TestCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, err := cache.Get(ctx, 7)
	require.ErrorIs(t, err, ErrCacheMiss)

	settings := domain.DefaultSettings(7)
	settings.Reservation.RequirePayment = true
	settings.Reservation.Payment.BaseAmount = 15.5
	settings.Reservation.Payment.PartySizePricing = []domain.PartySizeTier{{MinParty: 2, MaxParty: 4, Amount: 20}}
	require.NoError(t, cache.Set(ctx, settings))

	got, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, settings.Reservation, got.Reservation)
	assert.Equal(t, settings.Manager, got.Manager)
}

func TestCache_Invalidate(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, domain.DefaultSettings(3)))
	assert.True(t, mr.Exists("restaurant:settings:3"))

	require.NoError(t, cache.Invalidate(ctx, 3))
	assert.False(t, mr.Exists("restaurant:settings:3"))

	_, err := cache.Get(ctx, 3)
	assert.ErrorIs(t, err, ErrCacheMiss)

	// Удаление отсутствующего ключа не ошибка
	assert.NoError(t, cache.Invalidate(ctx, 3))
}

func TestCache_TTL(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, domain.DefaultSettings(1)))
	assert.Equal(t, time.Minute, mr.TTL("restaurant:settings:1"))

	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_CorruptedEntryIsMiss(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)

	require.NoError(t, mr.Set("restaurant:settings:9", "{not json"))

	_, err := cache.Get(context.Background(), 9)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_RedisDown(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, err := cache.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCache)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
