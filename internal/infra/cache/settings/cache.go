package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

const keyPrefix = "restaurant:settings:"

// Cache read-through кэш настроек ресторана в Redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш. ttl <= 0 - записи без срока жизни.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get достает настройки из кэша, ErrCacheMiss если записи нет
func (c *Cache) Get(ctx context.Context, restaurantID int64) (*domain.Settings, error) {
	val, err := c.client.Get(ctx, key(restaurantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - %v", ErrCache, err)
	}

	var settings domain.Settings
	if err := json.Unmarshal(val, &settings); err != nil {
		// Битая запись считается промахом, следующая запись её перезапишет
		return nil, ErrCacheMiss
	}

	return &settings, nil
}

// Set кладет настройки в кэш
func (c *Cache) Set(ctx context.Context, settings *domain.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: Set - encode: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, key(settings.RestaurantID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - %v", ErrCache, err)
	}

	return nil
}

// Invalidate удаляет настройки ресторана из кэша
func (c *Cache) Invalidate(ctx context.Context, restaurantID int64) error {
	if err := c.client.Del(ctx, key(restaurantID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - %v", ErrCache, err)
	}
	return nil
}

func key(restaurantID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, restaurantID)
}
