package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/pestbooking/config"
	"github.com/Domenick1991/pestbooking/internal/calendar"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client  *redis.Client
	weekTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, weekTTL time.Duration) *RedisCache {
	return NewRedisCacheFromClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		weekTTL,
	)
}

func NewRedisCacheFromClient(client *redis.Client, weekTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, weekTTL: weekTTL}
}

// GetWeek returns the cached view for anchor as evaluated on today, or nil
// on a miss.
func (c *RedisCache) GetWeek(ctx context.Context, anchor, today calendar.Date) (*calendar.WeekView, error) {
	data, err := c.client.Get(ctx, weekKey(anchor, today)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var view calendar.WeekView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *RedisCache) SetWeek(ctx context.Context, today calendar.Date, view calendar.WeekView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, weekKey(view.Anchor, today), payload, c.weekTTL).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Past/future status depends on today, so it is part of the key.
func weekKey(anchor, today calendar.Date) string {
	return fmt.Sprintf("cache:availability:%s:%s", anchor, today)
}
