package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/zneright/tourkita-core/internal/model"
)

// RedisCache stores place documents as JSON values under "place:{id}" keys.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration, log zerolog.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis at %s: %w", addr, err)
	}
	return &RedisCache{client: client, ttl: ttl, logger: log}, nil
}

func placeKey(id string) string {
	return fmt.Sprintf("place:%s", id)
}

// Get returns the cached place for id. Transport and decode errors are
// logged and reported as a cache miss.
func (c *RedisCache) Get(ctx context.Context, id string) (model.Place, bool) {
	raw, err := c.client.Get(ctx, placeKey(id)).Result()
	if err == redis.Nil {
		return model.Place{}, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("id", id).Msg("redis get failed")
		return model.Place{}, false
	}
	var place model.Place
	if err := json.Unmarshal([]byte(raw), &place); err != nil {
		c.logger.Warn().Err(err).Str("id", id).Msg("decoding cached place failed")
		return model.Place{}, false
	}
	return place, true
}

// Set stores a place under its key with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, place model.Place) {
	if place.ID == "" {
		return
	}
	raw, err := json.Marshal(place)
	if err != nil {
		c.logger.Warn().Err(err).Str("id", place.ID).Msg("encoding place failed")
		return
	}
	if err := c.client.Set(ctx, placeKey(place.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("id", place.ID).Msg("redis set failed")
	}
}

// Clear removes all place keys.
func (c *RedisCache) Clear(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, placeKey("*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn().Err(err).Str("key", iter.Val()).Msg("redis del failed")
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn().Err(err).Msg("redis scan failed")
	}
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
