package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLPodcast  = 10 * time.Minute // podcast metadata changes rarely
	TTLEpisodes = 1 * time.Minute  // episode lists refresh on feed parse
	TTLDefault  = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixPodcast  = "podcast:"
	PrefixEpisodes = "episodes:"
)

// Service is the Redis cache interface used by read endpoints
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetPodcast(ctx context.Context, podcastID string) ([]byte, error)
	SetPodcast(ctx context.Context, podcastID string, data interface{}) error
	InvalidatePodcast(ctx context.Context, podcastID string) error

	GetEpisodes(ctx context.Context, podcastID string, page, limit int) ([]byte, error)
	SetEpisodes(ctx context.Context, podcastID string, page, limit int, data interface{}) error
	InvalidateEpisodes(ctx context.Context, podcastID string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a Redis-backed cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // cache is best-effort
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) podcastKey(podcastID string) string {
	return PrefixPodcast + podcastID
}

func (c *redisCache) GetPodcast(ctx context.Context, podcastID string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.podcastKey(podcastID)).Bytes()
}

func (c *redisCache) SetPodcast(ctx context.Context, podcastID string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.podcastKey(podcastID), jsonData, TTLPodcast).Err()
}

func (c *redisCache) InvalidatePodcast(ctx context.Context, podcastID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.podcastKey(podcastID)).Err()
}

func (c *redisCache) episodesKey(podcastID string, page, limit int) string {
	return fmt.Sprintf("%s%s:%d:%d", PrefixEpisodes, podcastID, page, limit)
}

func (c *redisCache) GetEpisodes(ctx context.Context, podcastID string, page, limit int) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.episodesKey(podcastID, page, limit)).Bytes()
}

func (c *redisCache) SetEpisodes(ctx context.Context, podcastID string, page, limit int, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.episodesKey(podcastID, page, limit), jsonData, TTLEpisodes).Err()
}

func (c *redisCache) InvalidateEpisodes(ctx context.Context, podcastID string) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixEpisodes+podcastID+":*")
}

// deleteByPattern removes all keys matching the pattern via SCAN
func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
