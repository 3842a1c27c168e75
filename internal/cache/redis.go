package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"example.com/gatherly/services/planning/config"
	"example.com/gatherly/services/planning/internal/models"
)

// CacheClient defines the interface for cache operations
type CacheClient interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	SetEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id string) error

	GetRecommendations(ctx context.Context, eventID string) ([]models.EventPlaceOption, error)
	SetRecommendations(ctx context.Context, eventID string, options []models.EventPlaceOption) error
	DeleteRecommendations(ctx context.Context, eventID string) error

	FlushAll(ctx context.Context) error
}

// RedisClient implements CacheClient using Redis
type RedisClient struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
}

// NewRedisClient creates a new Redis client. A disabled config yields a
// no-op client so callers never need to nil-check.
func NewRedisClient(cfg config.RedisConfig) (CacheClient, error) {
	if !cfg.Enabled {
		return &RedisClient{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client:  client,
		enabled: true,
		ttl:     time.Hour,
	}, nil
}

// Prefix keys to avoid collisions
func eventKey(id string) string {
	return fmt.Sprintf("event:%s", id)
}

func recommendationsKey(eventID string) string {
	return fmt.Sprintf("event_recommendations:%s", eventID)
}

// GetEvent retrieves an event from cache
func (c *RedisClient) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	if !c.enabled {
		return nil, redis.Nil
	}

	data, err := c.client.Get(ctx, eventKey(id)).Bytes()
	if err != nil {
		return nil, err
	}

	var event models.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// SetEvent caches an event
func (c *RedisClient) SetEvent(ctx context.Context, event *models.Event) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, eventKey(event.UUID), data, c.ttl).Err()
}

// DeleteEvent removes an event from cache
func (c *RedisClient) DeleteEvent(ctx context.Context, id string) error {
	if !c.enabled {
		return nil
	}

	return c.client.Del(ctx, eventKey(id)).Err()
}

// GetRecommendations retrieves an event's recommendations from cache
func (c *RedisClient) GetRecommendations(ctx context.Context, eventID string) ([]models.EventPlaceOption, error) {
	if !c.enabled {
		return nil, redis.Nil
	}

	data, err := c.client.Get(ctx, recommendationsKey(eventID)).Bytes()
	if err != nil {
		return nil, err
	}

	var options []models.EventPlaceOption
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, err
	}

	return options, nil
}

// SetRecommendations caches an event's recommendations
func (c *RedisClient) SetRecommendations(ctx context.Context, eventID string, options []models.EventPlaceOption) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(options)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, recommendationsKey(eventID), data, c.ttl).Err()
}

// DeleteRecommendations removes an event's recommendations from cache
func (c *RedisClient) DeleteRecommendations(ctx context.Context, eventID string) error {
	if !c.enabled {
		return nil
	}

	return c.client.Del(ctx, recommendationsKey(eventID)).Err()
}

// FlushAll clears all cache
func (c *RedisClient) FlushAll(ctx context.Context) error {
	if !c.enabled {
		return nil
	}

	return c.client.FlushAll(ctx).Err()
}
