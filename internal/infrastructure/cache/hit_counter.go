package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ecomercado/backend/internal/domain/recommend"
	"github.com/ecomercado/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisHitCounter implements recommend.HitCounter with a Redis INCR per
// target. The counter is authoritative for the global hit total; the
// database copy is a mirror updated after each increment.
type RedisHitCounter struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisHitCounter creates a counter backed by a new Redis connection
func NewRedisHitCounter(cfg config.RedisConfig) (*RedisHitCounter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisHitCounter{
		client:    client,
		keyPrefix: "hits:",
	}, nil
}

// NewRedisHitCounterWithClient creates a counter sharing an existing client
func NewRedisHitCounterWithClient(client *redis.Client, keyPrefix string) *RedisHitCounter {
	if keyPrefix == "" {
		keyPrefix = "hits:"
	}
	return &RedisHitCounter{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Increment atomically bumps the counter and returns the new total
func (c *RedisHitCounter) Increment(ctx context.Context, kind recommend.TargetKind, targetID uuid.UUID) (int64, error) {
	key := c.key(kind, targetID)
	total, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment hit counter: %w", err)
	}
	return total, nil
}

// Close releases the underlying Redis connection
func (c *RedisHitCounter) Close() error {
	return c.client.Close()
}

func (c *RedisHitCounter) key(kind recommend.TargetKind, targetID uuid.UUID) string {
	return c.keyPrefix + strings.ToLower(string(kind)) + ":" + targetID.String()
}

// Ensure RedisHitCounter implements recommend.HitCounter
var _ recommend.HitCounter = (*RedisHitCounter)(nil)
