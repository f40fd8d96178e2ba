package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lifecurriculum/backend/internal/infrastructure/config"
)

// RedisQuotaStore implements QuotaStore on Redis. Suitable for
// deployments with more than one server instance sharing quota state.
type RedisQuotaStore struct {
	client *redis.Client
}

// NewRedisQuotaStore connects to Redis and verifies the connection
func NewRedisQuotaStore(cfg config.RedisConfig) (*RedisQuotaStore, error) {
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

	return &RedisQuotaStore{client: client}, nil
}

// NewRedisQuotaStoreWithClient wraps an existing Redis client
func NewRedisQuotaStoreWithClient(client *redis.Client) *RedisQuotaStore {
	return &RedisQuotaStore{client: client}
}

// Take consumes one unit of the user's daily quota
func (s *RedisQuotaStore) Take(ctx context.Context, userID string, limit int) (int, bool, error) {
	now := time.Now()
	key := quotaKey(userID, now)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, false, fmt.Errorf("failed to increment quota: %w", err)
	}

	// First hit of the day creates the key, so attach the expiry here.
	if count == 1 {
		if err := s.client.Expire(ctx, key, untilMidnightUTC(now)).Err(); err != nil {
			return 0, false, fmt.Errorf("failed to set quota expiry: %w", err)
		}
	}

	if int(count) > limit {
		// Roll back so a burst of rejected requests does not inflate
		// the counter past the limit.
		if err := s.client.Decr(ctx, key).Err(); err != nil {
			return 0, false, fmt.Errorf("failed to roll back quota: %w", err)
		}
		return limit, false, nil
	}

	return int(count), true, nil
}

// Used returns the number of units consumed today
func (s *RedisQuotaStore) Used(ctx context.Context, userID string) (int, error) {
	count, err := s.client.Get(ctx, quotaKey(userID, time.Now())).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read quota: %w", err)
	}
	return count, nil
}

// Close closes the Redis client
func (s *RedisQuotaStore) Close() error {
	return s.client.Close()
}
