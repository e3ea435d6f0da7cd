package lock

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/poolbot/internal/common/uuid"
)

const leaseKeyPrefix = "poolbot:lease:"

// releaseScript deletes the key only when it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Config holds configuration for the Redis locker
type Config struct {
	RedisClient *redis.Client

	// UUID generates lease tokens, defaults to random UUIDs
	UUID uuid.UUID
}

type redisLocker struct {
	client *redis.Client
	uuid   uuid.UUID
}

// NewRedis creates a Redis-backed locker
func NewRedis(cfg *Config) (*redisLocker, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	gen := cfg.UUID
	if gen == nil {
		gen = uuid.New()
	}

	return &redisLocker{
		client: cfg.RedisClient,
		uuid:   gen,
	}, nil
}

func (l *redisLocker) Acquire(ctx context.Context, input *AcquireInput) (*Lease, error) {
	if input == nil || input.Key == "" {
		return nil, errors.New("lease key cannot be empty")
	}
	if input.TTL <= 0 {
		return nil, errors.New("lease ttl must be positive")
	}

	lease := &Lease{
		Key:   leaseKeyPrefix + input.Key,
		Token: l.uuid.NewUUID(),
	}

	ok, err := l.client.SetNX(ctx, lease.Key, lease.Token, input.TTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lease %s: %w", input.Key, err)
	}
	if !ok {
		return nil, nil
	}

	return lease, nil
}

func (l *redisLocker) Release(ctx context.Context, lease *Lease) error {
	if lease == nil {
		return nil
	}

	if err := releaseScript.Run(ctx, l.client, []string{lease.Key}, lease.Token).Err(); err != nil {
		return fmt.Errorf("failed to release lease %s: %w", lease.Key, err)
	}

	return nil
}
