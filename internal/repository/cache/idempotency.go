package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "gift:order:idem:"

// IdempotencyGuard remembers Idempotency-Key values of order submissions for a
// limited time. A guard without a client admits every key.
type IdempotencyGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyGuard(client *redis.Client, ttl time.Duration) *IdempotencyGuard {
	return &IdempotencyGuard{
		client: client,
		ttl:    ttl,
	}
}

// Acquire reports whether key was unseen for the member. The key is stored with
// SET NX so two concurrent submissions cannot both acquire it.
func (g *IdempotencyGuard) Acquire(ctx context.Context, memberID uint, key string) (bool, error) {
	if g.client == nil {
		return true, nil
	}

	ok, err := g.client.SetNX(ctx, g.key(memberID, key), 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("g.client.SetNX -> %w", err)
	}

	return ok, nil
}

// Release forgets key so a failed submission can be retried.
func (g *IdempotencyGuard) Release(ctx context.Context, memberID uint, key string) error {
	if g.client == nil {
		return nil
	}

	if err := g.client.Del(ctx, g.key(memberID, key)).Err(); err != nil {
		return fmt.Errorf("g.client.Del -> %w", err)
	}

	return nil
}

func (g *IdempotencyGuard) key(memberID uint, key string) string {
	return fmt.Sprintf("%s%d:%s", idempotencyKeyPrefix, memberID, key)
}
