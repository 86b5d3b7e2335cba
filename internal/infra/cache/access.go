package cache

import (
	"context"
	"log/slog"
	"time"

	"storent/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AccessDecisionCache keeps relay access answers in Redis under a short TTL.
// Failures degrade to cache misses; the decision source of truth stays in
// Postgres.
type AccessDecisionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAccessDecisionCache(client *redis.Client, ttl time.Duration) shared.AccessDecisionCache {
	return &AccessDecisionCache{client: client, ttl: ttl}
}

func (c *AccessDecisionCache) Get(ctx context.Context, relayID, rentalID uuid.UUID) (bool, bool) {
	val, err := c.client.Get(ctx, key(relayID, rentalID)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("access cache read failed", "error", err.Error())
		}
		return false, false
	}
	return val == "1", true
}

func (c *AccessDecisionCache) Set(ctx context.Context, relayID, rentalID uuid.UUID, allowed bool) {
	val := "0"
	if allowed {
		val = "1"
	}
	if err := c.client.Set(ctx, key(relayID, rentalID), val, c.ttl).Err(); err != nil {
		slog.Warn("access cache write failed", "error", err.Error())
	}
}

func (c *AccessDecisionCache) Forget(ctx context.Context, rentalID uuid.UUID, relayIDs []uuid.UUID) {
	if len(relayIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(relayIDs))
	for _, relayID := range relayIDs {
		keys = append(keys, key(relayID, rentalID))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("access cache invalidation failed", "error", err.Error())
	}
}

func key(relayID, rentalID uuid.UUID) string {
	return "access:" + relayID.String() + ":" + rentalID.String()
}
