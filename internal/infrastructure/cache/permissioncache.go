package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	acusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/accesscontrol/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
)

const (
	permKeyPrefix   = "authz:perms:"
	permIndexPrefix = "authz:perms:tenant:"
	basePermTTL     = 5 * time.Minute
	permTTLJitter   = 1 * time.Minute
)

// RedisPermissionCache caches resolved permission sets keyed by
// (user, tenant). Role and membership writes invalidate through the
// per-tenant index set, since a role edit can change any member's set.
type RedisPermissionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisPermissionCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisPermissionCache {
	if ttl <= 0 {
		ttl = basePermTTL
	}
	return &RedisPermissionCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisPermissionCache) key(userID, tenantID uint) string {
	return fmt.Sprintf("%s%d:%d", permKeyPrefix, tenantID, userID)
}

func (c *RedisPermissionCache) indexKey(tenantID uint) string {
	return fmt.Sprintf("%s%d", permIndexPrefix, tenantID)
}

// Get returns the cached set or (nil, nil) on miss. Redis errors are
// reported as errors so the resolver can fall through to the database.
func (c *RedisPermissionCache) Get(ctx context.Context, userID, tenantID uint) (*acusecases.CachedPermissions, error) {
	raw, err := c.client.Get(ctx, c.key(userID, tenantID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached permissions: %w", err)
	}

	var perms acusecases.CachedPermissions
	if err := json.Unmarshal(raw, &perms); err != nil {
		// Corrupt entry; treat as a miss and let the next Set overwrite it.
		c.logger.Warnw("dropping corrupt permission cache entry",
			"user_id", userID,
			"tenant_id", tenantID,
			"error", err)
		return nil, nil
	}
	return &perms, nil
}

func (c *RedisPermissionCache) Set(ctx context.Context, userID, tenantID uint, perms acusecases.CachedPermissions) error {
	raw, err := json.Marshal(perms)
	if err != nil {
		return fmt.Errorf("failed to encode permissions: %w", err)
	}

	key := c.key(userID, tenantID)
	ttl := c.ttl + time.Duration(rand.Int64N(int64(permTTLJitter)))

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, raw, ttl)
	pipe.SAdd(ctx, c.indexKey(tenantID), key)
	pipe.Expire(ctx, c.indexKey(tenantID), ttl+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache permissions: %w", err)
	}
	return nil
}

// InvalidateTenant drops every cached set for a tenant.
func (c *RedisPermissionCache) InvalidateTenant(ctx context.Context, tenantID uint) error {
	indexKey := c.indexKey(tenantID)

	keys, err := c.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list tenant cache keys: %w", err)
	}

	keys = append(keys, indexKey)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate tenant cache: %w", err)
	}
	return nil
}

func (c *RedisPermissionCache) InvalidateUser(ctx context.Context, userID, tenantID uint) error {
	key := c.key(userID, tenantID)
	pipe := c.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, c.indexKey(tenantID), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to invalidate user cache: %w", err)
	}
	return nil
}
