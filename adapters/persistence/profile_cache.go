package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/devconnect/devconnect-api/internal/domain/profile"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

const (
	profileListKey = "profiles:all"
	profileListTTL = 5 * time.Minute
)

// redisProfileCache caches the public profile listing. Every cache
// failure degrades to a miss; the repository stays the source of truth.
type redisProfileCache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedisProfileCache(rdb *redis.Client, logger logger.Logger) profile.ListCache {
	return &redisProfileCache{rdb: rdb, logger: logger}
}

func (c *redisProfileCache) GetList(ctx context.Context) ([]*profile.Profile, bool) {
	payload, err := c.rdb.Get(ctx, profileListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Failed to read profile list cache", zap.Error(err))
		}
		return nil, false
	}

	var profiles []*profile.Profile
	if err := json.Unmarshal(payload, &profiles); err != nil {
		c.logger.Warn("Failed to unmarshal cached profile list", zap.Error(err))
		return nil, false
	}
	return profiles, true
}

func (c *redisProfileCache) SetList(ctx context.Context, profiles []*profile.Profile) {
	payload, err := json.Marshal(profiles)
	if err != nil {
		c.logger.Warn("Failed to marshal profile list for cache", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, profileListKey, payload, profileListTTL).Err(); err != nil {
		c.logger.Warn("Failed to write profile list cache", zap.Error(err))
	}
}

func (c *redisProfileCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, profileListKey).Err(); err != nil {
		c.logger.Warn("Failed to invalidate profile list cache", zap.Error(err))
	}
}
