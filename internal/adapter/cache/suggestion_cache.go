package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/theodez1/revly-sub001/internal/domain/model"
)

const suggestionKeyPrefix = "groups:suggestions"

// RedisSuggestionCache stores per-user group suggestion lists in Redis.
// All failures degrade to a cache miss so Redis never blocks a read.
type RedisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSuggestionCache creates a new RedisSuggestionCache
func NewRedisSuggestionCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSuggestionCache {
	return &RedisSuggestionCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached suggestions for a user, or false on a miss.
func (c *RedisSuggestionCache) Get(ctx context.Context, userID uuid.UUID) ([]model.SuggestedGroup, bool) {
	data, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("failed to read suggestion cache",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
		return nil, false
	}

	var suggestions []model.SuggestedGroup
	if err := json.Unmarshal([]byte(data), &suggestions); err != nil {
		c.logger.Warn("failed to deserialize cached suggestions",
			zap.String("user_id", userID.String()), zap.Error(err))
		return nil, false
	}
	return suggestions, true
}

// Set stores the suggestions for a user with the configured TTL.
func (c *RedisSuggestionCache) Set(ctx context.Context, userID uuid.UUID, suggestions []model.SuggestedGroup) {
	data, err := json.Marshal(suggestions)
	if err != nil {
		c.logger.Warn("failed to serialize suggestions",
			zap.String("user_id", userID.String()), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(userID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to write suggestion cache",
			zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// Invalidate drops the cached suggestions for one user.
func (c *RedisSuggestionCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		c.logger.Warn("failed to invalidate suggestion cache",
			zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// Flush drops the suggestion cache for every user. Called when the group
// catalog itself changes.
func (c *RedisSuggestionCache) Flush(ctx context.Context) {
	keys, err := c.client.Keys(ctx, suggestionKeyPrefix+":*").Result()
	if err != nil {
		c.logger.Warn("failed to list suggestion cache keys", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("failed to flush suggestion cache", zap.Error(err))
		return
	}
	c.logger.Debug("suggestion cache flushed", zap.Int("keys_deleted", len(keys)))
}

func (c *RedisSuggestionCache) key(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", suggestionKeyPrefix, userID.String())
}
