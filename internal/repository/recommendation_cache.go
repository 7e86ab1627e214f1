package repository

import (
	"context"
	"devcollab_backend/internal/util"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RecommendationCache 缓存用户下一道推荐题目的 ID，Redis 未启用时所有操作为空操作
type RecommendationCache struct {
	Redis *redis.Client
}

func NewRecommendationCache(rdb *redis.Client) *RecommendationCache {
	return &RecommendationCache{Redis: rdb}
}

func nextChallengeKey(userID uint, language string, projectID *uint) string {
	var scope uint
	if projectID != nil {
		scope = *projectID
	}
	return fmt.Sprintf(util.RedisNextChallengeKey, userID, language, scope)
}

// nextChallengePattern 匹配某用户某语言下所有范围的推荐 key
func nextChallengePattern(userID uint, language string) string {
	return fmt.Sprintf(util.RedisNextChallengePrefix, userID, language) + "*"
}

// Get 命中时返回题目 ID，未命中或出错返回 0
func (c *RecommendationCache) Get(ctx context.Context, userID uint, language string, projectID *uint) uint {
	if c == nil || c.Redis == nil {
		return 0
	}
	val, err := c.Redis.Get(ctx, nextChallengeKey(userID, language, projectID)).Result()
	if err != nil {
		return 0
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func (c *RecommendationCache) Set(ctx context.Context, userID uint, language string, projectID *uint, challengeID uint, ttl time.Duration) error {
	if c == nil || c.Redis == nil || ttl <= 0 {
		return nil
	}
	return c.Redis.Set(ctx, nextChallengeKey(userID, language, projectID), challengeID, ttl).Err()
}

// Invalidate 评分变化后清除该用户该语言下所有范围的推荐
func (c *RecommendationCache) Invalidate(ctx context.Context, userID uint, language string) error {
	if c == nil || c.Redis == nil {
		return nil
	}
	iter := c.Redis.Scan(ctx, 0, nextChallengePattern(userID, language), 100).Iterator()
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
	return c.Redis.Del(ctx, keys...).Err()
}
