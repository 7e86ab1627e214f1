package repository

import (
	"context"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextChallengePatternCoversEveryScope(t *testing.T) {
	project := uint(42)
	pattern := nextChallengePattern(7, "go")

	for _, key := range []string{
		nextChallengeKey(7, "go", nil),
		nextChallengeKey(7, "go", &project),
	} {
		ok, err := path.Match(pattern, key)
		require.NoError(t, err)
		assert.True(t, ok, "%s should match %s", key, pattern)
	}

	for _, key := range []string{
		nextChallengeKey(7, "python", nil),
		nextChallengeKey(70, "go", nil),
	} {
		ok, err := path.Match(pattern, key)
		require.NoError(t, err)
		assert.False(t, ok, "%s should not match %s", key, pattern)
	}
}

func TestRecommendationCacheWithoutRedisIsNoop(t *testing.T) {
	cache := NewRecommendationCache(nil)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 1, "go", nil, 9, time.Minute))
	assert.Zero(t, cache.Get(ctx, 1, "go", nil))
	assert.NoError(t, cache.Invalidate(ctx, 1, "go"))
}
