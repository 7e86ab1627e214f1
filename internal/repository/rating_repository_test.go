package repository

import (
	"context"
	"devcollab_backend/internal/testutil"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertSkillRatingCreatesThenIncrements(t *testing.T) {
	repo := NewRatingRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.FindSkillRating(ctx, 1, "go")
	require.True(t, IsNotFound(err))

	now := time.Now()
	require.NoError(t, repo.UpsertSkillRating(ctx, 1, "go", 1222, 22, now))
	require.NoError(t, repo.UpsertSkillRating(ctx, 1, "go", 1240, 18, now.Add(time.Second)))

	sr, err := repo.FindSkillRating(ctx, 1, "go")
	require.NoError(t, err)
	assert.Equal(t, 1240, sr.Rating)
	assert.Equal(t, 2, sr.Attempts)

	// 不同语言互不影响
	require.NoError(t, repo.UpsertSkillRating(ctx, 1, "python", 1180, -20, now))
	py, err := repo.FindSkillRating(ctx, 1, "python")
	require.NoError(t, err)
	assert.Equal(t, 1, py.Attempts)
}

func TestUpsertChallengeRatingCountsPasses(t *testing.T) {
	repo := NewRatingRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.UpsertChallengeRating(ctx, 9, 1378, -22, true, now))
	require.NoError(t, repo.UpsertChallengeRating(ctx, 9, 1390, 12, false, now))
	require.NoError(t, repo.UpsertChallengeRating(ctx, 9, 1380, -10, true, now))

	cr, err := repo.FindChallengeRating(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 1380, cr.Rating)
	assert.Equal(t, 3, cr.Attempts)
	assert.Equal(t, 2, cr.PassCount)

	ratings, err := repo.FindChallengeRatings(ctx, []uint{9, 10})
	require.NoError(t, err)
	assert.Equal(t, map[uint]int{9: 1380}, ratings)
}

func TestConcurrentUpsertsNeverLoseAttemptsOrDeltas(t *testing.T) {
	repo := NewRatingRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n*2)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// 所有结果基于同一快照计算，增量必须全部生效
			errs <- repo.UpsertSkillRating(ctx, 3, "rust", 1210, 10, time.Now())
			errs <- repo.UpsertChallengeRating(ctx, 4, 1390, -10, i%2 == 0, time.Now())
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	sr, err := repo.FindSkillRating(ctx, 3, "rust")
	require.NoError(t, err)
	assert.Equal(t, n, sr.Attempts)
	assert.Equal(t, 1210+10*(n-1), sr.Rating)

	cr, err := repo.FindChallengeRating(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, n, cr.Attempts)
	assert.Equal(t, 1390-10*(n-1), cr.Rating)
	assert.Equal(t, 13, cr.PassCount)
}

func TestTopSkillRatings(t *testing.T) {
	repo := NewRatingRepository(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.UpsertSkillRating(ctx, 1, "go", 1300, 0, now))
	require.NoError(t, repo.UpsertSkillRating(ctx, 2, "go", 1450, 0, now))
	require.NoError(t, repo.UpsertSkillRating(ctx, 3, "go", 1100, 0, now))
	require.NoError(t, repo.UpsertSkillRating(ctx, 4, "java", 1900, 0, now))

	top, err := repo.TopSkillRatings(ctx, "go", 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, uint(2), top[0].UserID)
	assert.Equal(t, uint(1), top[1].UserID)
}
