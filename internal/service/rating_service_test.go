package service

import (
	"context"
	"devcollab_backend/internal/model"
	"devcollab_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSkillRatingDefaultsWithoutRow(t *testing.T) {
	f := newEngineFixture(t)

	got, err := f.ratings.GetSkillRating(context.Background(), 3, "Golang")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultUserRating, got.Rating)
	assert.Equal(t, 0, got.Attempts)
	assert.Equal(t, "go", got.Language)
	assert.Nil(t, got.LastUpdated)

	_, err = f.ratings.GetSkillRating(context.Background(), 3, " ")
	assert.ErrorIs(t, err, util.ErrLanguageRequired)
}

func TestGetChallengeRatingSeedsFromTier(t *testing.T) {
	f := newEngineFixture(t)
	c := f.challenge(t, "graph walk", "go", model.DifficultyExpert, nil)

	got, err := f.ratings.GetChallengeRating(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 1600, got.Rating)
	assert.True(t, got.Seeded)
	assert.Zero(t, got.PassCount)

	_, err = f.ratings.GetChallengeRatingByID(context.Background(), 404)
	assert.ErrorIs(t, err, util.ErrChallengeNotFound)
}

func TestApplyOutcomePersistsBothSides(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	hard := f.challenge(t, "lru cache", "go", model.DifficultyHard, nil)

	update, err := f.ratings.ApplyOutcome(ctx, 1, "go", hard, true, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1224, update.UserRating)
	assert.Equal(t, 1376, update.ChallengeRating)
	assert.Equal(t, 24, update.UserDelta)

	user, err := f.ratings.GetSkillRating(ctx, 1, "go")
	require.NoError(t, err)
	assert.Equal(t, 1224, user.Rating)
	assert.Equal(t, 1, user.Attempts)

	cr, err := f.ratings.GetChallengeRating(ctx, hard)
	require.NoError(t, err)
	assert.False(t, cr.Seeded)
	assert.Equal(t, 1376, cr.Rating)
	assert.Equal(t, 1, cr.Attempts)
	assert.Equal(t, 1, cr.PassCount)

	// 第二次失败：基于已持久化的评分继续计算
	update, err = f.ratings.ApplyOutcome(ctx, 1, "go", hard, false, time.Now())
	require.NoError(t, err)
	expected := ComputeRatingUpdate(RatingInput{
		UserRating:         1224,
		UserAttempts:       1,
		ChallengeRating:    1376,
		ChallengeAttempts:  1,
		ChallengePassCount: 1,
	})
	assert.Equal(t, expected.UserRating, update.UserRating)

	cr, err = f.ratings.GetChallengeRating(ctx, hard)
	require.NoError(t, err)
	assert.Equal(t, 2, cr.Attempts)
	assert.Equal(t, 1, cr.PassCount)
	assert.Equal(t, expected.ChallengeRating, cr.Rating)
}

func TestApplyOutcomeTransientChallengeOnlyUpdatesUser(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	transient := &model.Challenge{Language: "python", Difficulty: model.DifficultyEasy}

	update, err := f.ratings.ApplyOutcome(ctx, 4, "python", transient, false, time.Now())
	require.NoError(t, err)
	assert.Less(t, update.UserRating, model.DefaultUserRating)

	var count int64
	require.NoError(t, f.db.Model(&model.ChallengeRating{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLeaderboardOrdersByRating(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, f.ratingRepo.UpsertSkillRating(ctx, 1, "go", 1300, 0, now))
	require.NoError(t, f.ratingRepo.UpsertSkillRating(ctx, 2, "go", 1450, 0, now))
	require.NoError(t, f.ratingRepo.UpsertSkillRating(ctx, 3, "go", 1100, 0, now))
	require.NoError(t, f.ratingRepo.UpsertSkillRating(ctx, 4, "rust", 1900, 0, now))

	board, err := f.ratings.Leaderboard(ctx, "go", 2)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, uint(2), board[0].UserID)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, uint(1), board[1].UserID)
}
