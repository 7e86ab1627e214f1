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

func TestNextChallengeMatchesUserRating(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	f.challenge(t, "easy", "go", model.DifficultyEasy, nil)
	medium := f.challenge(t, "medium", "go", model.DifficultyMedium, nil)
	f.challenge(t, "hard", "go", model.DifficultyHard, nil)
	f.challenge(t, "expert", "go", model.DifficultyExpert, nil)
	require.NoError(t, f.ratingRepo.UpsertSkillRating(ctx, 1, "go", 1250, 0, time.Now()))

	rec, err := f.recs.NextChallenge(ctx, 1, "golang", nil)
	require.NoError(t, err)
	assert.Equal(t, medium.ID, rec.Challenge.ID)
	assert.Equal(t, 1250, rec.UserRating)
	assert.Equal(t, 1200, rec.ChallengeRating)
	assert.False(t, rec.Cached)
}

func TestNextChallengeUsesStoredChallengeRating(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	f.challenge(t, "medium", "go", model.DifficultyMedium, nil)
	expert := f.challenge(t, "expert but easy in practice", "go", model.DifficultyExpert, nil)
	require.NoError(t, f.ratingRepo.UpsertChallengeRating(ctx, expert.ID, 1190, 0, true, time.Now()))

	rec, err := f.recs.NextChallenge(ctx, 1, "go", nil)
	require.NoError(t, err)
	assert.Equal(t, expert.ID, rec.Challenge.ID)
	assert.Equal(t, 1190, rec.ChallengeRating)
}

func TestNextChallengeProjectScope(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	mine := f.project(t, "mine", "go", true)
	other := f.project(t, "other", "go", true)
	f.challenge(t, "generic", "go", model.DifficultyExpert, nil)
	scoped := f.challenge(t, "mine", "go", model.DifficultyHard, idOf(mine.ID))
	f.challenge(t, "theirs", "go", model.DifficultyMedium, idOf(other.ID))
	inactive := f.challenge(t, "retired", "go", model.DifficultyMedium, nil)
	f.deactivate(t, inactive)

	rec, err := f.recs.NextChallenge(ctx, 1, "go", idOf(mine.ID))
	require.NoError(t, err)
	assert.Equal(t, scoped.ID, rec.Challenge.ID)
}

func TestNextChallengeNoCandidates(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	f.challenge(t, "go only", "go", model.DifficultyMedium, nil)

	_, err := f.recs.NextChallenge(ctx, 1, "rust", nil)
	assert.ErrorIs(t, err, util.ErrNoCandidates)

	_, err = f.recs.NextChallenge(ctx, 1, "", nil)
	assert.ErrorIs(t, err, util.ErrLanguageRequired)

	_, err = f.recs.NextChallenge(ctx, 1, "go", idOf(77))
	assert.ErrorIs(t, err, util.ErrProjectNotFound)
}
