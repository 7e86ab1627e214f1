package service

import (
	"devcollab_backend/internal/model"
	"devcollab_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func challengeWith(id uint, tier model.DifficultyTier) model.Challenge {
	c := model.Challenge{Language: "go", Difficulty: tier, Active: true}
	c.ID = id
	return c
}

func tierCandidates() []model.Challenge {
	return []model.Challenge{
		challengeWith(1, model.DifficultyEasy),
		challengeWith(2, model.DifficultyMedium),
		challengeWith(3, model.DifficultyHard),
		challengeWith(4, model.DifficultyExpert),
	}
}

func TestSelectChallengeClosestSeed(t *testing.T) {
	picked, err := SelectChallenge(1250, tierCandidates(), nil)
	require.NoError(t, err)
	assert.Equal(t, uint(2), picked.ID)
	assert.Equal(t, 1200, EffectiveRating(picked, nil))
}

func TestSelectChallengePrefersStoredRating(t *testing.T) {
	// 困难题实际评分已经降到 1260
	ratings := map[uint]int{3: 1260}
	picked, err := SelectChallenge(1250, tierCandidates(), ratings)
	require.NoError(t, err)
	assert.Equal(t, uint(3), picked.ID)
}

func TestSelectChallengeExtremes(t *testing.T) {
	low, err := SelectChallenge(600, tierCandidates(), nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), low.ID)

	high, err := SelectChallenge(2400, tierCandidates(), nil)
	require.NoError(t, err)
	assert.Equal(t, uint(4), high.ID)
}

func TestSelectChallengeTieReturnsOneOfTied(t *testing.T) {
	picked, err := SelectChallenge(1300, tierCandidates(), nil)
	require.NoError(t, err)
	assert.Contains(t, []uint{2, 3}, picked.ID)
}

func TestSelectChallengeNoCandidates(t *testing.T) {
	_, err := SelectChallenge(1200, nil, nil)
	assert.ErrorIs(t, err, util.ErrNoCandidates)
}

func TestDifficultySeeds(t *testing.T) {
	assert.Equal(t, 1000, model.DifficultyEasy.SeedRating())
	assert.Equal(t, 1200, model.DifficultyMedium.SeedRating())
	assert.Equal(t, 1400, model.DifficultyHard.SeedRating())
	assert.Equal(t, 1600, model.DifficultyExpert.SeedRating())
	assert.Equal(t, 1200, model.DifficultyTier("legendary").SeedRating())
	assert.Equal(t, model.DifficultyHard, model.ParseDifficulty(" HARD "))
}
