package service

import (
	"context"
	"devcollab_backend/internal/config"
	"devcollab_backend/internal/model"
	"devcollab_backend/internal/repository"
	"devcollab_backend/internal/testutil"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type engineFixture struct {
	db            *gorm.DB
	challengeRepo *repository.ChallengeRepository
	projectRepo   *repository.ProjectRepository
	ratingRepo    *repository.RatingRepository
	attemptRepo   *repository.AttemptRepository
	awardRepo     *repository.AwardRepository

	ratings  *RatingService
	awards   *AwardService
	projects *ProjectService
	recs     *RecommendationService
	attempts *AttemptService
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := config.DefaultEngineConfig()

	f := &engineFixture{
		db:            db,
		challengeRepo: repository.NewChallengeRepository(db),
		projectRepo:   repository.NewProjectRepository(db),
		ratingRepo:    repository.NewRatingRepository(db),
		attemptRepo:   repository.NewAttemptRepository(db),
		awardRepo:     repository.NewAwardRepository(db),
	}
	// Redis 未启用
	cache := repository.NewRecommendationCache(nil)

	f.ratings = NewRatingService(f.ratingRepo, f.challengeRepo, cache)
	f.awards = NewAwardService(f.awardRepo, f.challengeRepo, f.attemptRepo, NopNotifier{})
	f.projects = NewProjectService(f.projectRepo, NopNotifier{})
	f.recs = NewRecommendationService(f.challengeRepo, f.projectRepo, f.ratingRepo, f.ratings, cache, cfg)
	chain := NewEvaluatorChain(NewFeatureEvaluator(), NewHeuristicEvaluator(), cfg.PassThreshold)
	f.attempts = NewAttemptService(f.attemptRepo, f.challengeRepo, f.projects, f.ratings, f.awards, chain, nil, cfg)
	return f
}

func (f *engineFixture) project(t *testing.T, name, language string, recruiting bool) *model.Project {
	t.Helper()
	p := &model.Project{Name: name, OwnerID: 99, Language: language, Recruiting: recruiting, Status: model.ProjectOpen}
	require.NoError(t, f.projectRepo.Create(context.Background(), p))
	return p
}

func (f *engineFixture) challenge(t *testing.T, title, language string, tier model.DifficultyTier, projectID *uint) *model.Challenge {
	t.Helper()
	c := &model.Challenge{Title: title, Language: language, Difficulty: tier, ProjectID: projectID, Active: true}
	require.NoError(t, f.challengeRepo.Create(context.Background(), c))
	return c
}

func (f *engineFixture) deactivate(t *testing.T, c *model.Challenge) {
	t.Helper()
	require.NoError(t, f.db.Model(c).Update("active", false).Error)
	c.Active = false
}

func idOf(v uint) *uint { return &v }
