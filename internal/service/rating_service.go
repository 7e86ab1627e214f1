package service

import (
	"context"
	"devcollab_backend/internal/model"
	"devcollab_backend/internal/repository"
	"devcollab_backend/internal/util"
	"devcollab_backend/pkg/logger"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type RatingService struct {
	RatingRepo    *repository.RatingRepository
	ChallengeRepo *repository.ChallengeRepository
	Cache         *repository.RecommendationCache
}

func NewRatingService(
	ratingRepo *repository.RatingRepository,
	challengeRepo *repository.ChallengeRepository,
	cache *repository.RecommendationCache,
) *RatingService {
	return &RatingService{
		RatingRepo:    ratingRepo,
		ChallengeRepo: challengeRepo,
		Cache:         cache,
	}
}

type SkillRatingView struct {
	UserID      uint       `json:"userId"`
	Language    string     `json:"language"`
	Rating      int        `json:"rating"`
	Attempts    int        `json:"attempts"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

type ChallengeRatingView struct {
	ChallengeID uint       `json:"challengeId"`
	Rating      int        `json:"rating"`
	Attempts    int        `json:"attempts"`
	PassCount   int        `json:"passCount"`
	Seeded      bool       `json:"seeded"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   uint   `json:"userId"`
	Rating   int    `json:"rating"`
	Attempts int    `json:"attempts"`
	Language string `json:"language"`
}

// GetSkillRating 无记录时返回默认评分 1200，不写库
func (s *RatingService) GetSkillRating(ctx context.Context, userID uint, language string) (*SkillRatingView, error) {
	lang := model.NormalizeLanguage(language)
	if lang == "" {
		return nil, util.ErrLanguageRequired
	}

	sr, err := s.RatingRepo.FindSkillRating(ctx, userID, lang)
	if err != nil {
		if repository.IsNotFound(err) {
			return &SkillRatingView{UserID: userID, Language: lang, Rating: model.DefaultUserRating}, nil
		}
		return nil, err
	}
	updated := sr.LastUpdated
	return &SkillRatingView{
		UserID:      sr.UserID,
		Language:    sr.Language,
		Rating:      sr.Rating,
		Attempts:    sr.Attempts,
		LastUpdated: &updated,
	}, nil
}

// GetChallengeRating 题目尚未被评分时返回难度档位初始值
func (s *RatingService) GetChallengeRating(ctx context.Context, challenge *model.Challenge) (*ChallengeRatingView, error) {
	cr, err := s.RatingRepo.FindChallengeRating(ctx, challenge.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return &ChallengeRatingView{
				ChallengeID: challenge.ID,
				Rating:      challenge.Difficulty.SeedRating(),
				Seeded:      true,
			}, nil
		}
		return nil, err
	}
	updated := cr.LastUpdated
	return &ChallengeRatingView{
		ChallengeID: cr.ChallengeID,
		Rating:      cr.Rating,
		Attempts:    cr.Attempts,
		PassCount:   cr.PassCount,
		LastUpdated: &updated,
	}, nil
}

func (s *RatingService) GetChallengeRatingByID(ctx context.Context, challengeID uint) (*ChallengeRatingView, error) {
	c, err := s.ChallengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}
	return s.GetChallengeRating(ctx, c)
}

// ApplyOutcome 读取双方当前评分，计算后分别原子 upsert。
// challenge.ID 为 0 时为临时题目，只更新用户侧，题目侧按难度档位计算。
func (s *RatingService) ApplyOutcome(ctx context.Context, userID uint, language string, challenge *model.Challenge, passed bool, at time.Time) (*RatingUpdate, error) {
	lang := model.NormalizeLanguage(language)
	if lang == "" {
		return nil, util.ErrLanguageRequired
	}

	user, err := s.GetSkillRating(ctx, userID, lang)
	if err != nil {
		return nil, fmt.Errorf("load skill rating: %w", err)
	}

	in := RatingInput{
		UserRating:      user.Rating,
		UserAttempts:    user.Attempts,
		ChallengeRating: challenge.Difficulty.SeedRating(),
		Passed:          passed,
	}
	persisted := challenge.ID != 0
	if persisted {
		cr, err := s.GetChallengeRating(ctx, challenge)
		if err != nil {
			return nil, fmt.Errorf("load challenge rating: %w", err)
		}
		in.ChallengeRating = cr.Rating
		in.ChallengeAttempts = cr.Attempts
		in.ChallengePassCount = cr.PassCount
	}

	update := ComputeRatingUpdate(in)

	if err := s.RatingRepo.UpsertSkillRating(ctx, userID, lang, update.UserRating, update.UserDelta, at); err != nil {
		return nil, fmt.Errorf("upsert skill rating: %w", err)
	}
	if persisted {
		if err := s.RatingRepo.UpsertChallengeRating(ctx, challenge.ID, update.ChallengeRating, update.ChallengeDelta, passed, at); err != nil {
			return nil, fmt.Errorf("upsert challenge rating: %w", err)
		}
	}

	if err := s.Cache.Invalidate(ctx, userID, lang); err != nil {
		logger.Log.Warn("invalidate recommendation cache failed",
			zap.Uint("userId", userID),
			zap.String("language", lang),
			zap.Error(err))
	}
	return &update, nil
}

func (s *RatingService) Leaderboard(ctx context.Context, language string, limit int) ([]LeaderboardEntry, error) {
	lang := model.NormalizeLanguage(language)
	if lang == "" {
		return nil, util.ErrLanguageRequired
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := s.RatingRepo.TopSkillRatings(ctx, lang, limit)
	if err != nil {
		return nil, err
	}
	leaderboard := make([]LeaderboardEntry, len(rows))
	for i, row := range rows {
		leaderboard[i] = LeaderboardEntry{
			Rank:     i + 1,
			UserID:   row.UserID,
			Rating:   row.Rating,
			Attempts: row.Attempts,
			Language: row.Language,
		}
	}
	return leaderboard, nil
}
