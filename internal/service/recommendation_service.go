package service

import (
	"context"
	"devcollab_backend/internal/config"
	"devcollab_backend/internal/model"
	"devcollab_backend/internal/repository"
	"devcollab_backend/internal/util"
	"devcollab_backend/pkg/logger"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RecommendationService 按用户当前评分推荐下一道题目，与提交流程相互独立
type RecommendationService struct {
	ChallengeRepo *repository.ChallengeRepository
	ProjectRepo   *repository.ProjectRepository
	RatingRepo    *repository.RatingRepository
	RatingService *RatingService
	Cache         *repository.RecommendationCache

	ttlSeconds atomic.Int64
}

func NewRecommendationService(
	challengeRepo *repository.ChallengeRepository,
	projectRepo *repository.ProjectRepository,
	ratingRepo *repository.RatingRepository,
	ratingService *RatingService,
	cache *repository.RecommendationCache,
	cfg config.EngineConfig,
) *RecommendationService {
	s := &RecommendationService{
		ChallengeRepo: challengeRepo,
		ProjectRepo:   projectRepo,
		RatingRepo:    ratingRepo,
		RatingService: ratingService,
		Cache:         cache,
	}
	s.ttlSeconds.Store(int64(cfg.RecommendationTTLSecs))
	return s
}

// UpdateConfig 配置热更新
func (s *RecommendationService) UpdateConfig(cfg config.EngineConfig) {
	s.ttlSeconds.Store(int64(cfg.RecommendationTTLSecs))
}

type Recommendation struct {
	Challenge       *model.Challenge `json:"challenge"`
	UserRating      int              `json:"userRating"`
	ChallengeRating int              `json:"challengeRating"`
	Cached          bool             `json:"cached"`
}

// NextChallenge 候选为该语言下启用的题目；projectID 非空时仅限通用题目和该项目题目。
// 候选为空返回 util.ErrNoCandidates，不自动放宽范围。
func (s *RecommendationService) NextChallenge(ctx context.Context, userID uint, language string, projectID *uint) (*Recommendation, error) {
	lang := model.NormalizeLanguage(language)
	if lang == "" {
		return nil, util.ErrLanguageRequired
	}
	if projectID != nil {
		if _, err := s.ProjectRepo.FindByID(ctx, *projectID); err != nil {
			if repository.IsNotFound(err) {
				return nil, util.ErrProjectNotFound
			}
			return nil, err
		}
	}

	if rec := s.fromCache(ctx, userID, lang, projectID); rec != nil {
		return rec, nil
	}

	var (
		user       *SkillRatingView
		candidates []model.Challenge
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.RatingService.GetSkillRating(gctx, userID, lang)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = s.ChallengeRepo.FindCandidates(gctx, lang, projectID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w for language %q", util.ErrNoCandidates, lang)
	}

	ids := make([]uint, len(candidates))
	for i := range candidates {
		ids[i] = candidates[i].ID
	}
	ratings, err := s.RatingRepo.FindChallengeRatings(ctx, ids)
	if err != nil {
		return nil, err
	}

	picked, err := SelectChallenge(user.Rating, candidates, ratings)
	if err != nil {
		return nil, err
	}

	ttl := config.EngineConfig{RecommendationTTLSecs: int(s.ttlSeconds.Load())}.RecommendationTTL()
	if err := s.Cache.Set(ctx, userID, lang, projectID, picked.ID, ttl); err != nil {
		logger.Log.Warn("cache recommendation failed", zap.Uint("userId", userID), zap.Error(err))
	}

	return &Recommendation{
		Challenge:       picked,
		UserRating:      user.Rating,
		ChallengeRating: EffectiveRating(picked, ratings),
	}, nil
}

// fromCache 缓存的题目已下线或评分读取失败时视为未命中
func (s *RecommendationService) fromCache(ctx context.Context, userID uint, lang string, projectID *uint) *Recommendation {
	id := s.Cache.Get(ctx, userID, lang, projectID)
	if id == 0 {
		return nil
	}
	c, err := s.ChallengeRepo.FindByID(ctx, id)
	if err != nil || !c.Active {
		return nil
	}
	user, err := s.RatingService.GetSkillRating(ctx, userID, lang)
	if err != nil {
		return nil
	}
	cr, err := s.RatingService.GetChallengeRating(ctx, c)
	if err != nil {
		return nil
	}
	return &Recommendation{
		Challenge:       c,
		UserRating:      user.Rating,
		ChallengeRating: cr.Rating,
		Cached:          true,
	}
}
