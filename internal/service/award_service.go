package service

import (
	"context"
	"devcollab_backend/internal/model"
	"devcollab_backend/internal/repository"
	"devcollab_backend/pkg/logger"
	"devcollab_backend/pkg/monitoring"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// AwardService 成就账本，同一 (user, project, award_type) 最多发放一次
type AwardService struct {
	AwardRepo     *repository.AwardRepository
	ChallengeRepo *repository.ChallengeRepository
	AttemptRepo   *repository.AttemptRepository
	Notifier      Notifier
}

func NewAwardService(
	awardRepo *repository.AwardRepository,
	challengeRepo *repository.ChallengeRepository,
	attemptRepo *repository.AttemptRepository,
	notifier Notifier,
) *AwardService {
	return &AwardService{
		AwardRepo:     awardRepo,
		ChallengeRepo: challengeRepo,
		AttemptRepo:   attemptRepo,
		Notifier:      notifier,
	}
}

var awardTitles = map[string]string{
	model.AwardProjectChallengesCompleted: "Completed all project challenges",
}

// Grant 先查后插；插入时的唯一约束冲突说明并发请求已发放，按成功的空操作处理。
// 仅当本次调用实际写入时 granted 为 true。
func (s *AwardService) Grant(ctx context.Context, userID, projectID uint, awardType string, metadata map[string]interface{}) (bool, error) {
	exists, err := s.AwardRepo.Exists(ctx, userID, projectID, awardType)
	if err != nil {
		return false, fmt.Errorf("check award: %w", err)
	}
	if exists {
		return false, nil
	}

	title := awardTitles[awardType]
	if title == "" {
		title = awardType
	}
	award := &model.Award{
		UserID:    userID,
		ProjectID: projectID,
		AwardType: awardType,
		Title:     title,
		Metadata:  datatypes.JSONMap(metadata),
		GrantedAt: time.Now(),
	}
	if err := s.AwardRepo.Create(ctx, award); err != nil {
		if repository.IsDuplicateKey(err) {
			logger.Log.Info("award already granted by concurrent attempt",
				zap.Uint("userId", userID),
				zap.Uint("projectId", projectID),
				zap.String("awardType", awardType))
			return false, nil
		}
		return false, fmt.Errorf("create award: %w", err)
	}

	monitoring.AwardsGranted.WithLabelValues(awardType).Inc()
	notifyAsync(s.Notifier, EngineEvent{
		Type:      EventAwardGranted,
		UserID:    userID,
		ProjectID: projectID,
		Payload: map[string]interface{}{
			"awardType": awardType,
			"title":     title,
		},
	})
	return true, nil
}

// CheckProjectCompletion 用户通过项目某语言下全部启用题目时发放完成成就。
// 项目在该语言下没有题目时不发放。
func (s *AwardService) CheckProjectCompletion(ctx context.Context, userID, projectID uint, language string) (bool, error) {
	required, err := s.ChallengeRepo.FindRequiredIDs(ctx, projectID, language)
	if err != nil {
		return false, fmt.Errorf("load required challenges: %w", err)
	}
	if len(required) == 0 {
		return false, nil
	}

	passed, err := s.AttemptRepo.CountPassedChallenges(ctx, userID, required)
	if err != nil {
		return false, fmt.Errorf("count passed challenges: %w", err)
	}
	if passed < int64(len(required)) {
		return false, nil
	}

	granted, err := s.Grant(ctx, userID, projectID, model.AwardProjectChallengesCompleted, map[string]interface{}{
		"language":   language,
		"challenges": len(required),
	})
	if err != nil {
		return false, err
	}
	if granted {
		notifyAsync(s.Notifier, EngineEvent{
			Type:      EventProjectCompleted,
			UserID:    userID,
			ProjectID: projectID,
			Payload:   map[string]interface{}{"language": language},
		})
	}
	return granted, nil
}

func (s *AwardService) ListUserAwards(ctx context.Context, userID uint) ([]model.Award, error) {
	return s.AwardRepo.FindByUserID(ctx, userID)
}
