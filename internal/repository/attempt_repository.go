package repository

import (
	"context"
	"devcollab_backend/internal/model"
	"devcollab_backend/internal/util"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

// Finalize 将尝试从 evaluating 写入终态，只允许成功一次
func (r *AttemptRepository) Finalize(ctx context.Context, attempt *model.Attempt) error {
	if !attempt.Status.IsTerminal() {
		return fmt.Errorf("finalize attempt %s: status %q is not terminal", attempt.ID, attempt.Status)
	}
	res := r.DB.WithContext(ctx).Model(&model.Attempt{}).
		Where("id = ? AND status = ?", attempt.ID, model.AttemptEvaluating).
		Updates(map[string]interface{}{
			"status":         attempt.Status,
			"score":          attempt.Score,
			"feedback":       attempt.Feedback,
			"evaluator_used": attempt.EvaluatorUsed,
			"evaluated_at":   attempt.EvaluatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("finalize attempt %s: %w", attempt.ID, util.ErrAttemptFinalized)
	}
	return nil
}

// MarkFailed 终态写入失败后的补救：仍处于 evaluating 时标记为失败
func (r *AttemptRepository) MarkFailed(ctx context.Context, id, feedback string, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&model.Attempt{}).
		Where("id = ? AND status = ?", id, model.AttemptEvaluating).
		Updates(map[string]interface{}{
			"status":       model.AttemptFailed,
			"feedback":     feedback,
			"evaluated_at": at,
		}).Error
}

func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*model.Attempt, error) {
	var a model.Attempt
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByUser 按提交时间倒序，projectID 为空时返回全部
func (r *AttemptRepository) ListByUser(ctx context.Context, userID uint, projectID *uint, limit int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	db := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if projectID != nil {
		db = db.Where("project_id = ?", *projectID)
	}
	err := db.Order("submitted_at desc").Limit(limit).Find(&attempts).Error
	return attempts, err
}

// CountFailed 用户在项目下的失败次数，直接由尝试记录统计
func (r *AttemptRepository) CountFailed(ctx context.Context, userID, projectID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Attempt{}).
		Where("user_id = ? AND project_id = ? AND status = ?", userID, projectID, model.AttemptFailed).
		Count(&count).Error
	return count, err
}

// CountPassedChallenges 在给定题目集合中，用户已通过的不同题目数
func (r *AttemptRepository) CountPassedChallenges(ctx context.Context, userID uint, challengeIDs []uint) (int64, error) {
	if len(challengeIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Attempt{}).
		Where("user_id = ? AND status = ? AND challenge_id IN ?", userID, model.AttemptPassed, challengeIDs).
		Distinct("challenge_id").
		Count(&count).Error
	return count, err
}
