package repository

import (
	"context"
	"devcollab_backend/internal/model"

	"gorm.io/gorm"
)

type AwardRepository struct {
	DB *gorm.DB
}

func NewAwardRepository(db *gorm.DB) *AwardRepository {
	return &AwardRepository{DB: db}
}

func (r *AwardRepository) Exists(ctx context.Context, userID, projectID uint, awardType string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Award{}).
		Where("user_id = ? AND project_id = ? AND award_type = ?", userID, projectID, awardType).
		Count(&count).Error
	return count > 0, err
}

// Create 唯一索引 idx_award_key 保证同一键最多一行
func (r *AwardRepository) Create(ctx context.Context, award *model.Award) error {
	return r.DB.WithContext(ctx).Create(award).Error
}

func (r *AwardRepository) FindByUserID(ctx context.Context, userID uint) ([]model.Award, error) {
	var awards []model.Award
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("granted_at desc").Find(&awards).Error
	return awards, err
}

func (r *AwardRepository) CountByKey(ctx context.Context, userID, projectID uint, awardType string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Award{}).
		Where("user_id = ? AND project_id = ? AND award_type = ?", userID, projectID, awardType).
		Count(&count).Error
	return count, err
}
