package repository

import (
	"context"
	"devcollab_backend/internal/model"

	"gorm.io/gorm"
)

// ChallengeRepository 题库只读查询，本服务不修改题目
type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id uint) (*model.Challenge, error) {
	var c model.Challenge
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindCandidates 某语言下的启用题目；projectID 非空时仅保留通用题目和该项目题目。
// 语言按规范名及别名匹配，不区分大小写。
func (r *ChallengeRepository) FindCandidates(ctx context.Context, language string, projectID *uint) ([]model.Challenge, error) {
	var challenges []model.Challenge
	db := r.DB.WithContext(ctx).Where("LOWER(language) IN ? AND active = ?", model.LanguageVariants(language), true)
	if projectID != nil {
		db = db.Where("project_id IS NULL OR project_id = ?", *projectID)
	}
	err := db.Order("id asc").Find(&challenges).Error
	return challenges, err
}

// FindRequiredIDs 项目在某语言下需要通过的全部启用题目
func (r *ChallengeRepository) FindRequiredIDs(ctx context.Context, projectID uint, language string) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.Challenge{}).
		Where("project_id = ? AND LOWER(language) IN ? AND active = ?", projectID, model.LanguageVariants(language), true).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *ChallengeRepository) Create(ctx context.Context, c *model.Challenge) error {
	return r.DB.WithContext(ctx).Create(c).Error
}
