package repository

import (
	"context"
	"devcollab_backend/internal/model"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	DB *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var p model.Project
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// CreateMember 直接插入，重复准入由唯一索引 idx_project_member 拒绝
func (r *ProjectRepository) CreateMember(ctx context.Context, m *model.ProjectMember) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *ProjectRepository) CountMembers(ctx context.Context, projectID, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count, err
}

func (r *ProjectRepository) ListMembers(ctx context.Context, projectID uint) ([]model.ProjectMember, error) {
	var members []model.ProjectMember
	err := r.DB.WithContext(ctx).Where("project_id = ?", projectID).Order("joined_at asc").Find(&members).Error
	return members, err
}
