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

type ProjectService struct {
	ProjectRepo *repository.ProjectRepository
	Notifier    Notifier
}

func NewProjectService(projectRepo *repository.ProjectRepository, notifier Notifier) *ProjectService {
	return &ProjectService{
		ProjectRepo: projectRepo,
		Notifier:    notifier,
	}
}

func (s *ProjectService) GetProject(ctx context.Context, id uint) (*model.Project, error) {
	p, err := s.ProjectRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

// Admit 直接插入成员记录，唯一约束冲突说明已是成员，视为成功。
// admitted 仅在本次调用新建成员时为 true。
func (s *ProjectService) Admit(ctx context.Context, projectID, userID uint, attemptID string) (bool, error) {
	member := &model.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      model.RoleMember,
		Status:    "active",
		AttemptID: attemptID,
		JoinedAt:  time.Now(),
	}
	if err := s.ProjectRepo.CreateMember(ctx, member); err != nil {
		if repository.IsDuplicateKey(err) {
			logger.Log.Debug("user already a project member",
				zap.Uint("projectId", projectID),
				zap.Uint("userId", userID))
			return false, nil
		}
		return false, fmt.Errorf("admit member: %w", err)
	}

	notifyAsync(s.Notifier, EngineEvent{
		Type:      EventMemberAdmitted,
		UserID:    userID,
		ProjectID: projectID,
		Payload:   map[string]interface{}{"attemptId": attemptID},
	})
	return true, nil
}

func (s *ProjectService) ListMembers(ctx context.Context, projectID uint) ([]model.ProjectMember, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.ProjectRepo.ListMembers(ctx, projectID)
}
