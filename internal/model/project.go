package model

import "time"

type ProjectStatus string

const (
	ProjectOpen      ProjectStatus = "open"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// swagger:model Project
type Project struct {
	BaseModel

	Name     string `gorm:"size:255;not null" json:"name"`
	OwnerID  uint   `gorm:"index" json:"ownerId"`
	Language string `gorm:"size:32" json:"language"`
	// Recruiting 为 true 时，通过项目题目即自动加入项目
	Recruiting bool          `gorm:"not null" json:"recruiting"`
	Status     ProjectStatus `gorm:"size:16;default:'open'" json:"status"`
}

func (Project) TableName() string {
	return "projects"
}

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleMember MemberRole = "member"
)

// ProjectMember 项目成员（通过招募题目后的准入记录），(project_id, user_id) 唯一
type ProjectMember struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID uint       `gorm:"not null;uniqueIndex:idx_project_member" json:"projectId"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_project_member" json:"userId"`
	Role      MemberRole `gorm:"size:16;default:'member'" json:"role"`
	Status    string     `gorm:"size:16;default:'active'" json:"status"`
	AttemptID string     `gorm:"size:36" json:"attemptId"`
	JoinedAt  time.Time  `json:"joinedAt"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
