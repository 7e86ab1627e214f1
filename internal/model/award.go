package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	// AwardProjectChallengesCompleted 通过项目某语言下全部题目
	AwardProjectChallengesCompleted = "project_challenges_completed"
)

// Award 成就记录，(user_id, project_id, award_type) 全局唯一
type Award struct {
	ID        uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint              `gorm:"not null;uniqueIndex:idx_award_key" json:"userId"`
	ProjectID uint              `gorm:"not null;uniqueIndex:idx_award_key" json:"projectId"`
	AwardType string            `gorm:"size:64;not null;uniqueIndex:idx_award_key" json:"awardType"`
	Title     string            `gorm:"size:255" json:"title"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty"`
	GrantedAt time.Time         `json:"grantedAt"`
}

func (Award) TableName() string {
	return "awards"
}
