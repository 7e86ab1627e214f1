package model

import "time"

// DefaultUserRating 用户在某语言下无评分记录时的默认值
const DefaultUserRating = 1200

// SkillRating 用户在某编程语言下的技能评分，(user_id, language) 唯一
type SkillRating struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_skill_user_lang" json:"userId"`
	Language    string    `gorm:"size:32;not null;uniqueIndex:idx_skill_user_lang;index:idx_skill_lang_rating" json:"language"`
	Rating      int       `gorm:"not null;default:1200;index:idx_skill_lang_rating" json:"rating"`
	Attempts    int       `gorm:"not null;default:0" json:"attempts"`
	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (SkillRating) TableName() string {
	return "skill_ratings"
}

// ChallengeRating 题目的难度评分，challenge_id 唯一
type ChallengeRating struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChallengeID uint      `gorm:"not null;uniqueIndex" json:"challengeId"`
	Rating      int       `gorm:"not null" json:"rating"`
	Attempts    int       `gorm:"not null;default:0" json:"attempts"`
	PassCount   int       `gorm:"not null;default:0" json:"passCount"`
	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (ChallengeRating) TableName() string {
	return "challenge_ratings"
}
