package model

import (
	"strings"

	"gorm.io/datatypes"
)

// DifficultyTier 题目声明的难度档位
type DifficultyTier string

const (
	DifficultyEasy   DifficultyTier = "easy"
	DifficultyMedium DifficultyTier = "medium"
	DifficultyHard   DifficultyTier = "hard"
	DifficultyExpert DifficultyTier = "expert"
)

// 各难度档位的初始评分
var difficultySeeds = map[DifficultyTier]int{
	DifficultyEasy:   1000,
	DifficultyMedium: 1200,
	DifficultyHard:   1400,
	DifficultyExpert: 1600,
}

// ParseDifficulty 未知档位按 medium 处理
func ParseDifficulty(s string) DifficultyTier {
	tier := DifficultyTier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := difficultySeeds[tier]; ok {
		return tier
	}
	return DifficultyMedium
}

// SeedRating 返回档位对应的初始评分
func (d DifficultyTier) SeedRating() int {
	if seed, ok := difficultySeeds[d]; ok {
		return seed
	}
	return difficultySeeds[DifficultyMedium]
}

// swagger:model Challenge
type Challenge struct {
	BaseModel

	Title      string         `gorm:"size:255;not null" json:"title"`
	Language   string         `gorm:"size:32;index:idx_challenge_lang_active" json:"language"`
	Difficulty DifficultyTier `gorm:"size:16;default:'medium'" json:"difficulty"`
	// ProjectID 为空表示通用题目
	ProjectID *uint          `gorm:"index" json:"projectId,omitempty"`
	Active    bool           `gorm:"not null;index:idx_challenge_lang_active" json:"active"`
	TestSpec  datatypes.JSON `json:"testSpec,omitempty"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// IsGeneric 是否为不属于任何项目的通用题目
func (c *Challenge) IsGeneric() bool {
	return c.ProjectID == nil
}
