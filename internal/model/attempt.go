package model

import "time"

type AttemptStatus string

const (
	AttemptEvaluating AttemptStatus = "evaluating"
	AttemptPassed     AttemptStatus = "passed"
	AttemptFailed     AttemptStatus = "failed"
)

// IsTerminal 终态之后记录不可再修改
func (s AttemptStatus) IsTerminal() bool {
	return s == AttemptPassed || s == AttemptFailed
}

const (
	EvaluatorPrimary  = "primary"
	EvaluatorFallback = "fallback"
	EvaluatorSandbox  = "sandbox"
)

// swagger:model Attempt
type Attempt struct {
	UUIDBase

	UserID uint `gorm:"not null;index:idx_attempt_user_project" json:"userId"`
	// ChallengeID 为空表示临时生成、未持久化的题目
	ChallengeID   *uint         `gorm:"index" json:"challengeId,omitempty"`
	ProjectID     *uint         `gorm:"index:idx_attempt_user_project" json:"projectId,omitempty"`
	Language      string        `gorm:"size:32" json:"language"`
	Content       string        `gorm:"type:text" json:"content"`
	ContentHash   string        `gorm:"size:64;index" json:"contentHash"`
	Score         int           `gorm:"default:0" json:"score"`
	Status        AttemptStatus `gorm:"size:16;not null;default:'evaluating';index" json:"status"`
	Feedback      string        `gorm:"type:text" json:"feedback"`
	EvaluatorUsed string        `gorm:"size:16" json:"evaluatorUsed"`
	SubmittedAt   time.Time     `json:"submittedAt"`
	EvaluatedAt   *time.Time    `json:"evaluatedAt,omitempty"`
}

func (Attempt) TableName() string {
	return "attempts"
}
