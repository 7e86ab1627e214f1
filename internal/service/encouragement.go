package service

import "devcollab_backend/internal/config"

const (
	encourageFirstMessage  = "Don't give up! Every failed attempt teaches you something. Review the feedback and try a smaller step."
	encourageSecondMessage = "You've shown real persistence. Consider revisiting the basics, asking a teammate, or trying an easier challenge first. You've got this!"
)

// FailureSummary 用户在某项目下的失败次数与鼓励文案
type FailureSummary struct {
	ProjectID     uint   `json:"projectId"`
	FailedCount   int64  `json:"failedCount"`
	Encouragement string `json:"encouragement,omitempty"`
}

// EncouragementFor 失败次数恰好达到第一、第二阈值时返回对应文案，其余情况为空
func EncouragementFor(failed int64, cfg config.EngineConfig) string {
	switch failed {
	case int64(cfg.EncourageFirstAt):
		return encourageFirstMessage
	case int64(cfg.EncourageSecondAt):
		return encourageSecondMessage
	}
	return ""
}
