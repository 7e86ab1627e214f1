package util

import "errors"

// 前置条件错误：在任何状态变更前拒绝
var (
	ErrContentTooShort   = errors.New("submitted content is missing or too short")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrChallengeInactive = errors.New("challenge is not active")
	ErrProjectNotFound   = errors.New("project not found")
	ErrNoCandidates      = errors.New("no candidate challenges")
	ErrLanguageRequired  = errors.New("language required")
	// ErrChallengeScope 题目属于其他项目
	ErrChallengeScope = errors.New("challenge does not belong to this project")
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrAttemptNotFound  = errors.New("attempt not found")
	// ErrAttemptFinalized 尝试记录已处于终态，不可再次写入
	ErrAttemptFinalized = errors.New("attempt already finalized")
)

// IsPrecondition 判断是否为请求前置条件错误（映射为 4xx）
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrContentTooShort) ||
		errors.Is(err, ErrChallengeNotFound) ||
		errors.Is(err, ErrChallengeInactive) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrNoCandidates) ||
		errors.Is(err, ErrLanguageRequired) ||
		errors.Is(err, ErrChallengeScope)
}
