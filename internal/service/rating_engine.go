package service

import "math"

// 评分可表示范围，落库列在各数据库上均可容纳
const (
	MinRating = math.MinInt32
	MaxRating = math.MaxInt32
)

// RatingInput 一次尝试结果对应的双方当前状态
type RatingInput struct {
	UserRating         int
	UserAttempts       int
	ChallengeRating    int
	ChallengeAttempts  int
	ChallengePassCount int
	Passed             bool
}

// RatingUpdate 更新后的双方状态
type RatingUpdate struct {
	UserRating         int     `json:"userRating"`
	UserAttempts       int     `json:"userAttempts"`
	ChallengeRating    int     `json:"challengeRating"`
	ChallengeAttempts  int     `json:"challengeAttempts"`
	ChallengePassCount int     `json:"challengePassCount"`
	Expected           float64 `json:"expected"`
	UserDelta          int     `json:"userDelta"`
	ChallengeDelta     int     `json:"challengeDelta"`
}

// ExpectedScore 用户战胜题目的期望概率
func ExpectedScore(userRating, challengeRating int) float64 {
	return 1 / (1 + math.Pow(10, float64(challengeRating-userRating)/400))
}

// UserKFactor 用户侧 K 值随尝试次数递减，下限 16
func UserKFactor(attempts int) int {
	if attempts < 0 {
		attempts = 0
	}
	k := 32 - attempts/5
	if k < 16 {
		return 16
	}
	return k
}

// ChallengeKFactor 题目侧 K 值下降更慢，下限 12
func ChallengeKFactor(attempts int) int {
	if attempts < 0 {
		attempts = 0
	}
	k := 32 - attempts/10
	if k < 12 {
		return 12
	}
	return k
}

// ComputeRatingUpdate 纯计算，无 I/O。
// 双方 K 值不同，因此不是零和交换。
func ComputeRatingUpdate(in RatingInput) RatingUpdate {
	s := 0.0
	if in.Passed {
		s = 1.0
	}
	e := ExpectedScore(in.UserRating, in.ChallengeRating)

	ku := float64(UserKFactor(in.UserAttempts))
	kc := float64(ChallengeKFactor(in.ChallengeAttempts))

	userNext := clampRating(float64(in.UserRating)+ku*(s-e), in.UserRating)
	challengeNext := clampRating(float64(in.ChallengeRating)+kc*((1-s)-(1-e)), in.ChallengeRating)

	passCount := in.ChallengePassCount
	if in.Passed {
		passCount++
	}

	return RatingUpdate{
		UserRating:         userNext,
		UserAttempts:       in.UserAttempts + 1,
		ChallengeRating:    challengeNext,
		ChallengeAttempts:  in.ChallengeAttempts + 1,
		ChallengePassCount: passCount,
		Expected:           e,
		UserDelta:          userNext - in.UserRating,
		ChallengeDelta:     challengeNext - in.ChallengeRating,
	}
}

func clampRating(v float64, fallback int) int {
	if math.IsNaN(v) {
		return fallback
	}
	v = math.Round(v)
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return int(v)
}
