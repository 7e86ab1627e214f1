package service

import (
	"devcollab_backend/internal/model"
	"devcollab_backend/internal/util"
)

// EffectiveRating 已有评分记录时用记录值，否则用难度档位初始值
func EffectiveRating(c *model.Challenge, ratings map[uint]int) int {
	if r, ok := ratings[c.ID]; ok {
		return r
	}
	return c.Difficulty.SeedRating()
}

// SelectChallenge 选出与用户评分差距最小的候选题目。
// 差距相同时取遍历中先出现的一个，不保证稳定顺序。
func SelectChallenge(userRating int, candidates []model.Challenge, ratings map[uint]int) (*model.Challenge, error) {
	if len(candidates) == 0 {
		return nil, util.ErrNoCandidates
	}

	best := -1
	bestDistance := 0
	for i := range candidates {
		d := absInt(EffectiveRating(&candidates[i], ratings) - userRating)
		if best < 0 || d < bestDistance {
			best = i
			bestDistance = d
		}
	}

	picked := candidates[best]
	return &picked, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
