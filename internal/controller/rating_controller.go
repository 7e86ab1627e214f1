package controller

import (
	"devcollab_backend/internal/service"
	"devcollab_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RatingController struct {
	RatingService *service.RatingService
}

func NewRatingController(ratingService *service.RatingService) *RatingController {
	return &RatingController{RatingService: ratingService}
}

// @Summary 我的技能评分
// @Description 未有记录时返回默认评分 1200
// @Tags 评分
// @Produce json
// @Security BearerAuth
// @Param language query string true "编程语言"
// @Param userId query int false "用户ID，默认当前用户"
// @Success 200 {object} util.Response{data=service.SkillRatingView}
// @Router /ratings/skill [get]
func (c *RatingController) Skill(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	userID := user.UserID
	if id := util.OptionalUint(ctx.Query("userId")); id != nil {
		userID = *id
	}

	rating, err := c.RatingService.GetSkillRating(ctx.Request.Context(), userID, ctx.Query("language"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, rating)
}

// @Summary 语言排行榜
// @Tags 评分
// @Produce json
// @Security BearerAuth
// @Param language query string true "编程语言"
// @Param limit query int false "返回数量" default(10)
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /ratings/leaderboard [get]
func (c *RatingController) Leaderboard(ctx *gin.Context) {
	limit := 10
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	board, err := c.RatingService.Leaderboard(ctx.Request.Context(), ctx.Query("language"), limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, board)
}
