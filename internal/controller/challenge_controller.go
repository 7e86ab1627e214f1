package controller

import (
	"devcollab_backend/internal/service"
	"devcollab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	RecommendationService *service.RecommendationService
	RatingService         *service.RatingService
}

func NewChallengeController(recommendationService *service.RecommendationService, ratingService *service.RatingService) *ChallengeController {
	return &ChallengeController{
		RecommendationService: recommendationService,
		RatingService:         ratingService,
	}
}

// @Summary 推荐下一道题目
// @Description 选出难度评分与用户当前技能评分最接近的启用题目
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Param language query string true "编程语言"
// @Param projectId query int false "项目ID，仅在通用题目和该项目题目中选择"
// @Success 200 {object} util.Response{data=service.Recommendation}
// @Failure 404 {object} util.Response
// @Router /challenges/next [get]
func (c *ChallengeController) Next(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	rec, err := c.RecommendationService.NextChallenge(ctx.Request.Context(), user.UserID, ctx.Query("language"), util.OptionalUint(ctx.Query("projectId")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, rec)
}

// @Summary 题目难度评分
// @Tags 评分
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response{data=service.ChallengeRatingView}
// @Failure 404 {object} util.Response
// @Router /challenges/{id}/rating [get]
func (c *ChallengeController) Rating(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "无效的题目ID")
		return
	}

	rating, err := c.RatingService.GetChallengeRatingByID(ctx.Request.Context(), id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, rating)
}
