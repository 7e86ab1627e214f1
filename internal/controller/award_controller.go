package controller

import (
	"devcollab_backend/internal/service"
	"devcollab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AwardController struct {
	AwardService *service.AwardService
}

func NewAwardController(awardService *service.AwardService) *AwardController {
	return &AwardController{AwardService: awardService}
}

// @Summary 我的成就
// @Tags 成就系统
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Award}
// @Router /awards [get]
func (c *AwardController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	awards, err := c.AwardService.ListUserAwards(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, awards)
}
