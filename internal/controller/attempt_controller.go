package controller

import (
	"devcollab_backend/internal/service"
	"devcollab_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// @Summary 提交挑战代码
// @Description 评测提交的代码，更新技能评分；通过招募项目题目时自动加入项目并检查成就
// @Tags 挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt body service.SubmitAttemptRequest true "提交内容"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /attempts [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AttemptService.SubmitAttempt(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 获取提交详情
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Param id path string true "提交ID"
// @Success 200 {object} util.Response{data=model.Attempt}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /attempts/{id} [get]
func (c *AttemptController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.AttemptService.GetAttempt(ctx.Request.Context(), user.UserID, user.Role, ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, attempt)
}

// @Summary 我的提交记录
// @Description 按提交时间倒序，可按项目过滤
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Param projectId query int false "项目ID"
// @Param limit query int false "返回数量" default(20)
// @Success 200 {object} util.Response{data=[]model.Attempt}
// @Router /attempts [get]
func (c *AttemptController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	attempts, err := c.AttemptService.ListAttempts(ctx.Request.Context(), user.UserID, util.OptionalUint(ctx.Query("projectId")), limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// @Summary 项目失败次数
// @Description 返回用户在项目下的失败次数，达到阈值时附带鼓励文案
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} util.Response{data=service.FailureSummary}
// @Failure 404 {object} util.Response
// @Router /projects/{id}/failures [get]
func (c *AttemptController) Failures(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	projectID := util.MustParseUint(ctx.Param("id"))
	if projectID == 0 {
		util.BadRequest(ctx, "无效的项目ID")
		return
	}

	summary, err := c.AttemptService.GetFailureSummary(ctx.Request.Context(), user.UserID, projectID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
