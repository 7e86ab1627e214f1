package controller

import (
	"devcollab_backend/internal/service"
	"devcollab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	ProjectService *service.ProjectService
}

func NewProjectController(projectService *service.ProjectService) *ProjectController {
	return &ProjectController{ProjectService: projectService}
}

// @Summary 项目成员
// @Description 通过招募题目准入的成员列表
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} util.Response{data=[]model.ProjectMember}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /projects/{id}/members [get]
func (c *ProjectController) Members(ctx *gin.Context) {
	projectID := util.MustParseUint(ctx.Param("id"))
	if projectID == 0 {
		util.BadRequest(ctx, "无效的项目ID")
		return
	}

	members, err := c.ProjectService.ListMembers(ctx.Request.Context(), projectID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, members)
}
