package app

import (
	"devcollab_backend/docs"
	"devcollab_backend/internal/config"
	"devcollab_backend/internal/middleware"
	"devcollab_backend/internal/model"
	"devcollab_backend/internal/util"
	"devcollab_backend/pkg/monitoring"
	"devcollab_backend/pkg/security"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// 每个用户每分钟最多提交次数
const submissionsPerMinute = 30

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerAttemptRoutes(authGroup, c)
		a.registerRatingRoutes(authGroup, c)
	}
}

func (a *App) registerAttemptRoutes(group *gin.RouterGroup, c *controllers) {
	attempts := group.Group("/attempts")
	{
		attempts.POST("", security.UserRateLimiter(submissionsPerMinute, time.Minute, util.CurrentUserID), c.attempt.Submit)
		attempts.GET("", c.attempt.List)
		attempts.GET("/:id", c.attempt.Get)
	}

	challenges := group.Group("/challenges")
	{
		challenges.GET("/next", c.challenge.Next)
		challenges.GET("/:id/rating", c.challenge.Rating)
	}

	projects := group.Group("/projects")
	{
		projects.GET("/:id/failures", c.attempt.Failures)
		// 成员列表仅对项目维护者和管理员开放
		projects.GET("/:id/members", middleware.RoleMiddleware(model.Maintainer), c.project.Members)
	}

	group.GET("/awards", c.award.List)
}

func (a *App) registerRatingRoutes(group *gin.RouterGroup, c *controllers) {
	ratings := group.Group("/ratings")
	{
		ratings.GET("/skill", c.rating.Skill)
		ratings.GET("/leaderboard", c.rating.Leaderboard)
	}
}
