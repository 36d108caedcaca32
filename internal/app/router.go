package app

import (
	"studypal_backend/docs"
	"studypal_backend/internal/config"
	"studypal_backend/internal/middleware"
	"studypal_backend/internal/model"

	"studypal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/users", c.user.GetUsers)
		admin.POST("/users/:id/disable", c.user.DisableUser)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	// 账户
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.POST("/onboarding", c.user.CompleteOnboarding)

	// 订阅与额度
	rg.GET("/subscription", c.subscription.GetSubscription)
	rg.PUT("/subscription", c.subscription.UpdateSubscription)

	// 学习主题
	rg.POST("/topics", c.topic.CreateTopic)
	rg.GET("/topics", c.topic.GetTopics)
	rg.GET("/topics/:id", c.topic.GetTopic)
	rg.PUT("/topics/:id", c.topic.UpdateTopic)
	rg.DELETE("/topics/:id", c.topic.DeleteTopic)
	rg.GET("/leaderboard", c.topic.GetLeaderboard)

	// 资料上传与生成
	rg.POST("/content/upload", c.content.UploadContent)
	rg.POST("/content/upload/file", c.content.UploadFile)
	rg.GET("/content/uploads", c.content.GetUploads)
	rg.POST("/topics/:id/regenerate", c.content.Regenerate)

	// 学习材料
	rg.GET("/topics/:id/flashcards", c.flashcard.GetByTopic)
	rg.POST("/flashcards/:id/review", c.flashcard.Review)
	rg.GET("/topics/:id/questions", c.question.GetByTopic)
	rg.POST("/questions/:id/answer", c.question.Answer)

	// 模拟测试
	rg.POST("/mock-tests", c.mockTest.StartTest)
	rg.GET("/mock-tests", c.mockTest.GetTests)
	rg.GET("/mock-tests/:id", c.mockTest.GetTest)
	rg.POST("/mock-tests/:id/submit", c.mockTest.SubmitTest)

	// 学习计划
	rg.POST("/study-plan/generate", c.studyPlan.GeneratePlan)
	rg.GET("/study-plan", c.studyPlan.GetPlan)
	rg.GET("/study-plan/tasks", c.studyPlan.GetTodayTasks)
	rg.POST("/study-plan/tasks/:id/complete", c.studyPlan.CompleteTask)

	// 游戏化
	rg.GET("/gamification/progress", c.gamification.GetProgress)
	rg.POST("/gamification/xp", c.gamification.AwardXP)
	rg.POST("/gamification/activity", c.gamification.RecordActivity)
	rg.GET("/gamification/events", c.gamification.GetXPEvents)

	// 徽章与奖励
	rg.GET("/badges", c.badge.GetBadges)
	rg.POST("/badges/check", c.badge.CheckBadges)
	rg.GET("/rewards", c.reward.GetRewards)
	rg.POST("/rewards/:id/claim", c.reward.ClaimReward)
}
