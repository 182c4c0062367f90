package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/quiz_go_server/config"
	"github.com/qs3c/quiz_go_server/internal/api/handler"
	"github.com/qs3c/quiz_go_server/internal/api/middleware"
)

type Router struct {
	activationHandler *handler.ActivationHandler
	generateHandler   *handler.GenerateHandler
	quizHandler       *handler.QuizHandler
	adminHandler      *handler.AdminHandler
	healthHandler     *handler.HealthHandler
	cfg               *config.Config
}

func NewRouter(
	activationHandler *handler.ActivationHandler,
	generateHandler *handler.GenerateHandler,
	quizHandler *handler.QuizHandler,
	adminHandler *handler.AdminHandler,
	healthHandler *handler.HealthHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		activationHandler: activationHandler,
		generateHandler:   generateHandler,
		quizHandler:       quizHandler,
		adminHandler:      adminHandler,
		healthHandler:     healthHandler,
		cfg:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api")
	{
		api.GET("/health", r.healthHandler.Check)

		// 公开接口 - 激活与缓存
		api.POST("/activate", r.activationHandler.Activate)
		api.POST("/logout", r.activationHandler.Logout)
		api.POST("/quiz/check", r.quizHandler.Check)
		api.POST("/quiz/save", r.quizHandler.Save)

		// 会话接口 - cookie 优先，请求体激活码回退
		sessioned := api.Group("")
		sessioned.Use(middleware.SessionAuth(r.cfg.Session.Secret))
		{
			sessioned.POST("/generate", r.generateHandler.Generate)
			sessioned.GET("/quota", r.activationHandler.GetQuota)
		}

		// 管理接口
		api.POST("/admin/login", r.adminHandler.Login)

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(r.cfg.Session.Secret))
		{
			admin.GET("/quizzes", r.adminHandler.ListQuizzes)
			admin.DELETE("/quiz/:id", r.adminHandler.DeleteQuiz)
			admin.GET("/codes", r.adminHandler.ListCodes)
			admin.POST("/codes/generate", r.adminHandler.GenerateCodes)
			admin.DELETE("/code/:id", r.adminHandler.DeleteCode)
			admin.GET("/config", r.adminHandler.GetConfig)
			admin.POST("/config", r.adminHandler.UpdateConfig)
		}
	}

	return engine
}
