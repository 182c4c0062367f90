package main

import (
	"fmt"
	"log"

	"github.com/qs3c/quiz_go_server/config"
	"github.com/qs3c/quiz_go_server/internal/api"
	"github.com/qs3c/quiz_go_server/internal/api/handler"
	"github.com/qs3c/quiz_go_server/internal/database"
	"github.com/qs3c/quiz_go_server/internal/pkg/gemini"
	"github.com/qs3c/quiz_go_server/internal/repository"
	"github.com/qs3c/quiz_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if len(cfg.Gemini.APIKeys) == 0 {
		log.Fatal("No Gemini API keys configured")
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 Repository
	codeRepo := repository.NewCodeRepository(db)
	configRepo := repository.NewConfigRepository(db)
	quizRepo := repository.NewQuizRepository(db)

	// 初始化 Service
	geminiClient := gemini.NewClient(&cfg.Gemini)
	activationService := service.NewActivationService(codeRepo)
	quotaService := service.NewQuotaService(codeRepo, configRepo)
	cacheService := service.NewCacheService(quizRepo, rdb)
	generationService := service.NewGenerationService(quotaService, cacheService, geminiClient)
	adminService := service.NewAdminService(codeRepo, cfg)

	// 初始化 Handler
	activationHandler := handler.NewActivationHandler(activationService, quotaService, cfg)
	generateHandler := handler.NewGenerateHandler(generationService)
	quizHandler := handler.NewQuizHandler(cacheService)
	adminHandler := handler.NewAdminHandler(adminService, quotaService, cacheService, cfg)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// 初始化 Router
	router := api.NewRouter(
		activationHandler,
		generateHandler,
		quizHandler,
		adminHandler,
		healthHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s (key pool size: %d)", addr, len(cfg.Gemini.APIKeys))
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
