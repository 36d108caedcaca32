package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"studypal_backend/internal/config"
	"studypal_backend/internal/controller"
	"studypal_backend/internal/repository"
	"studypal_backend/internal/service"
	"studypal_backend/pkg/database"
	"studypal_backend/pkg/logger"
	"studypal_backend/pkg/monitoring"
	"studypal_backend/pkg/security"
	"studypal_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	subscription *repository.SubscriptionRepository
	topic        *repository.TopicRepository
	content      *repository.ContentRepository
	flashcard    *repository.FlashcardRepository
	question     *repository.QuestionRepository
	mockTest     *repository.MockTestRepository
	studyTask    *repository.StudyTaskRepository
	gamification *repository.GamificationRepository
	mastery      *repository.MasteryRepository
	badge        *repository.BadgeRepository
	reward       *repository.RewardRepository
}

type services struct {
	storage      *service.StorageService
	ai           *service.AIService
	subscription *service.SubscriptionService
	gamification *service.GamificationService
	badge        *service.BadgeService
	auth         *service.AuthService
	user         *service.UserService
	topic        *service.TopicService
	content      *service.ContentService
	flashcard    *service.FlashcardService
	question     *service.QuestionService
	mockTest     *service.MockTestService
	studyPlan    *service.StudyPlanService
	reward       *service.RewardService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	topic        *controller.TopicController
	content      *controller.ContentController
	flashcard    *controller.FlashcardController
	question     *controller.QuestionController
	mockTest     *controller.MockTestController
	studyPlan    *controller.StudyPlanController
	gamification *controller.GamificationController
	badge        *controller.BadgeController
	reward       *controller.RewardController
	subscription *controller.SubscriptionController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 热更新配置并通知各订阅方
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		subscription: repository.NewSubscriptionRepository(db),
		topic:        repository.NewTopicRepository(db),
		content:      repository.NewContentRepository(db),
		flashcard:    repository.NewFlashcardRepository(db),
		question:     repository.NewQuestionRepository(db),
		mockTest:     repository.NewMockTestRepository(db),
		studyTask:    repository.NewStudyTaskRepository(db),
		gamification: repository.NewGamificationRepository(db),
		mastery:      repository.NewMasteryRepository(db),
		badge:        repository.NewBadgeRepository(db),
		reward:       repository.NewRewardRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.ai = service.NewAIService(cfg.AI)
	s.subscription = service.NewSubscriptionService(repos.subscription)
	s.gamification = service.NewGamificationService(
		repos.gamification,
		repos.mastery,
		repos.flashcard,
		repos.question,
		repos.mockTest,
		s.subscription,
	)
	s.badge = service.NewBadgeService(
		repos.badge,
		repos.gamification,
		repos.mastery,
		repos.flashcard,
		repos.question,
		repos.mockTest,
		s.gamification,
		s.subscription,
	)
	s.auth = service.NewAuthService(repos.user, s.gamification, cfg)
	s.user = service.NewUserService(repos.user)
	s.topic = service.NewTopicService(repos.topic, repos.gamification, repos.user, s.subscription, rdb)
	s.content = service.NewContentService(
		repos.content,
		repos.topic,
		repos.flashcard,
		repos.question,
		repos.user,
		s.ai,
		s.storage,
		s.subscription,
		s.gamification,
	)
	s.flashcard = service.NewFlashcardService(repos.flashcard, repos.topic, repos.user, s.gamification, s.badge)
	s.question = service.NewQuestionService(repos.question, repos.topic, s.gamification, s.badge)
	s.mockTest = service.NewMockTestService(
		repos.mockTest,
		repos.question,
		repos.topic,
		repos.user,
		s.gamification,
		s.badge,
		s.subscription,
	)
	s.studyPlan = service.NewStudyPlanService(repos.studyTask, repos.topic, repos.user)
	s.reward = service.NewRewardService(repos.reward, repos.gamification, s.gamification, s.subscription)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth, s.user),
		user:         controller.NewUserController(s.user),
		topic:        controller.NewTopicController(s.topic),
		content:      controller.NewContentController(s.content),
		flashcard:    controller.NewFlashcardController(s.flashcard),
		question:     controller.NewQuestionController(s.question),
		mockTest:     controller.NewMockTestController(s.mockTest),
		studyPlan:    controller.NewStudyPlanController(s.studyPlan),
		gamification: controller.NewGamificationController(s.gamification),
		badge:        controller.NewBadgeController(s.badge),
		reward:       controller.NewRewardController(s.reward),
		subscription: controller.NewSubscriptionController(s.subscription),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("studypal-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 关闭服务
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
