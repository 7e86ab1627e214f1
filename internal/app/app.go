package app

import (
	"context"
	"devcollab_backend/internal/config"
	"devcollab_backend/internal/controller"
	"devcollab_backend/internal/repository"
	"devcollab_backend/internal/service"
	"devcollab_backend/pkg/database"
	"devcollab_backend/pkg/logger"
	"devcollab_backend/pkg/monitoring"
	"devcollab_backend/pkg/security"
	"devcollab_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configMu        sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	challenge *repository.ChallengeRepository
	project   *repository.ProjectRepository
	rating    *repository.RatingRepository
	attempt   *repository.AttemptRepository
	award     *repository.AwardRepository
	cache     *repository.RecommendationCache
}

type services struct {
	rating         *service.RatingService
	recommendation *service.RecommendationService
	award          *service.AwardService
	project        *service.ProjectService
	attempt        *service.AttemptService
}

type controllers struct {
	attempt   *controller.AttemptController
	challenge *controller.ChallengeController
	rating    *controller.RatingController
	award     *controller.AwardController
	project   *controller.ProjectController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configMu.Lock()
	defer a.configMu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，依次执行已注册的回调
func (a *App) ApplyConfig(cfg *config.Config) {
	a.configMu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.configMu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
	logger.Log.Info("Config reloaded", zap.Int("passThreshold", cfg.Engine.PassThreshold))
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		challenge: repository.NewChallengeRepository(db),
		project:   repository.NewProjectRepository(db),
		rating:    repository.NewRatingRepository(db),
		attempt:   repository.NewAttemptRepository(db),
		award:     repository.NewAwardRepository(db),
		cache:     repository.NewRecommendationCache(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}
	notifier := service.NewNotifier(rdb)

	s.rating = service.NewRatingService(repos.rating, repos.challenge, repos.cache)
	s.recommendation = service.NewRecommendationService(repos.challenge, repos.project, repos.rating, s.rating, repos.cache, cfg.Engine)
	s.award = service.NewAwardService(repos.award, repos.challenge, repos.attempt, notifier)
	s.project = service.NewProjectService(repos.project, notifier)

	chain := service.NewEvaluatorChain(service.NewFeatureEvaluator(), service.NewHeuristicEvaluator(), cfg.Engine.PassThreshold)

	var sandbox service.SandboxRunner
	if cfg.Sandbox.URL != "" {
		sandbox = service.NewSandboxService(cfg.Sandbox)
		logger.Log.Info("Sandbox evaluator enabled", zap.String("url", cfg.Sandbox.URL))
	}

	s.attempt = service.NewAttemptService(
		repos.attempt,
		repos.challenge,
		s.project,
		s.rating,
		s.award,
		chain,
		sandbox,
		cfg.Engine,
	)

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.attempt.UpdateEngineConfig(newCfg.Engine)
		s.recommendation.UpdateConfig(newCfg.Engine)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		attempt:   controller.NewAttemptController(s.attempt),
		challenge: controller.NewChallengeController(s.recommendation, s.rating),
		rating:    controller.NewRatingController(s.rating),
		award:     controller.NewAwardController(s.award),
		project:   controller.NewProjectController(s.project),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests, window := cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute
	if maxRequests <= 0 || window <= 0 {
		maxRequests, window = 6000, time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

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

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// release 模式下只在显式要求时迁移
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("devcollab-engine", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}

	log.Println("Server exiting")
}

