package app

import (
	"context"
	"escolavision_backend/internal/config"
	"escolavision_backend/internal/controller"
	"escolavision_backend/internal/repository"
	"escolavision_backend/internal/service"
	"escolavision_backend/internal/util"
	"escolavision_backend/pkg/database"
	"escolavision_backend/pkg/logger"
	"escolavision_backend/pkg/monitoring"
	"escolavision_backend/pkg/security"
	"escolavision_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services        *services
	maxImageChars   atomic.Int64
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
	shutdownTracer  func(context.Context) error
}

type services struct {
	tables    *service.TableService
	auth      *service.AuthService
	score     *service.ScoreService
	dashboard *service.DashboardService
	geo       *service.GeoService
	storage   *service.StorageService
	imports   *service.CentroImportService
}

type controllers struct {
	crud      *controller.CRUDController
	auth      *controller.AuthController
	score     *controller.ScoreController
	dashboard *controller.DashboardController
	geo       *controller.GeoController
	imports   *controller.CentroImportController
	health    *controller.HealthController
}

// RegisterConfigCallback 配置文件热更新后依次调用
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 交给 configwatcher 使用
func (a *App) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()
	for _, cb := range callbacks {
		cb(cfg)
	}
}

// NewRepositories 基于 MySQL 的仓库
func NewRepositories(db *gorm.DB) service.Repositories {
	return service.Repositories{
		Usuarios:  repository.NewUsuarioRepository(db),
		Centros:   repository.NewCentroRepository(db),
		Tests:     repository.NewTestRepository(db),
		Preguntas: repository.NewPreguntaRepository(db),
		Areas:     repository.NewAreaRepository(db),
		PxA:       repository.NewPxARepository(db),
		Intentos:  repository.NewIntentoRepository(db),
	}
}

func (a *App) initServices(repos service.Repositories, cfg *config.Config) *services {
	s := &services{}

	a.maxImageChars.Store(int64(cfg.Upload.MaxImageChars))
	s.tables = service.NewTableService(repos, func() int { return int(a.maxImageChars.Load()) })
	s.auth = service.NewAuthService(repos.Usuarios, cfg)
	s.score = service.NewScoreService(repos)
	s.dashboard = service.NewDashboardService(repos)

	var cache service.GeoCache
	if a.Redis != nil {
		cache = &service.RedisGeoCache{Client: a.Redis}
	}
	s.geo = service.NewGeoService(cfg.GeoAPI, cache)

	s.storage = service.NewStorageService(cfg)
	s.imports = service.NewCentroImportService(repos.Centros, s.storage, cfg.Import.BatchSize)

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.geo.UpdateConfig(newCfg.GeoAPI)
		a.maxImageChars.Store(int64(newCfg.Upload.MaxImageChars))
	})

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		crud:      controller.NewCRUDController(s.tables),
		auth:      controller.NewAuthController(s.auth),
		score:     controller.NewScoreController(s.score),
		dashboard: controller.NewDashboardController(s.dashboard),
		geo:       controller.NewGeoController(s.geo),
		imports:   controller.NewCentroImportController(s.imports),
		health:    controller.NewHealthController(a.DB, a.Redis),
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

// setup 组装服务、控制器与路由；测试中可以传入内存仓库
func (a *App) setup(repos service.Repositories) {
	a.services = a.initServices(repos, a.Config)
	controllers := a.initControllers(a.services)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	a.Router = router

	a.setupMiddlewares(router, a.Config)
	a.registerRoutes(router, controllers, a.Config)

	if a.Config.Storage.Type == util.StorageLocal {
		router.Static("/uploads", a.Config.Storage.LocalPath)
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// debug 模式或显式指定时执行迁移
	if cfg.Server.Mode == gin.DebugMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migrated")
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	// Redis 只用于地理数据缓存，不可用时降级为直连
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, geo cache disabled", zap.Error(err))
	} else {
		app.Redis = rdb
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.CollectorEndpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.shutdownTracer = shutdown
	}

	app.setup(NewRepositories(db))
	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
}

// Close 释放数据库、Redis 与追踪资源
func (a *App) Close(ctx context.Context) {
	if a.shutdownTracer != nil {
		if err := a.shutdownTracer(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
