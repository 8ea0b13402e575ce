package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"examen_backend/internal/config"
	"examen_backend/internal/controller"
	"examen_backend/internal/repository"
	"examen_backend/internal/service"
	"examen_backend/pkg/configwatcher"
	"examen_backend/pkg/database"
	"examen_backend/pkg/logger"
	"examen_backend/pkg/monitoring"
	"examen_backend/pkg/security"
	"examen_backend/pkg/tracing"

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
}

type repositories struct {
	user         *repository.UserRepository
	category     *repository.CategoryRepository
	exam         *repository.ExamRepository
	question     *repository.QuestionRepository
	result       *repository.ResultRepository
	certificate  *repository.CertificateRepository
	notification *repository.NotificationRepository
	dashboard    *repository.DashboardRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	category     *service.CategoryService
	exam         *service.ExamService
	question     *service.QuestionService
	attempt      *service.AttemptService
	certificate  *service.CertificateService
	notification *service.NotificationService
	dashboard    *service.DashboardService
	storage      *service.StorageService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	category     *controller.CategoryController
	exam         *controller.ExamController
	question     *controller.QuestionController
	attempt      *controller.AttemptController
	result       *controller.ResultController
	certificate  *controller.CertificateController
	notification *controller.NotificationController
	dashboard    *controller.DashboardController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		category:     repository.NewCategoryRepository(db),
		exam:         repository.NewExamRepository(db),
		question:     repository.NewQuestionRepository(db),
		result:       repository.NewResultRepository(db),
		certificate:  repository.NewCertificateRepository(db),
		notification: repository.NewNotificationRepository(db, rdb),
		dashboard:    repository.NewDashboardRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.notification = service.NewNotificationService(repos.notification)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.category = service.NewCategoryService(repos.category)
	s.exam = service.NewExamService(repos.exam, repos.question, repos.result, repos.user)
	s.question = service.NewQuestionService(repos.question, repos.exam)
	s.attempt = service.NewAttemptService(repos.exam, repos.question, repos.result, repos.user, s.notification)
	s.certificate = service.NewCertificateService(repos.certificate, repos.result, s.notification)
	s.dashboard = service.NewDashboardService(repos.exam, repos.question, repos.result, repos.user, repos.certificate, repos.dashboard)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		category:     controller.NewCategoryController(s.category),
		exam:         controller.NewExamController(s.exam),
		question:     controller.NewQuestionController(s.question, s.storage),
		attempt:      controller.NewAttemptController(s.attempt),
		result:       controller.NewResultController(s.attempt),
		certificate:  controller.NewCertificateController(s.certificate),
		notification: controller.NewNotificationController(s.notification),
		dashboard:    controller.NewDashboardController(s.dashboard),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	if cfg.RateLimit.MaxRequests > 0 {
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))
	}

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("logger initialized")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("failed to migrate database", zap.Error(err))
		}
		database.Seed(db)
		logger.Log.Info("database migration completed")
	}

	// Redis only backs the unread-notification counter cache, so a
	// missing instance degrades to counting in the database.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("redis unavailable, unread counts fall back to the database", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("exam-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig(filepath.Join("configs", "config.yaml"), app.applyConfig)

	return app
}

// applyConfig copies hot-reloadable settings onto the live config. The
// auth middleware holds the same pointer, so a rotated JWT secret takes
// effect without a restart.
func (a *App) applyConfig(cfg *config.Config) {
	a.Config.JWT = cfg.JWT
	a.Config.RateLimit = cfg.RateLimit
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
