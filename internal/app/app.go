package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"horizon_backend/internal/config"
	"horizon_backend/internal/controller"
	"horizon_backend/internal/jobs"
	"horizon_backend/internal/repository"
	"horizon_backend/internal/service"
	"horizon_backend/pkg/database"
	"horizon_backend/pkg/discord"
	"horizon_backend/pkg/logger"
	"horizon_backend/pkg/monitoring"
	"horizon_backend/pkg/security"
	"horizon_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services    *services
	asynqClient *asynq.Client
	asynqServer *asynq.Server
}

type repositories struct {
	user        *repository.UserRepository
	product     *repository.ProductRepository
	quiz        *repository.QuizRepository
	submission  *repository.SubmissionRepository
	audit       *repository.AuditRepository
	translation *repository.TranslationRepository
	cart        *repository.CartRepository
}

type services struct {
	auth        *service.AuthService
	translation *service.TranslationService
	notify      *service.NotifyService
	session     *service.SessionService
	quiz        *service.QuizService
	moderation  *service.ModerationService
	store       *service.StoreService
	status      *service.StatusService
	storage     *service.StorageService
}

type controllers struct {
	auth        *controller.AuthController
	quiz        *controller.QuizController
	session     *controller.SessionController
	store       *controller.StoreController
	admin       *controller.AdminController
	translation *controller.TranslationController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		product:     repository.NewProductRepository(db),
		quiz:        repository.NewQuizRepository(db),
		submission:  repository.NewSubmissionRepository(db),
		audit:       repository.NewAuditRepository(db),
		translation: repository.NewTranslationRepository(db),
		cart:        repository.NewCartRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	discordClient := discord.NewClient(cfg.Discord)

	s.translation = service.NewTranslationService(repos.translation)
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(cfg, discordClient, repos.user)

	a.asynqClient = jobs.NewClient(&cfg.Redis)
	s.notify = service.NewNotifyService(a.asynqClient)
	a.asynqServer = jobs.StartWorker(cfg, jobs.NewNotifyHandlers(discordClient, cfg.Discord))

	s.session = service.NewSessionService(repos.quiz, repos.submission, s.notify, s.translation)
	s.quiz = service.NewQuizService(repos.quiz, repos.audit, s.translation)
	s.moderation = service.NewModerationService(repos.submission, repos.audit, s.notify)
	s.store = service.NewStoreService(repos.product, repos.cart, repos.audit)
	s.status = service.NewStatusService(cfg.GameSrv)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		quiz:        controller.NewQuizController(s.quiz, s.translation, s.moderation),
		session:     controller.NewSessionController(s.session),
		store:       controller.NewStoreController(s.store, s.translation),
		admin:       controller.NewAdminController(s.quiz, s.store, s.moderation, s.storage),
		translation: controller.NewTranslationController(s.translation),
		health:      controller.NewHealthController(db, s.status),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	s.status.StartSampler()
	s.session.StartJanitor()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("horizon-community", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
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

	if a.asynqServer != nil {
		a.asynqServer.Shutdown()
	}
	if a.asynqClient != nil {
		a.asynqClient.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
