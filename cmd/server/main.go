package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	athleticapp "github.com/lifecurriculum/backend/internal/application/athletic"
	chatapp "github.com/lifecurriculum/backend/internal/application/chat"
	childapp "github.com/lifecurriculum/backend/internal/application/child"
	curriculumapp "github.com/lifecurriculum/backend/internal/application/curriculum"
	familyapp "github.com/lifecurriculum/backend/internal/application/family"
	identityapp "github.com/lifecurriculum/backend/internal/application/identity"
	insightapp "github.com/lifecurriculum/backend/internal/application/insight"
	progressapp "github.com/lifecurriculum/backend/internal/application/progress"
	resourceapp "github.com/lifecurriculum/backend/internal/application/resource"
	"github.com/lifecurriculum/backend/internal/infrastructure/ai"
	"github.com/lifecurriculum/backend/internal/infrastructure/auth"
	"github.com/lifecurriculum/backend/internal/infrastructure/cache"
	"github.com/lifecurriculum/backend/internal/infrastructure/config"
	"github.com/lifecurriculum/backend/internal/infrastructure/email"
	"github.com/lifecurriculum/backend/internal/infrastructure/logger"
	"github.com/lifecurriculum/backend/internal/infrastructure/migration"
	"github.com/lifecurriculum/backend/internal/infrastructure/persistence"
	"github.com/lifecurriculum/backend/internal/infrastructure/seed"
	"github.com/lifecurriculum/backend/internal/infrastructure/storage"
	"github.com/lifecurriculum/backend/internal/interfaces/http/handler"
	"github.com/lifecurriculum/backend/internal/interfaces/http/middleware"
	"github.com/lifecurriculum/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags
var version = "dev"

const migrationRetryPause = 3 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Life Curriculum Assistant",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to open database connection", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	// The database container may still be starting. Poll before touching it.
	readyCtx, cancelReady := context.WithTimeout(context.Background(), cfg.Database.ReadyTimeout)
	if err := db.WaitUntilReady(readyCtx, cfg.Database.ReadyInterval, cfg.Database.ReadyTimeout); err != nil {
		cancelReady()
		log.Fatal("Database never became ready", zap.Error(err))
	}
	cancelReady()
	log.Info("Database connected")

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB handle", zap.Error(err))
	}
	migrator, err := migration.NewEmbedded(sqlDB, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	if err := migrator.UpWithRetry(migrationRetryPause); err != nil {
		log.Fatal("Migrations failed", zap.Error(err))
	}
	log.Info("Migrations applied")

	// Reference data seeding is best effort: a failure is logged but the
	// server still starts.
	if cfg.Seed.Enabled {
		seedCtx, cancelSeed := context.WithTimeout(context.Background(), time.Minute)
		if err := seed.New(db.DB, log).Seed(seedCtx); err != nil {
			log.Warn("Seeding failed, continuing without it", zap.Error(err))
		}
		cancelSeed()
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	aiClient, err := ai.NewClient(cfg.AI, log)
	if err != nil {
		log.Fatal("Failed to initialize AI client", zap.Error(err))
	}

	var quotaStore cache.QuotaStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisQuotaStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisStore.Close()
		}()
		quotaStore = redisStore
	} else {
		log.Warn("Redis disabled, chat quotas are tracked in memory")
		quotaStore = cache.NewInMemoryQuotaStore()
	}

	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	bucketCtx, cancelBucket := context.WithTimeout(context.Background(), 30*time.Second)
	if err := objectStorage.EnsureBucket(bucketCtx); err != nil {
		log.Warn("Could not ensure storage bucket, uploads may fail", zap.Error(err))
	}
	cancelBucket()

	sender := email.NewSender(cfg.Email, log)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	refreshTokenRepo := persistence.NewGormRefreshTokenRepository(db.DB)
	oneTimeTokenRepo := persistence.NewGormOneTimeTokenRepository(db.DB)
	familyRepo := persistence.NewGormFamilyRepository(db.DB)
	childRepo := persistence.NewGormChildRepository(db.DB)
	curriculumRepo := persistence.NewGormCurriculumRepository(db.DB)
	progressRepo := persistence.NewGormProgressRepository(db.DB)
	sessionRepo := persistence.NewGormChatSessionRepository(db.DB)
	messageRepo := persistence.NewGormChatMessageRepository(db.DB)
	resourceRepo := persistence.NewGormResourceRepository(db.DB)
	bookmarkRepo := persistence.NewGormBookmarkRepository(db.DB)
	sportRepo := persistence.NewGormSportRepository(db.DB)
	athleteRepo := persistence.NewGormAthleteRepository(db.DB)
	activityLogRepo := persistence.NewGormActivityLogRepository(db.DB)
	checkInRepo := persistence.NewGormCheckInRepository(db.DB)
	interestRepo := persistence.NewGormInterestRepository(db.DB)
	roadmapRepo := persistence.NewGormRoadmapRepository(db.DB)

	// Application services
	authConfig := identityapp.DefaultAuthServiceConfig()
	if cfg.JWT.RefreshTokenExpiration > 0 {
		authConfig.RefreshTokenTTL = cfg.JWT.RefreshTokenExpiration
	}
	authService := identityapp.NewAuthService(
		userRepo, refreshTokenRepo, oneTimeTokenRepo, familyRepo,
		jwtService, sender, authConfig, log)
	familyService := familyapp.NewFamilyService(familyRepo, userRepo, log)
	childService := childapp.NewChildService(childRepo, objectStorage, log)
	curriculumService := curriculumapp.NewCurriculumService(curriculumRepo, childRepo, log)
	progressService := progressapp.NewProgressService(
		progressRepo, childRepo, curriculumRepo, objectStorage, log)
	chatService := chatapp.NewChatService(
		sessionRepo, messageRepo, childRepo, familyRepo, aiClient, quotaStore,
		chatapp.Limits{
			FreeDailyQuota:    cfg.Chat.FreeDailyLimit,
			PremiumDailyQuota: cfg.Chat.PremiumDailyLimit,
			HistoryLimit:      cfg.Chat.HistoryLimit,
		}, log)
	resourceService := resourceapp.NewResourceService(
		resourceRepo, bookmarkRepo, objectStorage, log)
	athleticService := athleticapp.NewAthleticService(
		sportRepo, athleteRepo, activityLogRepo, checkInRepo, childRepo, log)
	insightService := insightapp.NewInsightService(
		interestRepo, roadmapRepo, childRepo, progressRepo, curriculumRepo,
		athleteRepo, checkInRepo, aiClient, log)

	// HTTP layer
	middleware.SetupValidator()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
		}
	}

	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(db, version),
		Auth:       handler.NewAuthHandler(authService, cfg.Cookie),
		Family:     handler.NewFamilyHandler(familyService),
		Child:      handler.NewChildHandler(childService),
		Curriculum: handler.NewCurriculumHandler(curriculumService),
		Progress:   handler.NewProgressHandler(progressService),
		Chat:       handler.NewChatHandler(chatService),
		Resource:   handler.NewResourceHandler(resourceService),
		Athletic:   handler.NewAthleticHandler(athleticService),
		Insight:    handler.NewInsightHandler(insightService),
	}

	routerCfg := router.Config{
		JWTService: jwtService,
		Logger:     log,
	}
	if cfg.HTTP.RateLimitEnabled {
		routerCfg.RateLimit = cfg.HTTP.RateLimitRequests
		routerCfg.RateWindow = cfg.HTTP.RateLimitWindow
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		routerCfg.AuthRateLimit = cfg.HTTP.AuthRateLimitRequests
		routerCfg.AuthRateWindow = cfg.HTTP.AuthRateLimitWindow
	}
	router.Setup(engine, handlers, routerCfg)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
