package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"smartclinic-backend/internal/bot"
	"smartclinic-backend/internal/common/cache"
	"smartclinic-backend/internal/common/config"
	"smartclinic-backend/internal/common/logger"
	"smartclinic-backend/internal/common/middleware"
	billingHTTP "smartclinic-backend/internal/features/billing/delivery/http"
	billingRepo "smartclinic-backend/internal/features/billing/repository/postgres"
	billingService "smartclinic-backend/internal/features/billing/service"
	contentHTTP "smartclinic-backend/internal/features/content/delivery/http"
	contentRepo "smartclinic-backend/internal/features/content/repository/postgres"
	contentService "smartclinic-backend/internal/features/content/service"
	engagementHTTP "smartclinic-backend/internal/features/engagement/delivery/http"
	engagementRepo "smartclinic-backend/internal/features/engagement/repository/postgres"
	engagementService "smartclinic-backend/internal/features/engagement/service"
	"smartclinic-backend/internal/features/onboarding"
	supportHTTP "smartclinic-backend/internal/features/support/delivery/http"
	supportRepo "smartclinic-backend/internal/features/support/repository/postgres"
	supportService "smartclinic-backend/internal/features/support/service"
	userRepo "smartclinic-backend/internal/features/user/repository/postgres"
	userService "smartclinic-backend/internal/features/user/service"
	"smartclinic-backend/internal/platform/db"
	"smartclinic-backend/internal/platform/redis"
	"smartclinic-backend/internal/platform/telegram"
	"smartclinic-backend/internal/workers"
)

// @title           Smart Clinic API
// @version         1.0
// @description     Backend for the Smart Clinic education bot and mini web app. Catalog, favorites, progress and promo endpoints require init_data authentication.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey TelegramInitData
// @in header
// @name init_data
// @description Telegram Mini App init_data string for authentication

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("smartclinic-backend", cfg.Debug)
	logger.Info().Bool("debug", cfg.Debug).Msg("Starting Smart Clinic backend")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	database, err := db.Open(ctx, cfg.Database.URL)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()
	logger.Info().Msg("Database connection established")

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := db.Migrate(ctx, database)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
		logger.Info().Msg("Migrations applied")
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	redisClient, err := redis.Open(ctx, fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port), cfg.Redis.Password, cfg.Redis.DB)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("Redis connection established")

	cacheService := cache.NewService(redisClient)

	userRepository := userRepo.NewPostgresRepository(database)
	contentRepository := contentRepo.NewPostgresRepository(database)
	engagementRepository := engagementRepo.NewPostgresRepository(database)
	billingRepository := billingRepo.NewPostgresRepository(database)
	supportRepository := supportRepo.NewPostgresRepository(database)

	userSvc := userService.NewUserService(userRepository)
	contentSvc := contentService.NewContentService(contentRepository, cacheService, time.Duration(cfg.Cache.CatalogTTLSec)*time.Second)
	engagementSvc := engagementService.NewEngagementService(engagementRepository)
	billingSvc := billingService.NewBillingService(billingRepository, userSvc)
	supportSvc := supportService.NewSupportService(supportRepository)
	logger.Info().Msg("Services initialized")

	sessionStore := onboarding.NewRedisStore(redisClient, time.Duration(cfg.Sessions.TTLHours)*time.Hour)

	tgClient := telegram.NewClient(cfg.Telegram.BotToken)
	dispatcher := bot.NewDispatcher(tgClient, userSvc, billingSvc, contentSvc, supportSvc, sessionStore, cfg.WebApp.BaseURL)
	poller := bot.NewPoller(tgClient, dispatcher, cfg.Telegram.PollTimeoutSec)
	poller.Start()
	defer poller.Stop()

	sweeper := userService.NewSweeper(
		userRepository,
		time.Duration(cfg.Workers.SweepIntervalHours)*time.Hour,
		time.Duration(cfg.Workers.InactiveAfterDays)*24*time.Hour,
	)
	sweeper.Start()
	defer sweeper.Stop()

	notifier := workers.NewPublisher(redisClient)
	notificationWorker := workers.NewNotificationWorker(redisClient, tgClient)
	notificationWorker.Start()
	defer notificationWorker.Stop()

	router := setupRouter(cfg, database, redisClient, contentSvc, engagementSvc, billingSvc, supportSvc, notifier)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func setupRouter(
	cfg *config.Config,
	database *sql.DB,
	redisClient *redis.Client,
	contentSvc contentService.ContentService,
	engagementSvc engagementService.EngagementService,
	billingSvc billingService.BillingService,
	supportSvc supportService.SupportService,
	notifier *workers.Publisher,
) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "init_data"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.TelegramInitData(cfg.Telegram.BotToken, 24*time.Hour))
	{
		contentHTTP.NewContentHandler(contentSvc).RegisterRoutes(v1)
		engagementHTTP.NewEngagementHandler(engagementSvc).RegisterRoutes(v1)
		billingHTTP.NewBillingHandler(billingSvc).RegisterRoutes(v1)

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminOnly(cfg.Telegram.AdminIDs))
		supportHTTP.NewSupportHandler(supportSvc, notifier.Publish).RegisterRoutes(admin)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "smartclinic-backend",
		})
	})
	router.GET("/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "dependency": "postgres"})
			return
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "dependency": "redis"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
