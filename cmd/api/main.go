package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/snakanz/adviceApp-sub002/pkg/validator"

	"github.com/snakanz/adviceApp-sub002/internal/adapter/handler"
	"github.com/snakanz/adviceApp-sub002/internal/adapter/repository"
	"github.com/snakanz/adviceApp-sub002/internal/infrastructure/cache"
	"github.com/snakanz/adviceApp-sub002/internal/infrastructure/database"
	transcriptclient "github.com/snakanz/adviceApp-sub002/internal/infrastructure/external/transcript"
	httpmw "github.com/snakanz/adviceApp-sub002/internal/infrastructure/http/middleware"
	"github.com/snakanz/adviceApp-sub002/internal/infrastructure/messaging"
	"github.com/snakanz/adviceApp-sub002/internal/infrastructure/metrics"
	"github.com/snakanz/adviceApp-sub002/internal/infrastructure/storage"
	"github.com/snakanz/adviceApp-sub002/internal/usecase/outputs"
	"github.com/snakanz/adviceApp-sub002/internal/usecase/transcript"
	"github.com/snakanz/adviceApp-sub002/internal/usecase/webhook"
	pkgai "github.com/snakanz/adviceApp-sub002/pkg/ai"
	"github.com/snakanz/adviceApp-sub002/pkg/config"
	"github.com/snakanz/adviceApp-sub002/pkg/jobcontext"
	"github.com/snakanz/adviceApp-sub002/pkg/jwt"
)

// @title           Advice App Meeting Pipeline API
// @version         1.0
// @description     Recording provider webhooks and meeting output generation for financial advisors

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit("5M"))

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should run cmd/migrate.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or run cmd/migrate.")
		}
		log.Println("🔄 Applying sql-migrate migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run cmd/migrate in CI/CD/production")
	}

	// Seen-marker cache for webhook deduplication
	var seen webhook.SeenCache
	if cfg.RedisEnabled() {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		seen = cache.NewRedisSeenCache(redisClient, cfg.Webhook.LedgerTTL)
	} else {
		log.Println("⚠️  REDIS_HOST not set, using in-process webhook cache")
		seen = cache.NewMemorySeenCache(cfg.Webhook.LedgerTTL)
	}

	// Transcript archive
	var archiver transcript.Archiver
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		archiver = minioClient
	}

	// Outputs notifications
	var publisher outputs.Publisher
	if cfg.NATS.URL != "" {
		log.Println("📡 Connecting to NATS...")
		natsPublisher, err := messaging.NewPublisher(cfg.NATS.URL, logger)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	pendingRepo := repository.NewPendingActionItemRepository(db)
	clientRepo := repository.NewClientRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	// Initialize generation engine and outputs pipeline
	log.Println("🤖 Initializing generation engine...")
	generator := pkgai.NewGenerator(&cfg.Generator)
	if !generator.Available() {
		log.Println("⚠️  GENERATOR_API_KEY not set, outputs runs will record the engine as unavailable")
	}
	outputsService := outputs.NewService(
		meetingRepo,
		pendingRepo,
		clientRepo,
		generator,
		publisher,
		cfg.NATS.Subject,
		pipelineMetrics,
		cfg.Pipeline,
		logger,
	)

	// Initialize webhook pipeline
	log.Println("🪝 Initializing webhook pipeline...")
	fetcher := transcriptclient.NewClient(cfg.Webhook.ProviderAPIKey, cfg.Pipeline.FetchTimeout)
	acquirer := transcript.NewAcquirer(fetcher, archiver, logger)
	runner := jobcontext.NewRunner(cfg.Pipeline.JobTimeout, logger)
	webhookService := webhook.NewService(
		cfg.Webhook.Secret,
		webhook.NewLedger(webhookEventRepo, seen, logger),
		webhook.NewProcessor(meetingRepo, acquirer, outputsService, logger),
		runner,
		pipelineMetrics,
		logger,
	)
	if cfg.Webhook.Secret == "" {
		log.Println("⚠️  WEBHOOK_SECRET not set, every webhook will be rejected")
	}

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		handler.NewWebhookHandler(webhookService, cfg.Webhook.SignatureHeader, logger),
		handler.NewOutputsController(outputsService, logger),
		httpmw.EchoAuth(jwtManager),
		registry,
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("⏳ Waiting for background jobs...")
	if err := runner.Wait(ctx); err != nil {
		log.Printf("⚠️  Background jobs still running at shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
