package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "fleethvac/docs"
	"fleethvac/internal/caching"
	"fleethvac/internal/common"
	"fleethvac/internal/config"
	"fleethvac/internal/database"
	"fleethvac/internal/handlers"
	"fleethvac/internal/ingest"
	"fleethvac/internal/jobs"
	"fleethvac/internal/jobs/background"
	"fleethvac/internal/logger"
	"fleethvac/internal/middleware"
	"fleethvac/internal/repositories"
	"fleethvac/internal/services"
	pgdatabase "fleethvac/pkg/database"
)

//	@title			Fleet HVAC API
//	@version		1.0
//	@description	Multi-tenant train fleet and HVAC aggregate management.

//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token issued by the identity provider. Format: "Bearer {token}"

func main() {
	migrate := pflag.Bool("migrate", false, "apply database migrations before serving")
	migrateOnly := pflag.Bool("migrate-only", false, "apply database migrations and exit")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	log.Info("Starting fleet HVAC API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version))

	if *migrate || *migrateOnly {
		if err := database.Migrate(cfg.Database.DSN(), log); err != nil {
			log.Fatal("Database migration failed", zap.Error(err))
		}
		if *migrateOnly {
			return
		}
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("Server terminated", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgdatabase.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	gateway := repositories.NewGateway(pool)
	trainRepo := repositories.NewTrainRepo(pool)
	wagonRepo := repositories.NewWagonRepo(pool)
	aggregateRepo := repositories.NewAggregateRepo(pool)
	historyRepo := repositories.NewAggregateHistoryRepo(pool)
	readingRepo := repositories.NewSensorReadingRepo(pool)
	tenantRepo := repositories.NewTenantRepo(pool)
	auditLogRepo := repositories.NewAuditLogsRepo(pool)

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
	defer func() { _ = cacheSvc.Close() }()

	var storage services.MinioService
	if minioSvc, err := services.NewMinioService(cfg.MinIO); err != nil {
		log.Warn("Object storage disabled", zap.Error(err))
	} else {
		if err := minioSvc.EnsureBucketExists(ctx); err != nil {
			log.Warn("Failed to ensure branding bucket", zap.String("bucket", cfg.MinIO.Bucket), zap.Error(err))
		}
		storage = minioSvc
	}

	mappings, err := config.ParseTenantMappings(cfg.Tenancy.MappingsJSON)
	if err != nil {
		return err
	}
	resolver := services.NewTenantResolver(cfg.Tenancy.DefaultTenantID, cfg.Auth.SuperAdminEmails, mappings, log)

	auditSvc := services.NewAuditLogsService(auditLogRepo)
	fleetSvc := services.NewFleetService(gateway, trainRepo, wagonRepo, aggregateRepo, historyRepo, readingRepo,
		tenantRepo, auditSvc, cacheSvc, services.FleetOptions{
			CacheTTL:            cfg.Redis.CacheTTL,
			MaintenanceInterval: cfg.Jobs.MaintenanceInterval,
		}, log)
	aggregateSvc := services.NewAggregateService(gateway, aggregateRepo, wagonRepo, historyRepo, readingRepo,
		auditSvc, cacheSvc, log)
	tenantSvc := services.NewTenantService(gateway, tenantRepo, auditSvc, storage, cfg.MinIO.URLExpiry, log)
	if failed := services.ProvisionTenants(ctx, tenantSvc, resolver); failed > 0 {
		log.Warn("Some tenants could not be provisioned", zap.Int("failed", failed))
	}
	chatSvc := services.NewChatService(
		services.NewSearchClient(cfg.Search, log),
		services.NewCompletionClient(cfg.Completion, log),
		cacheSvc,
		services.ChatOptions{SystemPrompt: cfg.Completion.SystemPrompt, TopK: cfg.Search.TopK},
		log)

	// Sensor transport is optional; without a broker readings arrive over HTTP only.
	var mqttClient *ingest.Client
	var alertPublisher jobs.AlertPublisher
	if cfg.MQTT.Broker != "" {
		mqttClient, err = ingest.NewClient(cfg.MQTT, log)
		if err != nil {
			log.Warn("MQTT ingestion disabled", zap.String("broker", cfg.MQTT.Broker), zap.Error(err))
		} else {
			defer mqttClient.Disconnect()
			if err := ingest.NewSubscriber(aggregateSvc, log).Start(mqttClient, cfg.MQTT.Topic); err != nil {
				log.Warn("Failed to subscribe to sensor readings", zap.Error(err))
			}
			alertPublisher = ingest.NewAlertPublisher(mqttClient)
		}
	}

	var scheduler *background.JobScheduler
	if cfg.Jobs.Enabled {
		alerts := jobs.NewMaintenanceAlertService(tenantRepo, aggregateRepo, readingRepo, alertPublisher,
			cfg.Jobs.MaintenanceInterval, 0, log)
		scheduler, err = background.NewJobScheduler(alerts, cfg.Jobs, log)
		if err != nil {
			return fmt.Errorf("create job scheduler: %w", err)
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				log.Warn("Failed to stop job scheduler", zap.Error(err))
			}
		}()
	}

	auth, err := middleware.NewAuthenticator(cfg.Auth, resolver, log)
	if err != nil {
		return fmt.Errorf("configure authentication: %w", err)
	}
	defer auth.Close()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewRequestValidator()
	e.HTTPErrorHandler = common.HTTPErrorHandler(log)

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMiddleware.BodyLimit("4M"))
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	var jobStatus handlers.JobStatusProvider
	var jobHandlers *handlers.JobHandlers
	if scheduler != nil {
		jobStatus = scheduler
		jobHandlers = handlers.NewJobHandlers(scheduler)
	}
	health := handlers.NewHealthHandlers(cfg.App.Version, jobStatus)
	health.AddCheck("database", true, func(ctx context.Context) error { return pool.Ping(ctx) })
	health.AddCheck("redis", false, cacheSvc.Ping)
	if storage != nil {
		health.AddCheck("storage", false, storage.Ping)
	}
	if mqttClient != nil {
		health.AddCheck("mqtt", false, func(context.Context) error {
			if !mqttClient.IsConnected() {
				return errors.New("broker connection lost")
			}
			return nil
		})
	}

	e.GET("/health", health.HealthCheck)
	e.GET("/health/ready", health.ReadinessCheck)
	e.GET("/health/detailed", health.DetailedHealthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	versions := middleware.NewVersionMiddleware(cfg.App.Version)
	api := e.Group("/api", auth.JWTMiddleware(), versions.VersionHeader("v1"))
	handlers.Routes{
		Trains:     handlers.NewTrainHandlers(fleetSvc),
		Aggregates: handlers.NewAggregateHandlers(fleetSvc, aggregateSvc),
		AuditLogs:  handlers.NewAuditLogsHandlers(auditSvc),
		Tenants:    handlers.NewTenantHandlers(tenantSvc, resolver),
		Chat:       handlers.NewChatHandlers(chatSvc),
		Jobs:       jobHandlers,
	}.Register(api, middleware.RequireSuperAdmin())

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
