package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/config"
	"github.com/iliyamo/backoffice/internal/database"
	"github.com/iliyamo/backoffice/internal/handler"
	"github.com/iliyamo/backoffice/internal/middleware"
	"github.com/iliyamo/backoffice/internal/queue"
	"github.com/iliyamo/backoffice/internal/repository"
	"github.com/iliyamo/backoffice/internal/router"
	"github.com/iliyamo/backoffice/internal/seed"
	"github.com/iliyamo/backoffice/internal/service"
)

func newLogger(cfg config.Config) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if cfg.IsProd() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewExample()
	}
	return log
}

func main() {
	cfg := config.Load()
	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Database and schema
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("database open failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()
	if err := database.Migrate(db, cfg.DBName, log); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}
	if cfg.SeedOnStart {
		seedCtx, cancel := context.WithTimeout(ctx, time.Minute)
		err := seed.New(db, log).Run(seedCtx)
		cancel()
		if err != nil {
			log.Fatal("seeding failed", zap.Error(err))
		}
	}

	// 2. Redis (optional) for rate limiting and the response cache
	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		log.Warn("redis unreachable, rate limiter and response cache disabled")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	// 3. Entity change events
	var events service.EventSink = service.NopEvents{}
	var publisher *service.EventPublisher
	if cfg.EventsEnabled {
		publisher = service.NewEventPublisher(cfg.AMQPURL, log)
		events = publisher
		go func() {
			if err := queue.StartAuditConsumer(ctx, cfg.AMQPURL, cfg.AuditLogPath, log); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("audit consumer stopped", zap.Error(err))
			}
		}()
	}

	// 4. Repositories and services
	productRepo := repository.NewProductRepo(db)
	contentRepo := repository.NewContentRepo(db)
	fileRepo := repository.NewFileUploadRepo(db)
	permissionRepo := repository.NewPermissionRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	userRepo := repository.NewUserRepo(db)
	rubricaRepo := repository.NewRubricaRepo(db)

	resolver := service.NewPermissionResolver(userRepo, cfg.PermissionCacheSize, cfg.PermissionCacheTTL)
	products := service.NewProductService(productRepo, events, log)
	contents := service.NewContentService(contentRepo, events, log)
	files := service.NewFileUploadService(fileRepo, events, log)
	permissions := service.NewPermissionService(permissionRepo, resolver, events)
	profiles := service.NewProfileService(profileRepo, resolver, events)
	users := service.NewUserService(userRepo, profileRepo, resolver, events)
	rubricas := service.NewRubricaService(rubricaRepo, events)

	// 5. HTTP
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.RegisterRoutes(e, &handler.HealthHandler{DB: db})
	api := router.NewAPI(e, router.Options{
		AuthEnabled: cfg.AuthEnabled,
		JWTSecret:   cfg.JWTSecret,
		Permissions: resolver,
		Log:         log,
		RateLimit:   middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log),
		Cache:       middleware.NewRedisCache(config.LoadCacheConfig(), rdb, log),
	})
	api.RegisterProducts(handler.NewProductHandler(products, cfg.UploadMaxBytes))
	api.RegisterContents(handler.NewContentHandler(contents, cfg.UploadMaxBytes))
	api.RegisterFiles(handler.NewFileUploadHandler(files, cfg.UploadMaxBytes))
	api.RegisterRBAC(handler.NewRBACHandler(users, profiles, permissions))
	api.RegisterRubrica(handler.NewRubricaHandler(rubricas))
	api.RegisterDemo(&handler.DemoHandler{
		Documents: service.NewDocumentSearchService(log),
		Chatbot:   service.NewChatbotService(cfg.ChatbotDelay),
		Web:       service.NewWebSearchService(),
		Graph:     service.NewGraphService(products),
		Dashboard: service.NewDashboardService(products, contents, files, users, profiles, permissions),
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env),
			zap.Bool("auth", cfg.AuthEnabled), zap.Bool("events", cfg.EventsEnabled))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error("http server failed", zap.Error(err))
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
	}
	if publisher != nil {
		publisher.Close()
	}
	log.Info("stopped")
}
