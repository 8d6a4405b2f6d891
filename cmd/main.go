package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "plastwarehouse/docs"
	"plastwarehouse/internal/bot"
	"plastwarehouse/internal/caching"
	"plastwarehouse/internal/common"
	"plastwarehouse/internal/config"
	"plastwarehouse/internal/handlers"
	"plastwarehouse/internal/jobs/background"
	"plastwarehouse/internal/logger"
	"plastwarehouse/internal/metrics"
	"plastwarehouse/internal/middleware"
	"plastwarehouse/internal/normalize"
	"plastwarehouse/internal/render"
	"plastwarehouse/internal/repositories"
	"plastwarehouse/internal/services"
	"plastwarehouse/pkg/database"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without a pool the listings answer 503 until the process is restarted.
	pool, err := database.NewPool(ctx, database.PoolOptions{
		DSN:      cfg.Database.DSN(),
		MinConns: cfg.Database.MinConns,
		MaxConns: cfg.Database.MaxConns,
	}, log)
	if err != nil {
		log.Error("database unavailable", zap.Error(err))
	} else {
		defer pool.Close()
		if cfg.Database.AutoMigrate {
			if err := database.Migrate(cfg.Database.DSN(), log); err != nil {
				return err
			}
		}
	}

	plasticsRepo := repositories.NewPlasticsRepo(pool)
	catalogRepo := repositories.NewCatalogRepo(pool)
	userRepo := repositories.NewUserRepo(pool)

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)

	minioSvc, err := services.NewMinioService(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.UseSSL)
	if err != nil {
		return fmt.Errorf("failed to initialize MinIO service: %w", err)
	}
	if err := minioSvc.EnsureBucketExists(ctx, cfg.Storage.Bucket); err != nil {
		log.Warn("export bucket unavailable", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
	}

	plasticsSvc := services.NewPlasticsService(plasticsRepo, normalize.New(cfg.Server.Location()))
	catalogSvc := services.NewCatalogService(catalogRepo, cacheSvc, cfg.Redis.CatalogTTL())
	userSvc := services.NewUserService(userRepo)
	exportSvc := services.NewExportService(plasticsSvc, minioSvc, cfg.Storage.Bucket)

	scheduler, err := background.NewJobScheduler(background.Options{
		ExportCron:     cfg.Jobs.ExportCron,
		WarmupInterval: time.Duration(cfg.Jobs.WarmupMins) * time.Minute,
		Location:       cfg.Server.Location(),
	}, exportSvc, catalogSvc, log)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = render.NewTemplates()

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	pdfOpts := render.PDFOptions{FontPath: cfg.Server.PDFFont}
	if err := pdfOpts.Check(); err != nil {
		log.Warn("pdf export degraded, set PDF_FONT to a UTF-8 TrueType font", zap.Error(err))
	}

	handlers.Routes{
		Plastics: handlers.NewPlasticsHandlers(plasticsSvc, exportSvc, pdfOpts),
		Catalog:  handlers.NewCatalogHandlers(catalogSvc, userSvc),
		Bot:      handlers.NewBotHandlers(bot.NewDispatcher(plasticsSvc, catalogSvc, userSvc), cfg.Bot.WebhookSecret),
		Health: handlers.NewHealthHandlers(
			databaseCheck(pool),
			cacheSvc.Ping,
			func(ctx context.Context) error { return minioSvc.Ping(ctx, cfg.Storage.Bucket) },
			version,
		),
		Jobs: handlers.NewJobHandlers(scheduler),
	}.Register(e)

	scheduler.Start()

	serverErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info("starting server", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("version", version))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-serverErr:
		if err != nil {
			_ = scheduler.Stop()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := scheduler.Stop(); err != nil {
		log.Error("scheduler shutdown failed", zap.Error(err))
	}
	return nil
}

func databaseCheck(pool *pgxpool.Pool) handlers.HealthCheckFunc {
	return func(ctx context.Context) error {
		if pool == nil {
			return common.ErrServiceUnavailable
		}
		return pool.Ping(ctx)
	}
}
