package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/docs"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/config"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/database"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/database/migration"
	handlers "github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/http/handler"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/http/middleware"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/lock"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/logging"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/notifier"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/otel"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/repository/postgres"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/service"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Compliance Engine API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	log := logging.New(os.Stdout, loc).With("api")
	slog.SetDefault(log.Slog())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		fatal(log, "tracing_init_failed", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		fatal(log, "database_connect_failed", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		fatal(log, "migration_failed", err)
	}

	docRepo := postgres.NewDocumentPostgres(db)
	ruleRepo := postgres.NewRulePostgres(db)
	noteRepo := postgres.NewNotificationPostgres(db)

	docOpts := []service.DocumentOption{service.WithLogger(log), service.WithLocation(loc)}
	// Object storage is optional; without it documents are served without download links.
	if cfg.MinIO.Endpoint != "" {
		presigner, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			fatal(log, "object_storage_init_failed", err)
		}
		docOpts = append(docOpts, service.WithPresigner(presigner, time.Duration(cfg.MinIO.PresignExpirySec)*time.Second))
	}
	docSvc := service.NewDocumentService(docRepo, ruleRepo, ruleRepo, docOpts...)
	noteSvc := service.NewNotificationService(noteRepo)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal(log, "metrics_init_failed", err)
	}
	notifierMetrics, err := notifier.NewMetrics(reg)
	if err != nil {
		fatal(log, "metrics_init_failed", err)
	}

	schedOpts := []notifier.Option{
		notifier.WithInterval(cfg.Notifier.Interval()),
		notifier.WithTimeout(cfg.Notifier.Timeout()),
		notifier.WithLookaheadDays(cfg.Notifier.LookaheadDays),
		notifier.WithLocation(loc),
		notifier.WithLogger(log),
		notifier.WithMetrics(notifierMetrics),
	}
	rdb, err := lock.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		fatal(log, "redis_connect_failed", err)
	}
	if rdb != nil {
		defer rdb.Close()
		schedOpts = append(schedOpts, notifier.WithLocker(lock.NewRedisLocker(rdb), time.Duration(cfg.Redis.LockTTLSec)*time.Second))
	}
	scheduler := notifier.NewScheduler(docRepo, ruleRepo, noteRepo, schedOpts...)

	if cfg.Notifier.Enabled {
		if err := scheduler.Start(ctx); err != nil {
			fatal(log, "notifier_start_failed", err)
		}
		defer scheduler.Stop()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log.With("http")),
	})

	// RequestID must run before Logger so access lines carry the id.
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, db, log, docSvc, noteSvc, scheduler)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("shutdown_requested", nil)
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error("http_shutdown_failed", err, nil)
		}
	}()

	addr := ":" + cfg.Port
	log.Info("http_listening", map[string]any{"addr": addr, "notifier_enabled": cfg.Notifier.Enabled})
	if err := app.Listen(addr); err != nil {
		fatal(log, "http_listen_failed", err)
	}
}

func fatal(log *logging.Logger, event string, err error) {
	log.Error(event, err, nil)
	os.Exit(1)
}
