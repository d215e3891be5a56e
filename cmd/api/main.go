package main

import (
	"context"
	"fmt"
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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"blogapi/docs"
	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/database/migration"
	handlers "blogapi/internal/http/handler"
	"blogapi/internal/http/middleware"
	"blogapi/internal/logging"
	"blogapi/internal/otel"
	"blogapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

var (
	rootCmd = &cobra.Command{
		Use:           "blogapi",
		Short:         "Articles REST API",
		RunE:          cmdServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE:  cmdServe,
	}
	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create the articulos schema if it does not exist",
		RunE:  cmdMigrate,
	}
)

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// @title						Blog API
// @version					1.0
// @description				Articles with an attached image.
// @BasePath					/api
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cmdServe(cmd *cobra.Command, args []string) error {
	// .env is auto-loaded; real environment variables win
	cfg := config.Load()
	log := logging.New(cfg.Log.Level, cfg.Log.Location())
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, dialectOf(cfg.Database), log, dbHostOf(cfg.Database)); err != nil {
			return err
		}
	}

	store, err := openImageStore(cfg)
	if err != nil {
		return fmt.Errorf("init image store: %w", err)
	}

	repo, err := newArticleRepository(cfg.Database, db)
	if err != nil {
		return err
	}
	svc := service.NewArticleService(repo, store, log)

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.BodyLimitMB * 1024 * 1024,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		host := c.Get("Host")
		if host == "" {
			host = cfg.AppHost
		}

		docs.SwaggerInfo.Host = host
		docs.SwaggerInfo.Schemes = []string{scheme}
		docs.SwaggerInfo.BasePath = cfg.BasePath

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, db, svc, cfg.BasePath)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", addr),
			zap.String("base_path", cfg.BasePath),
			zap.String("db_driver", cfg.Database.Driver),
			zap.String("image_backend", cfg.Images.Backend),
		)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func cmdMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logging.New(cfg.Log.Level, cfg.Log.Location())
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	return migration.EnsureMigrated(cmd.Context(), db, dialectOf(cfg.Database), log, dbHostOf(cfg.Database))
}
