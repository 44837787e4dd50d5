// caresense-server is the CareSense API server: caregiver-to-senior access
// authorization, medication schedules, health and activity tracking, alert
// evaluation, and real-time relationship notifications.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/caresense/caresense/internal/config"
	"github.com/caresense/caresense/internal/domain/activity"
	"github.com/caresense/caresense/internal/domain/alerts"
	"github.com/caresense/caresense/internal/domain/medication"
	"github.com/caresense/caresense/internal/domain/notification"
	"github.com/caresense/caresense/internal/domain/relationship"
	"github.com/caresense/caresense/internal/domain/vitals"
	"github.com/caresense/caresense/internal/platform/auth"
	"github.com/caresense/caresense/internal/platform/db"
	"github.com/caresense/caresense/internal/platform/feed"
	"github.com/caresense/caresense/internal/platform/middleware"
	"github.com/caresense/caresense/internal/platform/ws"
)

func main() {
	root := &cobra.Command{
		Use:   "caresense-server",
		Short: "CareSense health companion API server",
	}
	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validate config: %w", err)
			}
			logger := newLogger(cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			cancel()
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			e := echo.New()
			e.HideBanner = true
			e.HidePort = true

			e.Use(middleware.RequestID())
			e.Use(middleware.Recovery(logger))
			e.Use(middleware.Logger(logger))
			e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
			e.Use(middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerSecond: cfg.RateLimitRPS,
				BurstSize:         cfg.RateLimitBurst,
			}))

			e.GET("/health", func(c echo.Context) error {
				if err := pool.Ping(c.Request().Context()); err != nil {
					return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				}
				return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
			})

			// Platform services
			dispatcher := feed.NewDispatcher(logger)
			defer dispatcher.Close()
			hub := ws.NewHub(logger)
			center := notification.NewCenter(dispatcher, hub, notification.NewInbox(),
				time.Duration(cfg.ToastDismissSeconds)*time.Second, logger)
			defer center.Shutdown()

			// Domain services
			relSvc := relationship.NewService(relationship.NewRepoPG(pool), dispatcher, logger)
			relSvc.WithTxRunner(func(ctx context.Context, fn func(ctx context.Context) error) error {
				return db.WithTx(ctx, pool, fn)
			})
			medSvc := medication.NewService(medication.NewRepoPG(pool), relSvc, logger)
			vitalsSvc := vitals.NewService(vitals.NewRepoPG(pool), relSvc, logger)
			activitySvc := activity.NewService(activity.NewRepoPG(pool), relSvc, logger)
			alertsSvc := alerts.NewService(relSvc, vitalsSvc, medSvc, activitySvc, logger)

			api := e.Group("/api/v1")
			if cfg.IsDev() {
				api.Use(auth.DevAuthMiddleware())
			} else {
				api.Use(auth.JWTMiddleware(auth.JWTConfig{
					Issuer:   cfg.AuthIssuer,
					Audience: cfg.AuthAudience,
					JWKSURL:  cfg.AuthJWKSURL,
				}))
			}

			relationship.NewHandler(relSvc).RegisterRoutes(api)
			medication.NewHandler(medSvc).RegisterRoutes(api)
			vitals.NewHandler(vitalsSvc).RegisterRoutes(api)
			activity.NewHandler(activitySvc).RegisterRoutes(api)
			alerts.NewHandler(alertsSvc).RegisterRoutes(api)
			notification.NewHandler(center).RegisterRoutes(api)

			wsHandler := ws.NewHandler(hub)
			wsHandler.OnConnect = center.SessionStarted
			wsHandler.OnDisconnect = center.SessionEnded
			wsHandler.RegisterRoutes(api)

			go func() {
				logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
				if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			logger.Info().Msg("shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer shutdownCancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	var migrationsDir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}
	cmd.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "migrations directory")

	withMigrator := func(fn func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := newLogger(cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			return fn(ctx, db.NewMigrator(pool, migrationsDir), logger)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: withMigrator(func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error {
			applied, err := m.Up(ctx)
			if err != nil {
				return err
			}
			logger.Info().Int("applied", applied).Msg("migrations complete")
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: withMigrator(func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error {
			statuses, err := m.Status(ctx)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Printf("%4d  %-40s %s\n", s.Version, s.Name, state)
			}
			return nil
		}),
	})

	return cmd
}
