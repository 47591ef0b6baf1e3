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

	"github.com/carewell/hms/internal/config"
	"github.com/carewell/hms/internal/domain/account"
	"github.com/carewell/hms/internal/domain/admin"
	"github.com/carewell/hms/internal/domain/appointment"
	"github.com/carewell/hms/internal/domain/billing"
	"github.com/carewell/hms/internal/domain/doctor"
	"github.com/carewell/hms/internal/domain/emr"
	"github.com/carewell/hms/internal/domain/lab"
	"github.com/carewell/hms/internal/domain/patient"
	"github.com/carewell/hms/internal/domain/pharmacy"
	"github.com/carewell/hms/internal/platform/auth"
	"github.com/carewell/hms/internal/platform/db"
	"github.com/carewell/hms/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-server",
		Short: "Hospital Management API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HMS API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Token codec — fails here if the signing secret is missing or short
	codec, err := auth.NewTokenCodec(cfg.JWTSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create token codec")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware. Login, register, and health stay public.
	e.Use(auth.RequireAuth(codec, logger, auth.Skipper))
	e.Use(middleware.Audit(logger))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// API group
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Shared profile resolver for "the logged-in user's own row" lookups
	resolver := account.NewResolver(pool)

	// -- Register Domain Handlers --

	// Account domain
	userRepo := account.NewUserRepoPG(pool)
	accountSvc := account.NewService(userRepo, codec, time.Duration(cfg.TokenTTLMinutes)*time.Minute, cfg.BcryptCost)
	account.NewHandler(accountSvc).RegisterRoutes(apiV1)

	// Admin domain
	deptRepo := admin.NewDepartmentRepoPG(pool)
	staffRepo := admin.NewStaffRepoPG(pool)
	admin.NewHandler(admin.NewService(deptRepo, staffRepo)).RegisterRoutes(apiV1)

	// Patient domain
	patientRepo := patient.NewRepoPG(pool)
	patient.NewHandler(patient.NewService(patientRepo)).RegisterRoutes(apiV1)

	// Doctor domain
	doctorRepo := doctor.NewRepoPG(pool)
	doctor.NewHandler(doctor.NewService(doctorRepo)).RegisterRoutes(apiV1)

	// Appointment domain
	apptRepo := appointment.NewRepoPG(pool)
	appointment.NewHandler(appointment.NewService(apptRepo, resolver)).RegisterRoutes(apiV1)

	// Medical records domain
	recordRepo := emr.NewRepoPG(pool)
	emr.NewHandler(emr.NewService(recordRepo, resolver)).RegisterRoutes(apiV1)

	// Billing domain
	invoiceRepo := billing.NewRepoPG(pool)
	billing.NewHandler(billing.NewService(invoiceRepo, resolver)).RegisterRoutes(apiV1)

	// Lab domain
	labRepo := lab.NewRepoPG(pool)
	lab.NewHandler(lab.NewService(labRepo, resolver)).RegisterRoutes(apiV1)

	// Pharmacy domain
	rxRepo := pharmacy.NewRepoPG(pool)
	pharmacy.NewHandler(pharmacy.NewService(rxRepo, resolver)).RegisterRoutes(apiV1)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
