package main

import (
	"fmt"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ketanMehtaa/gymone/internal/authz"
	"github.com/ketanMehtaa/gymone/internal/handler"
	"github.com/ketanMehtaa/gymone/internal/middleware"
	"github.com/ketanMehtaa/gymone/internal/service"
	"github.com/ketanMehtaa/gymone/internal/store"
	"github.com/ketanMehtaa/gymone/pkg/config"
	"github.com/ketanMehtaa/gymone/pkg/database"
	"github.com/ketanMehtaa/gymone/pkg/jwtutil"
	"github.com/ketanMehtaa/gymone/pkg/logger"
	"github.com/ketanMehtaa/gymone/prometheus"
)

var rootCmd = &cobra.Command{
	Use:   "gymone",
	Short: "Gym management back office service",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger.InitLogger(cfg)
		log := logger.GetLogger()

		db, err := database.Open(cfg)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("Database migrated")
		return nil
	},
}

var (
	seedEmail     string
	seedPassword  string
	seedFirstName string
	seedLastName  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the initial super admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger.InitLogger(cfg)
		log := logger.GetLogger()

		db, err := database.Open(cfg)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		st := store.New(db)
		auth := service.NewAuthService(st, jwtutil.New(&cfg.JWT))

		sa, err := auth.SeedSuperAdmin(seedEmail, seedPassword, seedFirstName, seedLastName)
		if err != nil {
			return err
		}
		log.Info("Super admin created",
			zap.String("id", sa.ID),
			zap.String("email", sa.Email))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedEmail, "email", "", "super admin email")
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "super admin password")
	seedCmd.Flags().StringVar(&seedFirstName, "first-name", "Super", "super admin first name")
	seedCmd.Flags().StringVar(&seedLastName, "last-name", "Admin", "super admin last name")
	_ = seedCmd.MarkFlagRequired("email")
	_ = seedCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func runServe() error {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting gym service...", cfg.LogConfig()...)

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Build components; everything takes its dependencies explicitly
	tokens := jwtutil.New(&cfg.JWT)
	st := store.New(db)
	authService := service.NewAuthService(st, tokens)
	attendanceService := service.NewAttendanceService(st)

	authHandler := handler.NewAuthHandler(authService, time.Duration(cfg.JWT.ExpirationHours)*time.Hour)
	memberHandler := handler.NewMemberHandler(st)
	membershipHandler := handler.NewMembershipHandler(st)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	gymHandler := handler.NewGymHandler(authService, st)
	paymentHandler := handler.NewPaymentHandler(st)
	statsHandler := handler.NewStatsHandler(st)
	reportHandler := handler.NewReportHandler(st)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// API routes - all require a valid token
	api := e.Group("/api")
	api.Use(middleware.Auth(tokens))

	api.GET("/auth/me", authHandler.Me, middleware.Require(authz.RuleAuthenticated))

	// Member management - tenant scoped
	members := api.Group("/members", middleware.Require(authz.RuleTenantOps))
	members.GET("", memberHandler.List)
	members.POST("", memberHandler.Create)
	members.GET("/search", memberHandler.Search)
	members.GET("/:id", memberHandler.Get)
	members.PATCH("/:id", memberHandler.Update)
	members.DELETE("/:id", memberHandler.Delete)

	// Memberships - tenant scoped
	api.POST("/memberships", membershipHandler.Create, middleware.Require(authz.RuleTenantOps))
	api.GET("/memberships", membershipHandler.ListWithStatus, middleware.Require(authz.RuleTenantOps))

	// Attendance - tenant scoped
	attendance := api.Group("/attendance", middleware.Require(authz.RuleTenantOps))
	attendance.POST("", attendanceHandler.CheckIn)
	attendance.PATCH("/checkout", attendanceHandler.CheckOut)
	attendance.GET("/today", attendanceHandler.Today)

	// Payments - tenant scoped
	payments := api.Group("/payments", middleware.Require(authz.RuleTenantOps))
	payments.GET("", paymentHandler.List)
	payments.POST("", paymentHandler.Create)

	// Gyms - provisioning is super admin only, listing is scoped
	api.POST("/gyms", gymHandler.Provision, middleware.Require(authz.RuleProvisionGym))
	api.GET("/gyms", gymHandler.List, middleware.Require(authz.RuleListGyms))

	// Dashboard - tenant scoped
	api.GET("/dashboard/stats", statsHandler.Dashboard, middleware.Require(authz.RuleTenantOps))
	api.GET("/reports/stats", reportHandler.Stats, middleware.Require(authz.RuleTenantOps))

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
