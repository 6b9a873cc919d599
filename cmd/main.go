package main

import (
	"eventshare-service/internal/handler"
	"eventshare-service/internal/middleware"
	"eventshare-service/internal/notify"
	"eventshare-service/internal/service"
	"eventshare-service/pkg/config"
	"eventshare-service/pkg/database"
	"eventshare-service/pkg/logger"
	"eventshare-service/pkg/resettoken"
	"eventshare-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting eventshare service...", zap.String("environment", cfg.Server.Env))

	// Initialize database (includes migrations and reference-data seeding)
	if err := database.InitDB(cfg, log); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Wire core services
	db := database.GetDB()
	reset := resettoken.New(cfg.Auth.ResetSigningKey, cfg.Auth.ResetTokenTTL)
	notifier := notify.NewLogNotifier(log)

	credentials := service.NewCredentialService(db, reset, notifier, cfg.Auth.BcryptCost)
	identity := service.NewIdentityService(db)
	events := service.NewEventService(db)
	attendance := service.NewAttendanceService(db)
	comments := service.NewCommentService(db)
	profiles := service.NewProfileService(db, events)

	authHandler := handler.NewAuthHandler(credentials)
	eventHandler := handler.NewEventHandler(events, attendance)
	commentHandler := handler.NewCommentHandler(comments)
	profileHandler := handler.NewProfileHandler(profiles)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())
	e.Use(middleware.TokenAuth(identity))

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", prometheus.HandlerFunc())

	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.POST("/password/reset", authHandler.RequestPasswordReset)
	e.POST("/password/reset/confirm", authHandler.CompletePasswordReset)

	e.GET("/events", eventHandler.List)
	e.GET("/events/city/:city", eventHandler.ListByCity)
	e.GET("/events/:id", eventHandler.Get)
	e.GET("/events/:id/comments", commentHandler.List)
	e.GET("/categories", eventHandler.Categories)
	e.GET("/interests", profileHandler.Interests)
	e.GET("/users/:id", profileHandler.View)

	// Token-gated routes
	e.GET("/getuser", authHandler.GetUser, middleware.RequireUser)
	e.POST("/events", eventHandler.Create, middleware.RequireUser)
	e.PUT("/events/:id", eventHandler.Update, middleware.RequireUser)
	e.POST("/events/:id/join", eventHandler.Join, middleware.RequireUser)
	e.POST("/events/:id/leave", eventHandler.Leave, middleware.RequireUser)
	e.POST("/events/:id/comments", commentHandler.Add, middleware.RequireUser)
	e.PUT("/users/interests", profileHandler.SetInterests, middleware.RequireUser)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
