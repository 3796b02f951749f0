package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"delulu-backend/internal/auth"
	"delulu-backend/internal/config"
	"delulu-backend/internal/database"
	"delulu-backend/internal/handlers"
	"delulu-backend/internal/observability"
	"delulu-backend/internal/services"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize services
	userService := services.NewUserService(database.GetDB())
	deluluService := services.NewDeluluService(database.GetDB(), userService)
	stakeService := services.NewStakeService(database.GetDB(), userService)
	claimService := services.NewClaimService(database.GetDB(), userService)
	statsService := services.NewStatsService(database.GetDB())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	deluluHandler := handlers.NewDeluluHandler(deluluService)
	stakeHandler := handlers.NewStakeHandler(stakeService, claimService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Set up Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.Middleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(observability.MetricsHandler()))

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/wallet", authHandler.WalletLogin)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Public read routes
	router.GET("/api/delulus", deluluHandler.GetDelulus)
	router.GET("/api/delulus/trending", deluluHandler.GetTrendingDelulus)
	router.GET("/api/delulus/state/:state", deluluHandler.GetDelulusByState)
	router.GET("/api/delulus/:id", deluluHandler.GetDeluluByID)
	router.GET("/api/delulus/:id/stakes", stakeHandler.GetStakesByDelulu)
	router.GET("/api/leaderboard", statsHandler.GetLeaderboard)
	router.GET("/api/stats/platform", statsHandler.GetPlatformStats)
	router.GET("/api/stats/user/:address", statsHandler.GetUserStats)
	router.GET("/api/users/:address", userHandler.GetUser)

	// Protected write routes, driven by verified chain events
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.POST("/users", userHandler.FindOrCreateUser)
		api.POST("/delulus", deluluHandler.CreateDelulu)
		api.POST("/delulus/:id/resolve", deluluHandler.ResolveDelulu)
		api.POST("/delulus/:id/cancel", deluluHandler.CancelDelulu)
		api.POST("/stakes", stakeHandler.CreateStake)
		api.POST("/claims", stakeHandler.CreateClaim)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server starting")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
