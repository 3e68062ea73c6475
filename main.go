package main

import (
	"log"

	"lexitrivia/config"
	"lexitrivia/handlers"
	"lexitrivia/metrics"
	"lexitrivia/middleware"
	"lexitrivia/models"
	"lexitrivia/routes"
	"lexitrivia/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Game{},
		&models.Question{},
		&models.GameQuestion{},
		&models.Score{},
		&models.Setting{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Register Prometheus collectors
	metrics.MustRegister(prometheus.DefaultRegisterer)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpire)
	adminService := services.NewAdminService(db, cfg.JWTSecret, cfg.JWTExpire)
	gameService := services.NewGameService(db, cfg.AudioDir)
	userService := services.NewUserService(db)
	playService := services.NewPlayService(db)
	settingsService := services.NewSettingsService(db)

	// Seed a super admin on first boot
	if err := adminService.EnsureDefaultAdmin(cfg.DefaultAdminUsername, cfg.DefaultAdminPassword); err != nil {
		log.Fatal("Failed to create default admin:", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(adminService)
	gameManagementHandler := handlers.NewGameManagementHandler(gameService)
	userManagementHandler := handlers.NewUserManagementHandler(userService)
	playHandler := handlers.NewPlayHandler(playService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Setup Gin router
	router := gin.Default()

	// Add CORS and metrics middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics())

	// Setup routes
	routes.SetupRoutes(
		router,
		db,
		cfg,
		rateLimiter,
		authHandler,
		playHandler,
		settingsHandler,
		adminHandler,
		gameManagementHandler,
		userManagementHandler,
	)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
