package routes

import (
	"time"

	"lexitrivia/config"
	"lexitrivia/handlers"
	"lexitrivia/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func SetupRoutes(
	router *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	rateLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	playHandler *handlers.PlayHandler,
	settingsHandler *handlers.SettingsHandler,
	adminHandler *handlers.AdminHandler,
	gameManagementHandler *handlers.GameManagementHandler,
	userManagementHandler *handlers.UserManagementHandler,
) {
	userAuth := middleware.AuthMiddleware(db, cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuthMiddleware(db, cfg.JWTSecret)
	adminAuth := middleware.AdminAuthMiddleware(db, cfg.JWTSecret)
	superAdmin := middleware.SuperAdminMiddleware()

	// Limits mirror the platform's three throttling tiers.
	apiLimiter := rateLimiter.Limit("api", 100, 15*time.Minute)
	authLimiter := rateLimiter.Limit("auth", 5, 15*time.Minute)
	gameLimiter := rateLimiter.Limit("game", 30, time.Minute)

	// API routes
	api := router.Group("/api")
	api.Use(apiLimiter)
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authLimiter, authHandler.Register)
			auth.POST("/login", authLimiter, authHandler.Login)
			auth.GET("/profile", userAuth, authHandler.GetProfile)
		}

		// Player-facing game routes
		game := api.Group("/game")
		game.Use(gameLimiter)
		{
			game.GET("/list", playHandler.ListGames)
			game.GET("/leaderboard", playHandler.GetLeaderboard)
			game.GET("/history", userAuth, playHandler.GetHistory)
			game.GET("/:id/details", optionalAuth, playHandler.GetGameDetails)
			game.POST("/:id/start", userAuth, middleware.CheckGameLimit(cfg.FreeGamesLimit), playHandler.StartSession)
			game.POST("/:id/submit", userAuth, playHandler.SubmitSession)
		}

		// Per-user preferences
		settings := api.Group("/settings")
		settings.Use(userAuth)
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PUT("", settingsHandler.UpdateSettings)
		}

		// Admin game/question management - mounted before the general
		// admin group, mirroring the dashboard's route layout.
		adminGames := api.Group("/admin/games")
		adminGames.Use(adminAuth)
		{
			adminGames.GET("", gameManagementHandler.ListGames)
			adminGames.POST("", gameManagementHandler.CreateGame)
			adminGames.GET("/:gameId", gameManagementHandler.GetGame)
			adminGames.PUT("/:gameId", gameManagementHandler.UpdateGame)
			adminGames.DELETE("/:gameId", gameManagementHandler.DeleteGame)

			adminGames.GET("/:gameId/questions", gameManagementHandler.ListQuestions)
			adminGames.POST("/:gameId/questions", gameManagementHandler.CreateQuestion)
			adminGames.PUT("/:gameId/questions/:questionId", gameManagementHandler.UpdateQuestion)
			adminGames.DELETE("/:gameId/questions/:questionId", gameManagementHandler.DeleteQuestion)
			adminGames.POST("/:gameId/questions/bulk-import", gameManagementHandler.BulkImportQuestions)
		}

		// General admin routes
		admin := api.Group("/admin")
		{
			admin.POST("/login", authLimiter, adminHandler.Login)

			authed := admin.Group("")
			authed.Use(adminAuth)
			{
				authed.GET("/profile", adminHandler.GetProfile)
				authed.GET("/stats", adminHandler.GetStats)

				users := authed.Group("/users")
				{
					users.GET("", userManagementHandler.ListUsers)
					users.GET("/:id", userManagementHandler.GetUser)
					users.PUT("/:id", userManagementHandler.UpdateUser)
					users.PATCH("/:id/toggle-active", userManagementHandler.ToggleUserStatus)
					users.DELETE("/:id", userManagementHandler.DeleteUser)
					users.PUT("/:id/reset-games", userManagementHandler.ResetUserGames)
				}

				// Admin management requires the super_admin role.
				authed.POST("/create", superAdmin, adminHandler.CreateAdmin)
				authed.GET("/list", superAdmin, adminHandler.ListAdmins)
				authed.PUT("/:id/deactivate", superAdmin, adminHandler.DeactivateAdmin)
			}
		}

		// Health check endpoint
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"success":   true,
				"message":   "Trivia API is running",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})
	}

	// Static files for question audio
	router.Static("/audio", cfg.AudioDir)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
