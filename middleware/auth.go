package middleware

import (
	"net/http"
	"strings"

	"lexitrivia/models"
	"lexitrivia/response"
	"lexitrivia/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

// AuthMiddleware verifies a user bearer token and attaches the user to the
// context under "user" / "user_id".
func AuthMiddleware(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
			c.Abort()
			return
		}

		claims, err := services.ParseToken(jwtSecret, token)
		if err != nil || claims.Type != services.PrincipalUser {
			response.Error(c, http.StatusUnauthorized, "Invalid token.")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.ID).Error; err != nil || !user.IsActive {
			response.Error(c, http.StatusUnauthorized, "Invalid token or user not found.")
			c.Abort()
			return
		}

		c.Set("user", &user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid token is present but
// lets anonymous requests through. Used where responses are enriched for
// authenticated callers.
func OptionalAuthMiddleware(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := services.ParseToken(jwtSecret, token)
		if err != nil || claims.Type != services.PrincipalUser {
			c.Next()
			return
		}

		var user models.User
		if err := db.First(&user, claims.ID).Error; err == nil && user.IsActive {
			c.Set("user", &user)
			c.Set("user_id", user.ID)
		}
		c.Next()
	}
}

// CheckGameLimit gates game starts for free-tier users: paid users always
// pass, free users are cut off at the configured play count.
func CheckGameLimit(freeGamesLimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.")
			c.Abort()
			return
		}
		user := value.(*models.User)

		if user.HasPaid {
			c.Next()
			return
		}

		if user.GamesPlayed >= freeGamesLimit {
			c.JSON(http.StatusForbidden, gin.H{
				"success":      false,
				"message":      "Free games limit reached. Please upgrade to continue playing.",
				"games_played": user.GamesPlayed,
				"limit":        freeGamesLimit,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
