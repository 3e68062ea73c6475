package middleware

import (
	"net/http"

	"lexitrivia/models"
	"lexitrivia/response"
	"lexitrivia/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminAuthMiddleware verifies an admin bearer token and attaches the admin
// to the context under "admin" / "admin_id".
func AdminAuthMiddleware(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Access denied. Admin token required.")
			c.Abort()
			return
		}

		claims, err := services.ParseToken(jwtSecret, token)
		if err != nil || claims.Type != services.PrincipalAdmin {
			response.Error(c, http.StatusUnauthorized, "Invalid admin token.")
			c.Abort()
			return
		}

		var admin models.Admin
		if err := db.First(&admin, claims.ID).Error; err != nil || !admin.IsActive {
			response.Error(c, http.StatusUnauthorized, "Invalid admin token or admin not found.")
			c.Abort()
			return
		}

		c.Set("admin", &admin)
		c.Set("admin_id", admin.ID)
		c.Next()
	}
}

// SuperAdminMiddleware must run after AdminAuthMiddleware; it gates
// admin-management endpoints to the super_admin role.
func SuperAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("admin")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "Access denied. Admin token required.")
			c.Abort()
			return
		}

		admin := value.(*models.Admin)
		if admin.Role != models.RoleSuperAdmin {
			response.Error(c, http.StatusForbidden, "Access denied. Super admin privileges required.")
			c.Abort()
			return
		}

		c.Next()
	}
}
