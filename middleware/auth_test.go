package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lexitrivia/models"
	"lexitrivia/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Admin{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, active bool) *models.User {
	t.Helper()
	user := &models.User{Name: "player", Email: "p@example.com", Password: "x", IsActive: active}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if !active {
		// IsActive has a DB default of true, so a zero-value false is dropped
		// on create; deactivate explicitly like the service tests do.
		if err := db.Model(user).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate user: %v", err)
		}
	}
	return user
}

func protectedRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", AuthMiddleware(db, testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("user_id")})
	})
	return router
}

func doGet(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsUserToken(t *testing.T) {
	db := newAuthTestDB(t)
	user := createUser(t, db, true)
	router := protectedRouter(db)

	token, err := services.GenerateToken(testSecret, time.Hour, user.ID, "", services.PrincipalUser)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	w := doGet(router, "/me", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	db := newAuthTestDB(t)
	router := protectedRouter(db)

	if w := doGet(router, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareRejectsAdminToken(t *testing.T) {
	db := newAuthTestDB(t)
	user := createUser(t, db, true)
	router := protectedRouter(db)

	// Same signing key, wrong principal type.
	token, err := services.GenerateToken(testSecret, time.Hour, user.ID, models.RoleAdmin, services.PrincipalAdmin)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	if w := doGet(router, "/me", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an admin token, got %d", w.Code)
	}
}

func TestAuthMiddlewareRejectsInactiveUser(t *testing.T) {
	db := newAuthTestDB(t)
	user := createUser(t, db, false)
	router := protectedRouter(db)

	token, err := services.GenerateToken(testSecret, time.Hour, user.ID, "", services.PrincipalUser)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	if w := doGet(router, "/me", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a deactivated user, got %d", w.Code)
	}
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	db := newAuthTestDB(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/open", OptionalAuthMiddleware(db, testSecret), func(c *gin.Context) {
		_, authed := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"authenticated": authed})
	})

	if w := doGet(router, "/open", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous, got %d", w.Code)
	}
	if w := doGet(router, "/open", "garbage"); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for a bad token, got %d", w.Code)
	}
}

func TestCheckGameLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	route := func(user *models.User) *gin.Engine {
		router := gin.New()
		router.POST("/start", func(c *gin.Context) {
			c.Set("user", user)
			c.Next()
		}, CheckGameLimit(10), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	post := func(router *gin.Engine) int {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/start", nil))
		return w.Code
	}

	free := &models.User{GamesPlayed: 9}
	if code := post(route(free)); code != http.StatusOK {
		t.Fatalf("under the limit: expected 200, got %d", code)
	}

	exhausted := &models.User{GamesPlayed: 10}
	if code := post(route(exhausted)); code != http.StatusForbidden {
		t.Fatalf("at the limit: expected 403, got %d", code)
	}

	paid := &models.User{GamesPlayed: 500, HasPaid: true}
	if code := post(route(paid)); code != http.StatusOK {
		t.Fatalf("paid users bypass the limit: expected 200, got %d", code)
	}
}
