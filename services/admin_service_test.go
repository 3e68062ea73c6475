package services

import (
	"errors"
	"testing"
	"time"

	"lexitrivia/models"
)

func TestAdminLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, testSecret, time.Hour)

	if _, err := svc.CreateAdmin(&CreateAdminRequest{Username: "boss", Password: "secret123"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	admin, token, err := svc.Login(&AdminLoginRequest{Username: "boss", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if admin.LastLogin == nil {
		t.Fatal("expected last login recorded")
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Type != PrincipalAdmin || claims.Role != models.RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestAdminLoginBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, testSecret, time.Hour)

	if _, err := svc.CreateAdmin(&CreateAdminRequest{Username: "boss", Password: "secret123"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, _, err := svc.Login(&AdminLoginRequest{Username: "boss", Password: "nope"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(&AdminLoginRequest{Username: "ghost", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateAdminDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, testSecret, time.Hour)

	if _, err := svc.CreateAdmin(&CreateAdminRequest{Username: "boss", Password: "secret123"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.CreateAdmin(&CreateAdminRequest{Username: "boss", Password: "other456"})
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestDeactivateAdminSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, testSecret, time.Hour)

	admin, err := svc.CreateAdmin(&CreateAdminRequest{Username: "boss", Password: "secret123", Role: models.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.DeactivateAdmin(admin.ID, admin.ID); !errors.Is(err, ErrSelfDeactivate) {
		t.Fatalf("expected ErrSelfDeactivate, got %v", err)
	}
}

func TestDeactivateAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, testSecret, time.Hour)

	boss, err := svc.CreateAdmin(&CreateAdminRequest{Username: "boss", Password: "secret123", Role: models.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := svc.CreateAdmin(&CreateAdminRequest{Username: "other", Password: "secret123"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deactivated, err := svc.DeactivateAdmin(other.ID, boss.ID)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if deactivated.IsActive {
		t.Fatal("expected admin deactivated")
	}

	// A deactivated admin can no longer log in.
	if _, _, err := svc.Login(&AdminLoginRequest{Username: "other", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected login rejected, got %v", err)
	}
}

func TestListAdminsSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, testSecret, time.Hour)

	for _, name := range []string{"boss", "helper", "bystander"} {
		if _, err := svc.CreateAdmin(&CreateAdminRequest{Username: name, Password: "secret123"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	admins, pagination, err := svc.ListAdmins(1, 10, "BY")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if pagination.Total != 1 || len(admins) != 1 || admins[0].Username != "bystander" {
		t.Fatalf("search failed: %+v", admins)
	}
}

func TestEnsureDefaultAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db, testSecret, time.Hour)

	if err := svc.EnsureDefaultAdmin("admin", "admin123"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 admin, got %d", count)
	}

	var seeded models.Admin
	if err := db.Where("username = ?", "admin").First(&seeded).Error; err != nil {
		t.Fatalf("seeded admin: %v", err)
	}
	if seeded.Role != models.RoleSuperAdmin {
		t.Fatalf("expected super_admin role, got %q", seeded.Role)
	}

	// Idempotent once any admin exists.
	if err := svc.EnsureDefaultAdmin("admin", "admin123"); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	db.Model(&models.Admin{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected seeding to be idempotent, got %d admins", count)
	}
}

func TestGetStats(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	user := seedUser(t, db, "p@example.com")
	game := seedGame(t, db, admin.ID, "Stats")
	seedQuestions(t, db, game.ID, 4)

	score := models.Score{UserID: user.ID, GameID: game.ID, Score: 70, GameMode: models.GameModeNormal}
	if err := db.Create(&score).Error; err != nil {
		t.Fatalf("seed score: %v", err)
	}

	svc := NewAdminService(db, testSecret, time.Hour)
	stats, err := svc.GetStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalUsers != 1 || stats.TotalQuestions != 4 || stats.TotalScores != 1 {
		t.Fatalf("unexpected totals %+v", stats)
	}
	if stats.ActiveUsers != 1 {
		t.Fatalf("expected 1 recently active user, got %d", stats.ActiveUsers)
	}
	if len(stats.RecentActivity) != 1 || stats.RecentActivity[0].User.Name == "" {
		t.Fatalf("expected recent activity with preloaded user, got %+v", stats.RecentActivity)
	}
}
