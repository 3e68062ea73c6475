package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"lexitrivia/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminService struct {
	db        *gorm.DB
	jwtSecret string
	jwtExpire time.Duration
}

func NewAdminService(db *gorm.DB, jwtSecret string, jwtExpire time.Duration) *AdminService {
	return &AdminService{db: db, jwtSecret: jwtSecret, jwtExpire: jwtExpire}
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateAdminRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin super_admin"`
}

func (s *AdminService) Login(req *AdminLoginRequest) (*models.Admin, string, error) {
	var admin models.Admin
	err := s.db.Where("username = ? AND is_active = ?", req.Username, true).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	admin.LastLogin = &now
	if err := s.db.Model(&admin).Update("last_login", now).Error; err != nil {
		return nil, "", err
	}

	token, err := GenerateToken(s.jwtSecret, s.jwtExpire, admin.ID, admin.Role, PrincipalAdmin)
	if err != nil {
		return nil, "", err
	}
	return &admin, token, nil
}

func (s *AdminService) CreateAdmin(req *CreateAdminRequest) (*models.Admin, error) {
	var existing models.Admin
	err := s.db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := models.Admin{
		Username: req.Username,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *AdminService) ListAdmins(page, limit int, search string) ([]models.Admin, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := s.db.Model(&models.Admin{})
	if search != "" {
		query = query.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var admins []models.Admin
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&admins).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	return admins, NewPagination(page, limit, total), nil
}

func (s *AdminService) DeactivateAdmin(id, actingAdminID uint) (*models.Admin, error) {
	if id == actingAdminID {
		return nil, ErrSelfDeactivate
	}

	var admin models.Admin
	if err := s.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&admin).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	admin.IsActive = false
	return &admin, nil
}

// Stats is the admin dashboard snapshot.
type Stats struct {
	TotalUsers     int64          `json:"total_users"`
	TotalQuestions int64          `json:"total_questions"`
	TotalScores    int64          `json:"total_scores"`
	ActiveUsers    int64          `json:"active_users"` // users who played in the last 30 days
	RecentActivity []models.Score `json:"recent_activity"`
}

func (s *AdminService) GetStats() (*Stats, error) {
	stats := &Stats{}

	if err := s.db.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Question{}).Where("is_active = ?", true).Count(&stats.TotalQuestions).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Score{}).Count(&stats.TotalScores).Error; err != nil {
		return nil, err
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	err := s.db.Model(&models.Score{}).
		Where("created_at >= ?", thirtyDaysAgo).
		Distinct("user_id").
		Count(&stats.ActiveUsers).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Preload("User").
		Order("created_at DESC").
		Limit(10).
		Find(&stats.RecentActivity).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// EnsureDefaultAdmin seeds a super admin on first boot so the dashboard is
// reachable before any admins exist.
func (s *AdminService) EnsureDefaultAdmin(username, password string) error {
	var count int64
	if err := s.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := s.CreateAdmin(&CreateAdminRequest{
		Username: username,
		Password: password,
		Role:     models.RoleSuperAdmin,
	})
	if err != nil {
		return err
	}
	log.Printf("Created default admin %q - change the password after first login", username)
	return nil
}
