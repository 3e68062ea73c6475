package services

import (
	"errors"
	"strings"

	"lexitrivia/models"

	"gorm.io/gorm"
)

// UserService covers admin-side user management.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type ListUsersParams struct {
	Page      int
	Limit     int
	Search    string
	HasPaid   string // "", "true", "false"
	SortBy    string
	SortOrder string
}

// UserStats is the aggregate block attached to the user list.
type UserStats struct {
	TotalUsers       int64   `json:"total_users"`
	PaidUsers        int64   `json:"paid_users"`
	FreeUsers        int64   `json:"free_users"`
	ActiveUsers      int64   `json:"active_users"`
	TotalGamesPlayed int64   `json:"total_games_played"`
	AvgGamesPerUser  float64 `json:"avg_games_per_user"`
}

var userSortColumns = map[string]bool{
	"created_at":   true,
	"name":         true,
	"email":        true,
	"games_played": true,
	"total_score":  true,
}

func (s *UserService) ListUsers(params ListUsersParams) ([]models.User, Pagination, *UserStats, error) {
	page, limit := params.Page, params.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := s.db.Model(&models.User{})
	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if params.HasPaid != "" {
		query = query.Where("has_paid = ?", params.HasPaid == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, Pagination{}, nil, err
	}

	sortBy := params.SortBy
	if !userSortColumns[sortBy] {
		sortBy = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		order = "ASC"
	}

	var users []models.User
	err := query.Order(sortBy + " " + order).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, Pagination{}, nil, err
	}

	stats := &UserStats{}
	err = s.db.Model(&models.User{}).
		Select(
			"COUNT(*) AS total_users, " +
				"SUM(CASE WHEN has_paid THEN 1 ELSE 0 END) AS paid_users, " +
				"SUM(CASE WHEN has_paid THEN 0 ELSE 1 END) AS free_users, " +
				"SUM(CASE WHEN is_active THEN 1 ELSE 0 END) AS active_users, " +
				"COALESCE(SUM(games_played), 0) AS total_games_played, " +
				"COALESCE(AVG(games_played), 0) AS avg_games_per_user",
		).
		Scan(stats).Error
	if err != nil {
		return nil, Pagination{}, nil, err
	}

	return users, NewPagination(page, limit, total), stats, nil
}

// UserScoreStats summarizes a single user's play record.
type UserScoreStats struct {
	TotalGames             int64   `json:"total_games"`
	BestScore              int     `json:"best_score"`
	AvgScore               float64 `json:"avg_score"`
	TotalCorrectAnswers    int64   `json:"total_correct_answers"`
	TotalQuestionsAnswered int64   `json:"total_questions_answered"`
	TotalGameTime          int64   `json:"total_game_time"`
}

type UserDetails struct {
	User         *models.User     `json:"user"`
	RecentScores []models.Score   `json:"recent_scores"`
	Payments     []models.Payment `json:"payments"`
	Stats        *UserScoreStats  `json:"stats"`
}

func (s *UserService) GetUser(id uint) (*UserDetails, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	details := &UserDetails{User: &user}

	err := s.db.Where("user_id = ?", id).
		Order("created_at DESC").
		Limit(10).
		Find(&details.RecentScores).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Where("user_id = ?", id).
		Order("created_at DESC").
		Find(&details.Payments).Error
	if err != nil {
		return nil, err
	}

	stats := &UserScoreStats{}
	err = s.db.Model(&models.Score{}).
		Where("user_id = ?", id).
		Select(
			"COUNT(*) AS total_games, " +
				"COALESCE(MAX(score), 0) AS best_score, " +
				"COALESCE(AVG(score), 0) AS avg_score, " +
				"COALESCE(SUM(correct_answers), 0) AS total_correct_answers, " +
				"COALESCE(SUM(questions_answered), 0) AS total_questions_answered, " +
				"COALESCE(SUM(game_duration), 0) AS total_game_time",
		).
		Scan(stats).Error
	if err != nil {
		return nil, err
	}
	details.Stats = stats

	return details, nil
}

type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	HasPaid     *bool   `json:"has_paid"`
	IsActive    *bool   `json:"is_active"`
	GamesPlayed *int    `json:"games_played" binding:"omitempty,min=0"`
}

func (s *UserService) UpdateUser(id uint, req *UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		var existing models.User
		err := s.db.Where("email = ? AND id <> ?", *req.Email, id).First(&existing).Error
		if err == nil {
			return nil, ErrDuplicateEmail
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["email"] = *req.Email
	}
	if req.HasPaid != nil {
		updates["has_paid"] = *req.HasPaid
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.GamesPlayed != nil {
		updates["games_played"] = *req.GamesPlayed
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ToggleActive flips only the activity flag; the user's scores and payments
// are never touched.
func (s *UserService) ToggleActive(id uint, isActive bool) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&user).Update("is_active", isActive).Error; err != nil {
		return nil, err
	}
	user.IsActive = isActive
	return &user, nil
}

// DeleteUser deactivates by default; permanently=true removes the user
// together with all of their scores and payments.
func (s *UserService) DeleteUser(id uint, permanently bool) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !permanently {
		return s.db.Model(&user).Update("is_active", false).Error
	}

	if err := s.db.Where("user_id = ?", id).Delete(&models.Score{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("user_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.User{}, id).Error
}

// ResetGames resets the free-tier play counter, effectively granting more
// free games.
func (s *UserService) ResetGames(id uint, newCount int) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&user).Update("games_played", newCount).Error; err != nil {
		return nil, err
	}
	user.GamesPlayed = newCount
	return &user, nil
}
