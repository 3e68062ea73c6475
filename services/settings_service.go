package services

import (
	"errors"

	"lexitrivia/models"

	"gorm.io/gorm"
)

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

type UpdateSettingsRequest struct {
	Difficulty        string `json:"difficulty" binding:"omitempty,oneof=normal fast"`
	PronunciationType string `json:"pronunciation_type" binding:"omitempty,oneof=ashkenazi sephardi"`
	SoundEnabled      *bool  `json:"sound_enabled"`
	VibrationEnabled  *bool  `json:"vibration_enabled"`
}

// GetSettings returns the user's preferences, creating the defaults row on
// first access.
func (s *SettingsService) GetSettings(userID uint) (*models.Setting, error) {
	var setting models.Setting
	err := s.db.Where("user_id = ?", userID).First(&setting).Error
	if err == nil {
		return &setting, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	setting = models.Setting{
		UserID:            userID,
		Difficulty:        models.GameModeNormal,
		PronunciationType: "ashkenazi",
		SoundEnabled:      true,
		VibrationEnabled:  true,
	}
	if err := s.db.Create(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpdateSettings upserts the single per-user preferences row.
func (s *SettingsService) UpdateSettings(userID uint, req *UpdateSettingsRequest) (*models.Setting, error) {
	setting, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	if req.Difficulty != "" {
		setting.Difficulty = req.Difficulty
	}
	if req.PronunciationType != "" {
		setting.PronunciationType = req.PronunciationType
	}
	if req.SoundEnabled != nil {
		setting.SoundEnabled = *req.SoundEnabled
	}
	if req.VibrationEnabled != nil {
		setting.VibrationEnabled = *req.VibrationEnabled
	}

	if err := s.db.Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
