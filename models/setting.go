package models

import (
	"time"
)

type Setting struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Difficulty        string    `json:"difficulty" gorm:"not null;default:'normal'"`          // normal, fast
	PronunciationType string    `json:"pronunciation_type" gorm:"not null;default:'ashkenazi'"` // ashkenazi, sephardi
	SoundEnabled      bool      `json:"sound_enabled" gorm:"not null;default:true"`
	VibrationEnabled  bool      `json:"vibration_enabled" gorm:"not null;default:true"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
