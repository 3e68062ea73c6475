package models

import (
	"time"
)

type Game struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"uniqueIndex;not null"`
	Description  string    `json:"description" gorm:"not null"`
	Image        string    `json:"image"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true"`
	MaxQuestions int       `json:"max_questions" gorm:"not null;default:100"` // cap per session
	PassingScore int       `json:"passing_score" gorm:"not null;default:70"`  // percentage 0-100
	// Denormalized aggregates, recomputed on question changes / score submits
	TotalQuestions int  `json:"total_questions" gorm:"not null;default:0"`
	TotalPlays     int  `json:"total_plays" gorm:"not null;default:0"`
	AverageScore   int  `json:"average_score" gorm:"not null;default:0"`
	CreatedByID    uint `json:"created_by_id" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	CreatedBy Admin      `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:GameID"`
	Scores    []Score    `json:"scores,omitempty" gorm:"foreignKey:GameID"`
}
