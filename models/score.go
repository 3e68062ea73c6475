package models

import (
	"time"
)

const (
	GameModeNormal = "normal"
	GameModeFast   = "fast"
)

// Score is an append-only play record; rows are never updated once written.
type Score struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"not null;index"`
	GameID            uint      `json:"game_id" gorm:"not null;index:idx_scores_game_score"`
	Score             int       `json:"score" gorm:"not null;index:idx_scores_game_score"` // percentage 0-100
	GameMode          string    `json:"game_mode" gorm:"not null;default:'normal'"`        // normal, fast
	QuestionsAnswered int       `json:"questions_answered" gorm:"not null;default:0"`
	CorrectAnswers    int       `json:"correct_answers" gorm:"not null;default:0"`
	GameDuration      int       `json:"game_duration" gorm:"not null;default:0"` // seconds
	CreatedAt         time.Time `json:"created_at"`

	// Relationships
	User User `json:"user,omitempty"`
	Game Game `json:"game,omitempty"`
}
