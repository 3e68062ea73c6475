package models

import (
	"time"
)

// GameQuestion is the legacy game/question association table. New questions
// carry a direct GameID; these rows are only maintained as a cleanup target
// when a game is deleted.
type GameQuestion struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	GameID     uint      `json:"game_id" gorm:"not null;uniqueIndex:idx_game_question"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_game_question"`
	Order      int       `json:"order" gorm:"not null"`
	IsActive   bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
