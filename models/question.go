package models

import (
	"time"
)

type Question struct {
	ID            uint     `json:"id" gorm:"primaryKey"`
	GameID        uint     `json:"game_id" gorm:"not null;index:idx_questions_game_active"`
	Word          string   `json:"word" gorm:"not null"`
	CorrectAnswer string   `json:"correct_answer" gorm:"not null"`
	WrongAnswers  []string `json:"wrong_answers" gorm:"serializer:json;not null"` // exactly 3

	AshkenaziAudioFile string `json:"ashkenazi_audio_file"`
	SephardiAudioFile  string `json:"sephardi_audio_file"`

	IsActive  bool      `json:"is_active" gorm:"not null;default:true;index:idx_questions_game_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Game Game `json:"game,omitempty"`
}
