package services

import (
	"testing"

	"lexitrivia/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Game{},
		&models.Question{},
		&models.GameQuestion{},
		&models.Score{},
		&models.Setting{},
		&models.Payment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB) *models.Admin {
	t.Helper()
	admin := &models.Admin{Username: "boss", Password: "x", Role: models.RoleSuperAdmin, IsActive: true}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "player", Email: email, Password: "x", IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedGame(t *testing.T, db *gorm.DB, adminID uint, name string) *models.Game {
	t.Helper()
	game := &models.Game{
		Name:         name,
		Description:  "test game",
		IsActive:     true,
		MaxQuestions: 100,
		PassingScore: 70,
		CreatedByID:  adminID,
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("seed game: %v", err)
	}
	return game
}

func seedQuestions(t *testing.T, db *gorm.DB, gameID uint, n int) []models.Question {
	t.Helper()
	questions := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		q := models.Question{
			GameID:        gameID,
			Word:          word(i),
			CorrectAnswer: "correct-" + word(i),
			WrongAnswers:  []string{"w1", "w2", "w3"},
			IsActive:      true,
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("seed question %d: %v", i, err)
		}
		questions = append(questions, q)
	}
	return questions
}

func word(i int) string {
	return "word-" + string(rune('a'+i%26)) + string(rune('0'+i/26))
}
