package services

import (
	"errors"
	"testing"

	"lexitrivia/models"
)

func TestCreateGameDefaults(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	svc := NewGameService(db, t.TempDir())

	game, err := svc.CreateGame(admin.ID, &CreateGameRequest{
		Name:        "  Alef Bet  ",
		Description: "letters",
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if game.Name != "Alef Bet" {
		t.Fatalf("expected trimmed name, got %q", game.Name)
	}
	if game.MaxQuestions != 100 || game.PassingScore != 70 {
		t.Fatalf("expected defaults 100/70, got %d/%d", game.MaxQuestions, game.PassingScore)
	}
	if !game.IsActive {
		t.Fatal("new games start active")
	}
}

func TestCreateGameDuplicateName(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	svc := NewGameService(db, t.TempDir())

	if _, err := svc.CreateGame(admin.ID, &CreateGameRequest{Name: "Nouns", Description: "d"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.CreateGame(admin.ID, &CreateGameRequest{Name: "Nouns", Description: "d"})
	if !errors.Is(err, ErrDuplicateGameName) {
		t.Fatalf("expected ErrDuplicateGameName, got %v", err)
	}
}

func TestUpdateGameDuplicateNameExcludesSelf(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	svc := NewGameService(db, t.TempDir())

	game := seedGame(t, db, admin.ID, "Verbs")
	seedGame(t, db, admin.ID, "Nouns")

	// Renaming to your own name is fine.
	same := "Verbs"
	if _, err := svc.UpdateGame(game.ID, &UpdateGameRequest{Name: &same}); err != nil {
		t.Fatalf("self rename: %v", err)
	}

	taken := "Nouns"
	_, err := svc.UpdateGame(game.ID, &UpdateGameRequest{Name: &taken})
	if !errors.Is(err, ErrDuplicateGameName) {
		t.Fatalf("expected ErrDuplicateGameName, got %v", err)
	}
}

func TestDeleteGameBlockedByScores(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	user := seedUser(t, db, "p@example.com")
	svc := NewGameService(db, t.TempDir())

	game := seedGame(t, db, admin.ID, "Played")
	score := models.Score{UserID: user.ID, GameID: game.ID, Score: 50, GameMode: models.GameModeNormal}
	if err := db.Create(&score).Error; err != nil {
		t.Fatalf("seed score: %v", err)
	}

	if err := svc.DeleteGame(game.ID); !errors.Is(err, ErrGameHasScores) {
		t.Fatalf("expected ErrGameHasScores, got %v", err)
	}

	// Neither the game nor its history was touched.
	var gameCount, scoreCount int64
	db.Model(&models.Game{}).Where("id = ?", game.ID).Count(&gameCount)
	db.Model(&models.Score{}).Where("game_id = ?", game.ID).Count(&scoreCount)
	if gameCount != 1 || scoreCount != 1 {
		t.Fatalf("delete must leave state intact, games=%d scores=%d", gameCount, scoreCount)
	}
}

func TestDeleteGameRemovesAssociations(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	svc := NewGameService(db, t.TempDir())

	game := seedGame(t, db, admin.ID, "Unplayed")
	questions := seedQuestions(t, db, game.ID, 2)
	for _, q := range questions {
		gq := models.GameQuestion{GameID: game.ID, QuestionID: q.ID}
		if err := db.Create(&gq).Error; err != nil {
			t.Fatalf("seed association: %v", err)
		}
	}

	if err := svc.DeleteGame(game.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var gqCount int64
	db.Model(&models.GameQuestion{}).Where("game_id = ?", game.ID).Count(&gqCount)
	if gqCount != 0 {
		t.Fatalf("expected association rows removed, got %d", gqCount)
	}
	var gameCount int64
	db.Model(&models.Game{}).Where("id = ?", game.ID).Count(&gameCount)
	if gameCount != 0 {
		t.Fatal("expected game removed")
	}
}

func TestCreateQuestionWrongAnswersCount(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	svc := NewGameService(db, t.TempDir())
	game := seedGame(t, db, admin.ID, "Strict")

	_, err := svc.CreateQuestion(game.ID, &CreateQuestionRequest{
		Word:          "shalom",
		CorrectAnswer: "hello",
		WrongAnswers:  []string{"a", "b"},
	})
	if !errors.Is(err, ErrWrongAnswersCount) {
		t.Fatalf("expected ErrWrongAnswersCount, got %v", err)
	}
}

func TestUpdateQuestionWrongAnswersCount(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	svc := NewGameService(db, t.TempDir())
	game := seedGame(t, db, admin.ID, "Strict")
	questions := seedQuestions(t, db, game.ID, 1)

	_, err := svc.UpdateQuestion(game.ID, questions[0].ID, &UpdateQuestionRequest{
		WrongAnswers: []string{"only", "two"},
	})
	if !errors.Is(err, ErrWrongAnswersCount) {
		t.Fatalf("expected ErrWrongAnswersCount, got %v", err)
	}
}

func TestCreateQuestionRefreshesGameCount(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	svc := NewGameService(db, t.TempDir())
	game := seedGame(t, db, admin.ID, "Counted")

	for i := 0; i < 3; i++ {
		_, err := svc.CreateQuestion(game.ID, &CreateQuestionRequest{
			Word:          word(i),
			CorrectAnswer: "c",
			WrongAnswers:  []string{"a", "b", "d"},
		})
		if err != nil {
			t.Fatalf("create question %d: %v", i, err)
		}
	}

	var reloaded models.Game
	if err := db.First(&reloaded, game.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.TotalQuestions != 3 {
		t.Fatalf("expected total questions 3, got %d", reloaded.TotalQuestions)
	}

	// Deactivating one drops it from the denormalized count.
	inactive := false
	questions, _, _, err := svc.ListQuestions(game.ID, 1, 10, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := svc.UpdateQuestion(game.ID, questions[0].ID, &UpdateQuestionRequest{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := db.First(&reloaded, game.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.TotalQuestions != 2 {
		t.Fatalf("expected total questions 2 after deactivation, got %d", reloaded.TotalQuestions)
	}
}

func TestListQuestionsPagination(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	svc := NewGameService(db, t.TempDir())
	game := seedGame(t, db, admin.ID, "Paged")
	seedQuestions(t, db, game.ID, 45)

	questions, _, pagination, err := svc.ListQuestions(game.ID, 2, 20, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(questions) != 20 {
		t.Fatalf("expected 20 rows on page 2, got %d", len(questions))
	}
	if pagination.Total != 45 || pagination.Pages != 3 {
		t.Fatalf("expected total 45 over 3 pages, got %d/%d", pagination.Total, pagination.Pages)
	}

	questions, _, _, err = svc.ListQuestions(game.ID, 3, 20, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("expected 5 rows on the last page, got %d", len(questions))
	}
}

func TestListQuestionsSearch(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	svc := NewGameService(db, t.TempDir())
	game := seedGame(t, db, admin.ID, "Searched")

	if _, err := svc.CreateQuestion(game.ID, &CreateQuestionRequest{
		Word: "Shalom", CorrectAnswer: "hello", WrongAnswers: []string{"a", "b", "c"},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateQuestion(game.ID, &CreateQuestionRequest{
		Word: "Toda", CorrectAnswer: "thanks", WrongAnswers: []string{"a", "b", "c"},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	questions, _, pagination, err := svc.ListQuestions(game.ID, 1, 10, "SHALOM", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if pagination.Total != 1 || len(questions) != 1 || questions[0].Word != "Shalom" {
		t.Fatalf("case-insensitive search failed: %+v", questions)
	}
}

func TestBulkImportQuestions(t *testing.T) {
	db := newTestDB(t)
	admin := seedAdmin(t, db)
	svc := NewGameService(db, t.TempDir())
	game := seedGame(t, db, admin.ID, "Imported")

	result, err := svc.BulkImportQuestions(game.ID, []QuestionImport{
		{Word: "shalom", CorrectAnswer: "hello", WrongAnswers: []string{"a", "b", "c"}},
		{Word: "", CorrectAnswer: "broken", WrongAnswers: []string{"a", "b", "c"}},
		{Word: "toda", CorrectAnswer: "thanks", WrongAnswers: []string{"a", "b"}},
		{Word: "ken", CorrectAnswer: "yes", WrongAnswers: []string{"a", "b", "c"}},
	})
	if err != nil {
		t.Fatalf("bulk import: %v", err)
	}

	if result.Successful != 2 || result.Failed != 2 {
		t.Fatalf("expected 2/2, got %d/%d", result.Successful, result.Failed)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %v", result.Errors)
	}

	var reloaded models.Game
	if err := db.First(&reloaded, game.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.TotalQuestions != 2 {
		t.Fatalf("expected total questions 2, got %d", reloaded.TotalQuestions)
	}
}
