package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"lexitrivia/models"

	"gorm.io/gorm"
)

// GameService covers the admin side: game CRUD and per-game question CRUD.
type GameService struct {
	db       *gorm.DB
	audioDir string
}

func NewGameService(db *gorm.DB, audioDir string) *GameService {
	return &GameService{db: db, audioDir: audioDir}
}

type CreateGameRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Image        string `json:"image"`
	MaxQuestions int    `json:"max_questions" binding:"omitempty,min=1"`
	PassingScore int    `json:"passing_score" binding:"omitempty,min=0,max=100"`
}

type UpdateGameRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Image        *string `json:"image"`
	IsActive     *bool   `json:"is_active"`
	MaxQuestions *int    `json:"max_questions" binding:"omitempty,min=1"`
	PassingScore *int    `json:"passing_score" binding:"omitempty,min=0,max=100"`
}

func (s *GameService) ListGames() ([]models.Game, error) {
	var games []models.Game
	err := s.db.Preload("CreatedBy").Order("created_at DESC").Find(&games).Error
	if err != nil {
		return nil, err
	}

	for i := range games {
		var count int64
		if err := s.db.Model(&models.Question{}).
			Where("game_id = ? AND is_active = ?", games[i].ID, true).
			Count(&count).Error; err != nil {
			return nil, err
		}
		games[i].TotalQuestions = int(count)
	}
	return games, nil
}

func (s *GameService) GetGame(id uint) (*models.Game, error) {
	var game models.Game
	err := s.db.Preload("CreatedBy").First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Question{}).
		Where("game_id = ? AND is_active = ?", id, true).
		Count(&count).Error; err != nil {
		return nil, err
	}
	game.TotalQuestions = int(count)
	return &game, nil
}

func (s *GameService) CreateGame(adminID uint, req *CreateGameRequest) (*models.Game, error) {
	name := strings.TrimSpace(req.Name)

	var existing models.Game
	err := s.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateGameName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	game := models.Game{
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		Image:        req.Image,
		IsActive:     true,
		MaxQuestions: 100,
		PassingScore: 70,
		CreatedByID:  adminID,
	}
	if req.MaxQuestions > 0 {
		game.MaxQuestions = req.MaxQuestions
	}
	if req.PassingScore > 0 {
		game.PassingScore = req.PassingScore
	}

	if err := s.db.Create(&game).Error; err != nil {
		return nil, err
	}
	return s.GetGame(game.ID)
}

func (s *GameService) UpdateGame(id uint, req *UpdateGameRequest) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)

		var existing models.Game
		err := s.db.Where("name = ? AND id <> ?", name, id).First(&existing).Error
		if err == nil {
			return nil, ErrDuplicateGameName
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.MaxQuestions != nil {
		updates["max_questions"] = *req.MaxQuestions
	}
	if req.PassingScore != nil {
		updates["passing_score"] = *req.PassingScore
	}

	if len(updates) > 0 {
		if err := s.db.Model(&game).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetGame(id)
}

// DeleteGame hard-deletes a game, but only if nobody has ever played it.
// Played games keep their score history and can only be deactivated.
func (s *GameService) DeleteGame(id uint) error {
	var game models.Game
	if err := s.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		return err
	}

	var scoreCount int64
	if err := s.db.Model(&models.Score{}).Where("game_id = ?", id).Count(&scoreCount).Error; err != nil {
		return err
	}
	if scoreCount > 0 {
		return ErrGameHasScores
	}

	if err := s.db.Where("game_id = ?", id).Delete(&models.GameQuestion{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.Game{}, id).Error
}

type CreateQuestionRequest struct {
	Word               string   `json:"word" binding:"required"`
	CorrectAnswer      string   `json:"correct_answer" binding:"required"`
	WrongAnswers       []string `json:"wrong_answers" binding:"required"`
	AshkenaziAudioFile string   `json:"ashkenazi_audio_file"`
	SephardiAudioFile  string   `json:"sephardi_audio_file"`
}

type UpdateQuestionRequest struct {
	Word               *string  `json:"word"`
	CorrectAnswer      *string  `json:"correct_answer"`
	WrongAnswers       []string `json:"wrong_answers"`
	AshkenaziAudioFile *string  `json:"ashkenazi_audio_file"`
	SephardiAudioFile  *string  `json:"sephardi_audio_file"`
	IsActive           *bool    `json:"is_active"`
}

func (s *GameService) ListQuestions(gameID uint, page, limit int, search, isActive string) ([]models.Question, *models.Game, Pagination, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, Pagination{}, ErrGameNotFound
		}
		return nil, nil, Pagination{}, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := s.db.Model(&models.Question{}).Where("game_id = ?", gameID)
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(word) LIKE ? OR LOWER(correct_answer) LIKE ? OR LOWER(wrong_answers) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, Pagination{}, err
	}

	var questions []models.Question
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, nil, Pagination{}, err
	}

	return questions, &game, NewPagination(page, limit, total), nil
}

func (s *GameService) CreateQuestion(gameID uint, req *CreateQuestionRequest) (*models.Question, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if len(req.WrongAnswers) != 3 {
		return nil, ErrWrongAnswersCount
	}

	question := models.Question{
		GameID:             gameID,
		Word:               req.Word,
		CorrectAnswer:      req.CorrectAnswer,
		WrongAnswers:       req.WrongAnswers,
		AshkenaziAudioFile: req.AshkenaziAudioFile,
		SephardiAudioFile:  req.SephardiAudioFile,
		IsActive:           true,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}

	if err := s.refreshTotalQuestions(gameID); err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *GameService) UpdateQuestion(gameID, questionID uint, req *UpdateQuestionRequest) (*models.Question, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if req.WrongAnswers != nil && len(req.WrongAnswers) != 3 {
		return nil, ErrWrongAnswersCount
	}

	var question models.Question
	err := s.db.Where("id = ? AND game_id = ?", questionID, gameID).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	if req.Word != nil {
		question.Word = *req.Word
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}
	if req.WrongAnswers != nil {
		question.WrongAnswers = req.WrongAnswers
	}
	if req.AshkenaziAudioFile != nil {
		question.AshkenaziAudioFile = *req.AshkenaziAudioFile
	}
	if req.SephardiAudioFile != nil {
		question.SephardiAudioFile = *req.SephardiAudioFile
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	if err := s.db.Save(&question).Error; err != nil {
		return nil, err
	}

	if err := s.refreshTotalQuestions(gameID); err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *GameService) DeleteQuestion(gameID, questionID uint) error {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		return err
	}

	var question models.Question
	err := s.db.Where("id = ? AND game_id = ?", questionID, gameID).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	if err := s.db.Delete(&question).Error; err != nil {
		return err
	}

	// Best-effort cleanup of orphaned audio files.
	for _, audioFile := range []string{question.AshkenaziAudioFile, question.SephardiAudioFile} {
		if audioFile == "" {
			continue
		}
		if err := os.Remove(filepath.Join(s.audioDir, audioFile)); err != nil && !os.IsNotExist(err) {
			log.Printf("Could not delete audio file %s: %v", audioFile, err)
		}
	}

	return s.refreshTotalQuestions(gameID)
}

// BulkImportResult reports per-row outcomes of a bulk question import.
type BulkImportResult struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

type QuestionImport struct {
	Word               string   `json:"word"`
	CorrectAnswer      string   `json:"correct_answer"`
	WrongAnswers       []string `json:"wrong_answers"`
	AshkenaziAudioFile string   `json:"ashkenazi_audio_file"`
	SephardiAudioFile  string   `json:"sephardi_audio_file"`
}

func (s *GameService) BulkImportQuestions(gameID uint, items []QuestionImport) (*BulkImportResult, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	result := &BulkImportResult{Errors: []string{}}
	for i, item := range items {
		if item.Word == "" || item.CorrectAnswer == "" || len(item.WrongAnswers) != 3 {
			result.Failed++
			result.Errors = append(result.Errors, questionRowError(i, "invalid question format"))
			continue
		}

		question := models.Question{
			GameID:             gameID,
			Word:               item.Word,
			CorrectAnswer:      item.CorrectAnswer,
			WrongAnswers:       item.WrongAnswers,
			AshkenaziAudioFile: item.AshkenaziAudioFile,
			SephardiAudioFile:  item.SephardiAudioFile,
			IsActive:           true,
		}
		if err := s.db.Create(&question).Error; err != nil {
			result.Failed++
			result.Errors = append(result.Errors, questionRowError(i, err.Error()))
			continue
		}
		result.Successful++
	}

	if err := s.refreshTotalQuestions(gameID); err != nil {
		return nil, err
	}
	return result, nil
}

func questionRowError(index int, msg string) string {
	return fmt.Sprintf("question %d: %s", index+1, msg)
}

func (s *GameService) refreshTotalQuestions(gameID uint) error {
	var count int64
	if err := s.db.Model(&models.Question{}).
		Where("game_id = ? AND is_active = ?", gameID, true).
		Count(&count).Error; err != nil {
		return err
	}
	return s.db.Model(&models.Game{}).
		Where("id = ?", gameID).
		UpdateColumn("total_questions", count).Error
}
