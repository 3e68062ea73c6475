package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"lexitrivia/models"

	"gorm.io/gorm"
)

// PlayService runs the player-facing game flow: browsing games, starting a
// session, submitting results, history and leaderboards.
//
// Session state is not stored server-side. The start call issues a composite
// id "userID_gameID_unixMilli" and submit only verifies that the prefix
// matches the caller, so there is no expiry or single-use enforcement.
type PlayService struct {
	db *gorm.DB
}

func NewPlayService(db *gorm.DB) *PlayService {
	return &PlayService{db: db}
}

// SessionQuestion is a question as handed to the client: shuffled answers,
// no correct-answer field.
type SessionQuestion struct {
	QuestionNumber     int      `json:"question_number"`
	QuestionID         uint     `json:"question_id"`
	Word               string   `json:"word"`
	Answers            []string `json:"answers"`
	AshkenaziAudioFile string   `json:"ashkenazi_audio_file,omitempty"`
	SephardiAudioFile  string   `json:"sephardi_audio_file,omitempty"`
}

// Session is the start-of-game descriptor.
type Session struct {
	SessionID      string            `json:"session_id"`
	GameID         uint              `json:"game_id"`
	GameName       string            `json:"game_name"`
	TotalQuestions int               `json:"total_questions"`
	PassingScore   int               `json:"passing_score"`
	Questions      []SessionQuestion `json:"questions"`
}

type SubmitRequest struct {
	SessionID    string            `json:"session_id" binding:"required"`
	Answers      map[string]string `json:"answers" binding:"required"` // questionID -> chosen answer text
	GameDuration int               `json:"game_duration" binding:"omitempty,min=0"`
}

type AnswerResult struct {
	QuestionID    string `json:"question_id"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

type SubmitResult struct {
	Score          int            `json:"score"`
	CorrectAnswers int            `json:"correct_answers"`
	TotalQuestions int            `json:"total_questions"`
	Passed         bool           `json:"passed"`
	Rank           int            `json:"rank"`
	GameDuration   int            `json:"game_duration"`
	Answers        []AnswerResult `json:"answers"`
}

// ListActiveGames returns playable games sorted by popularity, each with a
// live count of its active questions.
func (s *PlayService) ListActiveGames() ([]models.Game, error) {
	var games []models.Game
	err := s.db.Where("is_active = ?", true).
		Order("total_plays DESC").
		Find(&games).Error
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

// LeaderboardEntry is one row of a game leaderboard.
type LeaderboardEntry struct {
	UserName          string    `json:"user_name"`
	Score             int       `json:"score"`
	CorrectAnswers    int       `json:"correct_answers"`
	QuestionsAnswered int       `json:"questions_answered"`
	GameDuration      int       `json:"game_duration"`
	CreatedAt         time.Time `json:"created_at"`
}

// GameDetails bundles a game with its leaderboard and the caller's best run.
type GameDetails struct {
	Game          *models.Game       `json:"game"`
	UserBestScore *models.Score      `json:"user_best_score"`
	TopScores     []LeaderboardEntry `json:"top_scores"`
}

func (s *PlayService) GetGameDetails(gameID, userID uint) (*GameDetails, error) {
	var game models.Game
	err := s.db.Where("id = ? AND is_active = ?", gameID, true).First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Question{}).
		Where("game_id = ? AND is_active = ?", gameID, true).
		Count(&count).Error; err != nil {
		return nil, err
	}
	game.TotalQuestions = int(count)

	details := &GameDetails{Game: &game}

	if userID != 0 {
		var best models.Score
		err := s.db.Where("game_id = ? AND user_id = ?", gameID, userID).
			Order("score DESC").
			First(&best).Error
		if err == nil {
			details.UserBestScore = &best
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var topScores []models.Score
	err = s.db.Preload("User").
		Where("game_id = ?", gameID).
		Order("score DESC, game_duration ASC").
		Limit(10).
		Find(&topScores).Error
	if err != nil {
		return nil, err
	}
	for _, sc := range topScores {
		details.TopScores = append(details.TopScores, LeaderboardEntry{
			UserName:          sc.User.Name,
			Score:             sc.Score,
			CorrectAnswers:    sc.CorrectAnswers,
			QuestionsAnswered: sc.QuestionsAnswered,
			GameDuration:      sc.GameDuration,
			CreatedAt:         sc.CreatedAt,
		})
	}

	return details, nil
}

// StartSession samples the game's active questions, shuffles answer order
// per question and issues the session descriptor. Increments the game's
// play counter.
func (s *PlayService) StartSession(userID, gameID uint) (*Session, error) {
	var game models.Game
	err := s.db.Where("id = ? AND is_active = ?", gameID, true).First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	var questions []models.Question
	err = s.db.Where("game_id = ? AND is_active = ?", gameID, true).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoActiveQuestions
	}

	if game.MaxQuestions > 0 && len(questions) > game.MaxQuestions {
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
		questions = questions[:game.MaxQuestions]
	}

	sessionQuestions := make([]SessionQuestion, 0, len(questions))
	for i, q := range questions {
		answers := make([]string, 0, len(q.WrongAnswers)+1)
		answers = append(answers, q.CorrectAnswer)
		answers = append(answers, q.WrongAnswers...)
		rand.Shuffle(len(answers), func(i, j int) {
			answers[i], answers[j] = answers[j], answers[i]
		})

		sessionQuestions = append(sessionQuestions, SessionQuestion{
			QuestionNumber:     i + 1,
			QuestionID:         q.ID,
			Word:               q.Word,
			Answers:            answers,
			AshkenaziAudioFile: q.AshkenaziAudioFile,
			SephardiAudioFile:  q.SephardiAudioFile,
		})
	}

	if err := s.db.Model(&models.Game{}).
		Where("id = ?", gameID).
		UpdateColumn("total_plays", gorm.Expr("total_plays + 1")).Error; err != nil {
		return nil, err
	}

	return &Session{
		SessionID:      fmt.Sprintf("%d_%d_%d", userID, gameID, time.Now().UnixMilli()),
		GameID:         gameID,
		GameName:       game.Name,
		TotalQuestions: len(sessionQuestions),
		PassingScore:   game.PassingScore,
		Questions:      sessionQuestions,
	}, nil
}

// SubmitSession grades the submitted answers against the game's active
// questions, persists the score and refreshes the denormalized aggregates.
func (s *PlayService) SubmitSession(userID, gameID uint, req *SubmitRequest) (*SubmitResult, error) {
	// The only session validation: the id must have been issued for this
	// user/game pair. There is no issuance record, expiry or replay guard.
	if !hasSessionPrefix(req.SessionID, userID, gameID) {
		return nil, ErrInvalidSession
	}

	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if len(req.Answers) == 0 {
		return nil, ErrNoAnswers
	}

	var questions []models.Question
	err := s.db.Select("id", "correct_answer").
		Where("game_id = ? AND is_active = ?", gameID, true).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	correctByID := make(map[string]string, len(questions))
	for _, q := range questions {
		correctByID[strconv.FormatUint(uint64(q.ID), 10)] = q.CorrectAnswer
	}

	correct := 0
	total := len(req.Answers)
	answerResults := make([]AnswerResult, 0, total)
	for questionID, userAnswer := range req.Answers {
		correctAnswer, known := correctByID[questionID]
		isCorrect := known && correctAnswer == userAnswer
		if isCorrect {
			correct++
		}
		answerResults = append(answerResults, AnswerResult{
			QuestionID:    questionID,
			UserAnswer:    userAnswer,
			CorrectAnswer: correctAnswer,
			IsCorrect:     isCorrect,
		})
	}

	scorePercent := int(math.Round(float64(correct) / float64(total) * 100))
	passed := scorePercent >= game.PassingScore

	score := models.Score{
		UserID:            userID,
		GameID:            gameID,
		Score:             scorePercent,
		GameMode:          models.GameModeNormal,
		QuestionsAnswered: total,
		CorrectAnswers:    correct,
		GameDuration:      req.GameDuration,
	}
	if err := s.db.Create(&score).Error; err != nil {
		return nil, err
	}

	// Full-scan aggregate refresh on every submit. Read-then-write with no
	// transaction, matching the observed behavior at this scale.
	var avg float64
	err = s.db.Model(&models.Score{}).
		Where("game_id = ?", gameID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Game{}).
		Where("id = ?", gameID).
		UpdateColumn("average_score", int(math.Round(avg))).Error; err != nil {
		return nil, err
	}

	var totalScore int64
	err = s.db.Model(&models.Score{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(score), 0)").
		Scan(&totalScore).Error
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"total_score":  totalScore,
			"games_played": gorm.Expr("games_played + 1"),
		}).Error; err != nil {
		return nil, err
	}

	rank, err := s.rank(gameID, scorePercent, req.GameDuration)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		Score:          scorePercent,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Passed:         passed,
		Rank:           rank,
		GameDuration:   req.GameDuration,
		Answers:        answerResults,
	}, nil
}

// rank is 1 + the number of strictly better runs: higher score wins, ties
// broken by shorter duration. A zero duration ranks behind every tied run.
func (s *PlayService) rank(gameID uint, scorePercent, gameDuration int) (int, error) {
	duration := gameDuration
	if duration == 0 {
		duration = 999999
	}

	var better int64
	err := s.db.Model(&models.Score{}).
		Where("game_id = ?", gameID).
		Where("score > ? OR (score = ? AND game_duration < ?)", scorePercent, scorePercent, duration).
		Count(&better).Error
	if err != nil {
		return 0, err
	}
	return int(better) + 1, nil
}

func hasSessionPrefix(sessionID string, userID, gameID uint) bool {
	prefix := fmt.Sprintf("%d_%d_", userID, gameID)
	return len(sessionID) > len(prefix) && sessionID[:len(prefix)] == prefix
}

func (s *PlayService) GetHistory(userID uint, page, limit int, gameID uint) ([]models.Score, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := s.db.Model(&models.Score{}).Where("user_id = ?", userID)
	if gameID != 0 {
		query = query.Where("game_id = ?", gameID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var scores []models.Score
	err := query.Preload("Game").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&scores).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	return scores, NewPagination(page, limit, total), nil
}

// GlobalLeaderboardEntry is one row of the cross-game leaderboard: a user's
// best score over all of their runs.
type GlobalLeaderboardEntry struct {
	Rank       int       `json:"rank"`
	UserName   string    `json:"user_name"`
	BestScore  int       `json:"best_score"`
	TotalGames int       `json:"total_games"`
	LastPlayed time.Time `json:"last_played"`
}

func (s *PlayService) GetLeaderboard(page, limit int) ([]GlobalLeaderboardEntry, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var entries []GlobalLeaderboardEntry
	err := s.db.Table("scores").
		Select("users.name AS user_name, MAX(scores.score) AS best_score, COUNT(*) AS total_games, MAX(scores.created_at) AS last_played").
		Joins("JOIN users ON users.id = scores.user_id").
		Group("scores.user_id, users.name").
		Order("best_score DESC").
		Offset(offset).
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	for i := range entries {
		entries[i].Rank = offset + i + 1
	}

	var total int64
	err = s.db.Model(&models.Score{}).Distinct("user_id").Count(&total).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	return entries, NewPagination(page, limit, total), nil
}
