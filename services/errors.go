package services

import "errors"

// Known failure shapes surfaced by services; handlers map these onto the
// HTTP error taxonomy (400/401/403/404).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrDuplicateUsername  = errors.New("admin already exists with this username")
	ErrDuplicateGameName  = errors.New("a game with this name already exists")

	ErrGameNotFound     = errors.New("game not found")
	ErrQuestionNotFound = errors.New("question not found in this game")
	ErrUserNotFound     = errors.New("user not found")
	ErrAdminNotFound    = errors.New("admin not found")

	ErrGameHasScores     = errors.New("cannot delete a game that has been played; deactivate it instead")
	ErrNoActiveQuestions = errors.New("no active questions in this game")
	ErrInvalidSession    = errors.New("invalid game session id")
	ErrNoAnswers         = errors.New("no answers submitted")
	ErrWrongAnswersCount = errors.New("must provide exactly 3 wrong answers")
	ErrSelfDeactivate    = errors.New("cannot deactivate your own account")
)

// Pagination is the envelope attached to every list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
