package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lexitrivia/response"
	"lexitrivia/services"

	"github.com/gin-gonic/gin"
)

// GameManagementHandler exposes the admin dashboard's game and question CRUD.
type GameManagementHandler struct {
	gameService *services.GameService
}

func NewGameManagementHandler(gameService *services.GameService) *GameManagementHandler {
	return &GameManagementHandler{
		gameService: gameService,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func (h *GameManagementHandler) mapGameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGameNotFound):
		response.Error(c, http.StatusNotFound, "Game not found")
	case errors.Is(err, services.ErrQuestionNotFound):
		response.Error(c, http.StatusNotFound, "Question not found in this game")
	case errors.Is(err, services.ErrDuplicateGameName),
		errors.Is(err, services.ErrGameHasScores),
		errors.Is(err, services.ErrWrongAnswersCount):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.FromError(c, err)
	}
}

func (h *GameManagementHandler) ListGames(c *gin.Context) {
	games, err := h.gameService.ListGames()
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"games": games})
}

func (h *GameManagementHandler) GetGame(c *gin.Context) {
	id, ok := parseIDParam(c, "gameId")
	if !ok {
		return
	}

	game, err := h.gameService.GetGame(id)
	if err != nil {
		h.mapGameError(c, err)
		return
	}

	response.OK(c, gin.H{"game": game})
}

func (h *GameManagementHandler) CreateGame(c *gin.Context) {
	var req services.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	adminID := c.MustGet("admin_id").(uint)

	game, err := h.gameService.CreateGame(adminID, &req)
	if err != nil {
		h.mapGameError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "Game created successfully",
		"game":    game,
	})
}

func (h *GameManagementHandler) UpdateGame(c *gin.Context) {
	id, ok := parseIDParam(c, "gameId")
	if !ok {
		return
	}

	var req services.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	game, err := h.gameService.UpdateGame(id, &req)
	if err != nil {
		h.mapGameError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "Game updated successfully",
		"game":    game,
	})
}

func (h *GameManagementHandler) DeleteGame(c *gin.Context) {
	id, ok := parseIDParam(c, "gameId")
	if !ok {
		return
	}

	if err := h.gameService.DeleteGame(id); err != nil {
		h.mapGameError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Game deleted successfully"})
}

func (h *GameManagementHandler) ListQuestions(c *gin.Context) {
	gameID, ok := parseIDParam(c, "gameId")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := c.Query("search")
	isActive := c.Query("isActive")

	questions, game, pagination, err := h.gameService.ListQuestions(gameID, page, limit, search, isActive)
	if err != nil {
		h.mapGameError(c, err)
		return
	}

	response.OK(c, gin.H{
		"questions": questions,
		"game": gin.H{
			"id":   game.ID,
			"name": game.Name,
		},
		"pagination": pagination,
	})
}

func (h *GameManagementHandler) CreateQuestion(c *gin.Context) {
	gameID, ok := parseIDParam(c, "gameId")
	if !ok {
		return
	}

	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	question, err := h.gameService.CreateQuestion(gameID, &req)
	if err != nil {
		h.mapGameError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message":  "Question created successfully",
		"question": question,
	})
}

func (h *GameManagementHandler) UpdateQuestion(c *gin.Context) {
	gameID, ok := parseIDParam(c, "gameId")
	if !ok {
		return
	}
	questionID, ok := parseIDParam(c, "questionId")
	if !ok {
		return
	}

	var req services.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	question, err := h.gameService.UpdateQuestion(gameID, questionID, &req)
	if err != nil {
		h.mapGameError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message":  "Question updated successfully",
		"question": question,
	})
}

func (h *GameManagementHandler) DeleteQuestion(c *gin.Context) {
	gameID, ok := parseIDParam(c, "gameId")
	if !ok {
		return
	}
	questionID, ok := parseIDParam(c, "questionId")
	if !ok {
		return
	}

	if err := h.gameService.DeleteQuestion(gameID, questionID); err != nil {
		h.mapGameError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Question deleted successfully"})
}

type bulkImportRequest struct {
	Questions []services.QuestionImport `json:"questions" binding:"required,min=1"`
}

func (h *GameManagementHandler) BulkImportQuestions(c *gin.Context) {
	gameID, ok := parseIDParam(c, "gameId")
	if !ok {
		return
	}

	var req bulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.gameService.BulkImportQuestions(gameID, req.Questions)
	if err != nil {
		h.mapGameError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "Import completed",
		"results": result,
	})
}
