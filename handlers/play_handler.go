package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lexitrivia/metrics"
	"lexitrivia/response"
	"lexitrivia/services"

	"github.com/gin-gonic/gin"
)

// PlayHandler exposes the player-facing game endpoints.
type PlayHandler struct {
	playService *services.PlayService
}

func NewPlayHandler(playService *services.PlayService) *PlayHandler {
	return &PlayHandler{
		playService: playService,
	}
}

func (h *PlayHandler) mapPlayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGameNotFound):
		response.Error(c, http.StatusNotFound, "Game not found or not active")
	case errors.Is(err, services.ErrNoActiveQuestions),
		errors.Is(err, services.ErrInvalidSession),
		errors.Is(err, services.ErrNoAnswers):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.FromError(c, err)
	}
}

func (h *PlayHandler) ListGames(c *gin.Context) {
	games, err := h.playService.ListActiveGames()
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"games": games})
}

func (h *PlayHandler) GetGameDetails(c *gin.Context) {
	gameID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Best-score enrichment only applies to authenticated callers.
	var userID uint
	if value, exists := c.Get("user_id"); exists {
		userID = value.(uint)
	}

	details, err := h.playService.GetGameDetails(gameID, userID)
	if err != nil {
		h.mapPlayError(c, err)
		return
	}

	response.OK(c, gin.H{
		"game":            details.Game,
		"user_best_score": details.UserBestScore,
		"top_scores":      details.TopScores,
	})
}

func (h *PlayHandler) StartSession(c *gin.Context) {
	gameID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := c.MustGet("user_id").(uint)

	session, err := h.playService.StartSession(userID, gameID)
	if err != nil {
		h.mapPlayError(c, err)
		return
	}
	metrics.GameSessionsStartedTotal.Inc()

	response.OK(c, gin.H{
		"message": "Game started successfully",
		"session": session,
	})
}

func (h *PlayHandler) SubmitSession(c *gin.Context) {
	gameID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := c.MustGet("user_id").(uint)

	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.playService.SubmitSession(userID, gameID, &req)
	if err != nil {
		h.mapPlayError(c, err)
		return
	}
	metrics.ScoresSubmittedTotal.Inc()

	response.OK(c, gin.H{"results": result})
}

func (h *PlayHandler) GetHistory(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	var gameID uint
	if raw := c.Query("gameId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid gameId")
			return
		}
		gameID = uint(id)
	}

	scores, pagination, err := h.playService.GetHistory(userID, page, limit, gameID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"history":    scores,
		"pagination": pagination,
	})
}

func (h *PlayHandler) GetLeaderboard(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, pagination, err := h.playService.GetLeaderboard(page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"leaderboard": entries,
		"pagination":  pagination,
	})
}
