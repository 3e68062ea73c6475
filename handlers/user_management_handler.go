package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lexitrivia/response"
	"lexitrivia/services"

	"github.com/gin-gonic/gin"
)

type UserManagementHandler struct {
	userService *services.UserService
}

func NewUserManagementHandler(userService *services.UserService) *UserManagementHandler {
	return &UserManagementHandler{
		userService: userService,
	}
}

func (h *UserManagementHandler) mapUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrDuplicateEmail):
		response.Error(c, http.StatusBadRequest, "Email already exists")
	default:
		response.FromError(c, err)
	}
}

func (h *UserManagementHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	params := services.ListUsersParams{
		Page:      page,
		Limit:     limit,
		Search:    c.Query("search"),
		HasPaid:   c.Query("hasPaid"),
		SortBy:    c.DefaultQuery("sortBy", "created_at"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}

	users, pagination, stats, err := h.userService.ListUsers(params)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"users":      users,
		"pagination": pagination,
		"stats":      stats,
	})
}

func (h *UserManagementHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	details, err := h.userService.GetUser(id)
	if err != nil {
		h.mapUserError(c, err)
		return
	}

	response.OK(c, gin.H{
		"user":          details.User,
		"recent_scores": details.RecentScores,
		"payments":      details.Payments,
		"stats":         details.Stats,
	})
}

func (h *UserManagementHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(id, &req)
	if err != nil {
		h.mapUserError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

type toggleActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *UserManagementHandler) ToggleUserStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req toggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userService.ToggleActive(id, *req.IsActive)
	if err != nil {
		h.mapUserError(c, err)
		return
	}

	message := "User deactivated successfully"
	if user.IsActive {
		message = "User activated successfully"
	}
	response.OK(c, gin.H{
		"message": message,
		"user":    user,
	})
}

func (h *UserManagementHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	permanently := c.Query("permanently") == "true"

	if err := h.userService.DeleteUser(id, permanently); err != nil {
		h.mapUserError(c, err)
		return
	}

	if permanently {
		response.OK(c, gin.H{"message": "User and all associated data deleted permanently"})
		return
	}
	response.OK(c, gin.H{"message": "User deactivated successfully"})
}

type resetGamesRequest struct {
	NewCount int `json:"new_count" binding:"omitempty,min=0"`
}

func (h *UserManagementHandler) ResetUserGames(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req resetGamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userService.ResetGames(id, req.NewCount)
	if err != nil {
		h.mapUserError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "User games count reset successfully",
		"user":    user,
	})
}
