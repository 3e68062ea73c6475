package handlers

import (
	"lexitrivia/response"
	"lexitrivia/services"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	settings, err := h.settingsService.GetSettings(userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"settings": settings})
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	settings, err := h.settingsService.UpdateSettings(userID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message":  "Settings updated successfully",
		"settings": settings,
	})
}
