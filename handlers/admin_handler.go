package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lexitrivia/models"
	"lexitrivia/response"
	"lexitrivia/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req services.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	admin, token, err := h.adminService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "Admin login successful",
		"token":   token,
		"admin":   admin,
	})
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req services.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	admin, err := h.adminService.CreateAdmin(&req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUsername) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.FromError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "Admin created successfully",
		"admin":   admin,
	})
}

func (h *AdminHandler) GetProfile(c *gin.Context) {
	value, exists := c.Get("admin")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "Admin not authenticated")
		return
	}

	response.OK(c, gin.H{"admin": value.(*models.Admin)})
}

func (h *AdminHandler) ListAdmins(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")

	admins, pagination, err := h.adminService.ListAdmins(page, limit, search)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"admins":     admins,
		"pagination": pagination,
	})
}

func (h *AdminHandler) DeactivateAdmin(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid admin ID")
		return
	}

	actingAdminID := c.MustGet("admin_id").(uint)

	admin, err := h.adminService.DeactivateAdmin(uint(id), actingAdminID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfDeactivate):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrAdminNotFound):
			response.Error(c, http.StatusNotFound, "Admin not found")
		default:
			response.FromError(c, err)
		}
		return
	}

	response.OK(c, gin.H{
		"message": "Admin deactivated successfully",
		"admin":   admin,
	})
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats()
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"stats": stats})
}
