package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/pace-analyzer/internal/middleware"
	"github.com/jengzang/pace-analyzer/internal/models"
	"github.com/jengzang/pace-analyzer/internal/service"
	"github.com/jengzang/pace-analyzer/pkg/response"
)

// ProfileHandler handles HTTP requests for the runner profile
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.InternalError(c, "Failed to get profile", err)
		return
	}
	response.Success(c, p)
}

// UpdateProfile handles PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var p models.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "Invalid profile", err)
		return
	}
	p.UserID = middleware.GetUserID(c)

	if err := h.service.Save(c.Request.Context(), &p); err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			response.BadRequest(c, "Invalid profile", err)
			return
		}
		response.InternalError(c, "Failed to save profile", err)
		return
	}
	response.Success(c, p)
}
