package org

import (
	"errors"
	"net/http"

	"taskboard/internal/middleware"
	"taskboard/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, mc *middleware.MembershipChecker) {
	orgGroup := protected.Group("/orgs")
	{
		orgGroup.POST("", h.Create)
		orgGroup.GET("/:id", mc.RequireOrgMember(), h.Get)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	userID := c.GetInt64("user_id")

	org, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Error(c, http.StatusConflict, "SLUG_TAKEN", "Organization slug already taken")
			return
		}
		response.Error(c, http.StatusInternalServerError, "ORG_CREATE_FAILED", "Failed to create organization")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"organization": org})
}

func (h *Handler) Get(c *gin.Context) {
	orgID := c.GetInt64("org_id")

	details, err := h.service.Get(c.Request.Context(), orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Organization not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "ORG_FETCH_FAILED", "Failed to fetch organization")
		return
	}

	response.Success(c, http.StatusOK, details)
}
