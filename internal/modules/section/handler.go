package section

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
	protected.POST("/projects/:id/sections", mc.RequireProjectMember(), h.Create)
	protected.PATCH("/sections/:id", mc.RequireSectionMember(), h.Update)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	projectID := c.GetInt64("project_id")

	sec, err := h.service.Create(c.Request.Context(), projectID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "SECTION_CREATE_FAILED", "Failed to create section")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"section": sec})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	sectionID := c.GetInt64("section_id")

	sec, err := h.service.Update(c.Request.Context(), sectionID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Section not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SECTION_UPDATE_FAILED", "Failed to update section")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"section": sec})
}
