package project

import (
	"net/http"

	"taskboard/internal/middleware"
	"taskboard/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes hang off /orgs/:id so the org membership gate resolves the owner.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, mc *middleware.MembershipChecker) {
	group := protected.Group("/orgs/:id/projects", mc.RequireOrgMember())
	{
		group.GET("", h.List)
		group.POST("", h.Create)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	orgID := c.GetInt64("org_id")

	p, err := h.service.Create(c.Request.Context(), orgID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PROJECT_CREATE_FAILED", "Failed to create project")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"project": p})
}

func (h *Handler) List(c *gin.Context) {
	orgID := c.GetInt64("org_id")

	projects, err := h.service.List(c.Request.Context(), orgID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PROJECT_LIST_FAILED", "Failed to list projects")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"projects": projects})
}
