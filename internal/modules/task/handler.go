package task

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
	taskList := protected.Group("/projects/:id/tasks", mc.RequireProjectMember())
	{
		taskList.GET("", h.List)
		taskList.POST("", h.Create)
	}

	protected.PATCH("/tasks/:id", mc.RequireTaskMember(), h.Update)
	protected.DELETE("/tasks/:id", mc.RequireTaskMember(), h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	orgID := c.GetInt64("org_id")
	projectID := c.GetInt64("project_id")

	t, err := h.service.Create(c.Request.Context(), orgID, projectID, req)
	if err != nil {
		h.writeError(c, err, "TASK_CREATE_FAILED", "Failed to create task")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"task": t})
}

func (h *Handler) List(c *gin.Context) {
	projectID := c.GetInt64("project_id")

	tasks, err := h.service.List(c.Request.Context(), projectID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "TASK_LIST_FAILED", "Failed to list tasks")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	orgID := c.GetInt64("org_id")
	taskID := c.GetInt64("task_id")

	t, err := h.service.Update(c.Request.Context(), orgID, taskID, req)
	if err != nil {
		h.writeError(c, err, "TASK_UPDATE_FAILED", "Failed to update task")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"task": t})
}

func (h *Handler) Delete(c *gin.Context) {
	orgID := c.GetInt64("org_id")
	taskID := c.GetInt64("task_id")

	if err := h.service.Delete(c.Request.Context(), orgID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "TASK_DELETE_FAILED", "Failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	switch {
	case errors.Is(err, ErrAssigneeNotMember):
		response.Error(c, http.StatusBadRequest, "ASSIGNEE_NOT_MEMBER", "Assignee must be a member of the organization")
	case errors.Is(err, ErrSectionNotInProject):
		response.Error(c, http.StatusBadRequest, "SECTION_NOT_IN_PROJECT", "Section does not belong to this project")
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
	default:
		response.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMsg)
	}
}
