package middleware

import (
	"net/http"
	"strconv"

	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

// MembershipChecker provides middleware that resolves a URL resource to its
// owning organization and rejects callers who are not members. Handlers
// behind these gates can trust "org_id" in the context.
type MembershipChecker struct {
	orgs     *repository.OrgRepository
	projects *repository.ProjectRepository
	sections *repository.SectionRepository
	tasks    *repository.TaskRepository
}

func NewMembershipChecker(
	orgs *repository.OrgRepository,
	projects *repository.ProjectRepository,
	sections *repository.SectionRepository,
	tasks *repository.TaskRepository,
) *MembershipChecker {
	return &MembershipChecker{
		orgs:     orgs,
		projects: projects,
		sections: sections,
		tasks:    tasks,
	}
}

// RequireOrgMember expects the organization ID in URL param "id".
func (mc *MembershipChecker) RequireOrgMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID, ok := paramID(c)
		if !ok {
			return
		}

		if _, err := mc.orgs.GetByID(c.Request.Context(), orgID); err != nil {
			notFound(c, "Organization not found")
			return
		}
		mc.gate(c, orgID)
	}
}

// RequireProjectMember expects the project ID in URL param "id".
func (mc *MembershipChecker) RequireProjectMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := paramID(c)
		if !ok {
			return
		}

		project, err := mc.projects.GetByID(c.Request.Context(), projectID)
		if err != nil {
			notFound(c, "Project not found")
			return
		}

		c.Set("project_id", project.ID)
		mc.gate(c, project.OrganizationID)
	}
}

// RequireSectionMember expects the section ID in URL param "id".
func (mc *MembershipChecker) RequireSectionMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		sectionID, ok := paramID(c)
		if !ok {
			return
		}

		section, err := mc.sections.GetByID(c.Request.Context(), sectionID)
		if err != nil {
			notFound(c, "Section not found")
			return
		}
		project, err := mc.projects.GetByID(c.Request.Context(), section.ProjectID)
		if err != nil {
			notFound(c, "Project not found")
			return
		}

		c.Set("section_id", section.ID)
		mc.gate(c, project.OrganizationID)
	}
}

// RequireTaskMember expects the task ID in URL param "id".
func (mc *MembershipChecker) RequireTaskMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, ok := paramID(c)
		if !ok {
			return
		}

		task, err := mc.tasks.GetByID(c.Request.Context(), taskID)
		if err != nil {
			notFound(c, "Task not found")
			return
		}
		project, err := mc.projects.GetByID(c.Request.Context(), task.ProjectID)
		if err != nil {
			notFound(c, "Project not found")
			return
		}

		c.Set("task_id", task.ID)
		c.Set("project_id", project.ID)
		mc.gate(c, project.OrganizationID)
	}
}

// gate checks membership and aborts with 403 on a miss; an unaborted request
// continues down the chain.
func (mc *MembershipChecker) gate(c *gin.Context, orgID int64) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"},
		})
		return
	}

	member, err := mc.orgs.IsMember(c.Request.Context(), userID, orgID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL_ERROR", "message": "Membership lookup failed"},
		})
		return
	}
	if !member {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   gin.H{"code": "NOT_A_MEMBER", "message": "You are not a member of this organization"},
		})
		return
	}

	c.Set("org_id", orgID)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   gin.H{"code": "INVALID_ID", "message": "Invalid resource ID"},
		})
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   gin.H{"code": "NOT_FOUND", "message": message},
	})
}
