package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/database"
	"taskboard/internal/domain"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func membershipFixture(t *testing.T) (*gorm.DB, *MembershipChecker) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Organization{},
		&domain.Membership{},
		&domain.Project{},
		&domain.Section{},
		&domain.Task{},
	))

	orgs := repository.NewOrgRepository(db)
	mc := NewMembershipChecker(
		orgs,
		repository.NewProjectRepository(db),
		repository.NewSectionRepository(db),
		repository.NewTaskRepository(db),
	)

	member := &domain.User{Email: "member@x.com", PasswordHash: "x"}
	outsider := &domain.User{Email: "outsider@x.com", PasswordHash: "x"}
	require.NoError(t, db.Create(member).Error)
	require.NoError(t, db.Create(outsider).Error)

	org := &domain.Organization{Name: "Acme", Slug: "acme"}
	require.NoError(t, orgs.CreateWithAdmin(context.Background(), org, member.ID))

	return db, mc
}

func orgGateRouter(mc *MembershipChecker, userID int64) *gin.Engine {
	r := gin.New()
	r.GET("/orgs/:id", func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
	}, mc.RequireOrgMember(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"org_id": c.GetInt64("org_id")})
	})
	return r
}

func TestRequireOrgMember(t *testing.T) {
	_, mc := membershipFixture(t)

	t.Run("member passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		orgGateRouter(mc, 1).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orgs/1", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"org_id":1`)
	})

	t.Run("non-member rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		orgGateRouter(mc, 2).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orgs/1", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_A_MEMBER")
	})

	t.Run("missing org is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		orgGateRouter(mc, 1).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orgs/999", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unauthenticated rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		orgGateRouter(mc, 0).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orgs/1", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad id rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		orgGateRouter(mc, 1).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orgs/abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRequireTaskMember_ResolvesOwningOrg(t *testing.T) {
	db, mc := membershipFixture(t)

	project := &domain.Project{OrganizationID: 1, Title: "Launch"}
	require.NoError(t, db.Create(project).Error)
	section := &domain.Section{ProjectID: project.ID, Title: "Backlog"}
	require.NoError(t, db.Create(section).Error)
	task := &domain.Task{ProjectID: project.ID, SectionID: section.ID, Title: "Docs"}
	require.NoError(t, db.Create(task).Error)

	router := func(userID int64) *gin.Engine {
		r := gin.New()
		r.GET("/tasks/:id", func(c *gin.Context) {
			c.Set("user_id", userID)
		}, mc.RequireTaskMember(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"org_id":  c.GetInt64("org_id"),
				"task_id": c.GetInt64("task_id"),
			})
		})
		return r
	}

	w := httptest.NewRecorder()
	router(1).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"org_id":1`)

	w = httptest.NewRecorder()
	router(2).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/1", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router(1).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
