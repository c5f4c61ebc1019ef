package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vidyavichar/server/internal/models"
)

func principalContext(role models.Role) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/questions", nil)
	c.Set(PrincipalKey, models.Principal{ID: uuid.New(), Username: "someone", Role: role})
	return c, w
}

func TestRequireRoleAllows(t *testing.T) {
	c, w := principalContext(models.RoleFaculty)

	RequireRole(models.RoleFaculty, models.RoleTA)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRejects(t *testing.T) {
	c, w := principalContext(models.RoleStudent)

	RequireRole(models.RoleFaculty)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}
