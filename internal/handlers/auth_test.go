package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyavichar/server/pkg/auth"
)

func TestLogoutFailsWhenBlacklistUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	jwtMgr := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtMgr.Generate(uuid.NewString(), "alice", "student")
	require.NoError(t, err)

	// nothing listens here, so every command fails
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	h := NewAuthHandler(nil, jwtMgr, rdb)

	router := gin.New()
	router.POST("/auth/logout", h.Logout)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "could not revoke token")
}
