package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidyavichar/server/internal/database"
	"github.com/vidyavichar/server/internal/handlers/dto"
	"github.com/vidyavichar/server/internal/middleware"
	"github.com/vidyavichar/server/internal/models"
	"github.com/vidyavichar/server/pkg/auth"
)

const tokenCookieMaxAge = 30 * 24 * 60 * 60

type AuthHandler struct {
	db         *database.Database
	jwtManager *auth.JWTManager
	redis      *redis.Client
}

func NewAuthHandler(db *database.Database, jwtMgr *auth.JWTManager, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{db: db, jwtManager: jwtMgr, redis: rdb}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleStudent
	}
	if !models.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown role"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "cannot hash password"})
		return
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := h.db.SaveUser(user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "user already exists"})
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String(), user.Username, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not generate token"})
		return
	}

	c.SetCookie("token", token, tokenCookieMaxAge, "/", "", false, false)
	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"token":    token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.db.FindUserByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String(), user.Username, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not generate token"})
		return
	}

	c.SetCookie("token", token, tokenCookieMaxAge, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"token":    token,
	})
}

// Logout blacklists the token in redis until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := c.Cookie("token")
	if err != nil || rawToken == "" {
		if rawToken, err = auth.ExtractTokenFromHeader(c.Request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	ttl := time.Until(exp)
	if err := h.redis.Set(context.Background(), "blacklist:"+rawToken, 1, ttl).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not revoke token"})
		return
	}

	c.SetCookie("token", "", -1, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	principal := c.MustGet(middleware.PrincipalKey).(models.Principal)
	c.JSON(http.StatusOK, principal)
}
