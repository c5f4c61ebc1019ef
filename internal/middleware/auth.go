package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/vidyavichar/server/internal/models"
	"github.com/vidyavichar/server/pkg/auth"
)

const PrincipalKey = "principal"

// resolvePrincipal verifies a credential against the JWT manager and
// the redis blacklist, yielding the principal it carries.
func resolvePrincipal(jwtManager *auth.JWTManager, redisClient *redis.Client, token string) (models.Principal, bool) {
	exists, err := redisClient.Exists(context.Background(), "blacklist:"+token).Result()
	if err != nil || exists > 0 {
		return models.Principal{}, false
	}

	claims, err := jwtManager.Verify(token)
	if err != nil {
		return models.Principal{}, false
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return models.Principal{}, false
	}

	role := models.Role(claims.Role)
	if !models.ValidRole(role) {
		return models.Principal{}, false
	}

	return models.Principal{ID: userID, Username: claims.Username, Role: role}, true
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	if token, err := auth.ExtractTokenFromHeader(c.Request); err == nil {
		return token
	}
	return ""
}

// AuthMiddleware guards REST routes. The credential comes from the
// token cookie or a bearer header.
func AuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "missing or invalid token"})
			c.Abort()
			return
		}

		principal, ok := resolvePrincipal(jwtManager, redisClient, token)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			c.Abort()
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// WSAuthMiddleware authorizes the websocket handshake. The credential
// may arrive as a query parameter, a bearer header, or the cookie. A
// bad credential rejects the connection before the upgrade.
func WSAuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					token = parts[1]
				}
			}
		}
		if token == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				token = cookie
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			c.Abort()
			return
		}

		principal, ok := resolvePrincipal(jwtManager, redisClient, token)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			c.Abort()
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// RequireRole rejects principals whose role is not in the allowed set.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := c.MustGet(PrincipalKey).(models.Principal)
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"message": "operation not allowed for this role"})
		c.Abort()
	}
}
