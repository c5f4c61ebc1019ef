package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/vidyavichar/server/internal/handlers"
	"github.com/vidyavichar/server/internal/middleware"
	"github.com/vidyavichar/server/internal/models"
	jwtauth "github.com/vidyavichar/server/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *jwtauth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	roomH *handlers.RoomHandler,
	questionH *handlers.QuestionHandler,
	wsH *handlers.WebSocketHandler,
) {
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "VidyaVichar API running")
	})

	authLimiter := middleware.NewIPRateLimiter(10, 5, 5*time.Minute)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", middleware.RateLimitByIP(authLimiter), authH.Signup)
		auth.POST("/login", middleware.RateLimitByIP(authLimiter), authH.Login)
		auth.POST("/logout", authH.Logout)
		auth.GET("/me", middleware.AuthMiddleware(jwtMgr, rdb), authH.Me)
	}

	protected := r.Group("/", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		rooms := protected.Group("/rooms")
		{
			rooms.POST("/create",
				middleware.RateLimitByIP(authLimiter),
				middleware.RequireRole(models.RoleFaculty),
				roomH.CreateRoom)
			rooms.POST("/join", roomH.JoinRoom)
			rooms.GET("/show", roomH.ShowRoom)
		}

		questions := protected.Group("/questions")
		{
			questions.POST("", middleware.RequireRole(models.RoleStudent), questionH.Create)
			questions.GET("", questionH.List)
			questions.PATCH("/:id", middleware.RequireRole(models.RoleFaculty, models.RoleTA), questionH.Update)
			questions.PATCH("/:id/answer", middleware.RequireRole(models.RoleFaculty, models.RoleTA), questionH.Answer)
			questions.DELETE("/:id", middleware.RequireRole(models.RoleFaculty), questionH.Delete)
			questions.DELETE("", middleware.RequireRole(models.RoleFaculty), questionH.Clear)
		}
	}

	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
