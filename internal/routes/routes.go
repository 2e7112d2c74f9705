package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blucialabs/backend/internal/handlers"
	"github.com/blucialabs/backend/internal/middlewares"
)

// RegisterRoutes wires the whole REST surface under /api. The auth
// middleware is built once from the JWT secret and shared by every
// protected group.
func RegisterRoutes(
	router *gin.Engine,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	googleHandler *handlers.GoogleAuthHandler,
	userHandler *handlers.UserHandler,
	requestHandler *handlers.RequestHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := router.Group("/api")
	authenticate := middlewares.Authenticate(jwtSecret)

	NewAuthRoutes(authHandler, googleHandler).Register(api, authenticate)
	NewUserRoutes(userHandler).Register(api, authenticate)
	NewRequestRoutes(requestHandler).Register(api, authenticate)
	NewAdminRoutes(adminHandler).Register(api, authenticate)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
