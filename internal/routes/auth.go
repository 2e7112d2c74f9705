package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blucialabs/backend/internal/handlers"
)

type AuthRoutes struct {
	handler *handlers.AuthHandler
	google  *handlers.GoogleAuthHandler
}

func NewAuthRoutes(handler *handlers.AuthHandler, google *handlers.GoogleAuthHandler) *AuthRoutes {
	return &AuthRoutes{handler: handler, google: google}
}

func (r *AuthRoutes) Register(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		// Public routes
		auth.POST("/register", r.handler.Register)
		auth.POST("/login", r.handler.Login)

		// Google OAuth; /google/enabled must come before the flow routes
		auth.GET("/google/enabled", r.google.Enabled)
		auth.GET("/google", r.google.Login)
		auth.GET("/google/callback", r.google.Callback)

		// Protected
		auth.GET("/me", authenticate, r.handler.Me)
	}
}
