package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blucialabs/backend/internal/handlers"
)

type UserRoutes struct {
	handler *handlers.UserHandler
}

func NewUserRoutes(handler *handlers.UserHandler) *UserRoutes {
	return &UserRoutes{handler: handler}
}

func (r *UserRoutes) Register(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	users := router.Group("/users")
	users.Use(authenticate)
	{
		users.GET("/profile", r.handler.GetProfile)
		users.PUT("/profile", r.handler.UpdateProfile)
	}
}
