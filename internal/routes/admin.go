package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blucialabs/backend/internal/handlers"
	"github.com/blucialabs/backend/internal/middlewares"
	"github.com/blucialabs/backend/internal/models"
)

type AdminRoutes struct {
	handler *handlers.AdminHandler
}

func NewAdminRoutes(handler *handlers.AdminHandler) *AdminRoutes {
	return &AdminRoutes{handler: handler}
}

func (r *AdminRoutes) Register(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	admin := router.Group("/admin")
	admin.Use(authenticate, middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/stats", r.handler.Stats)
		admin.GET("/requests", r.handler.Requests)
		admin.PATCH("/requests/:id/status", r.handler.UpdateStatus)
		admin.POST("/requests/:id/email", r.handler.EmailClient)
	}
}
