package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blucialabs/backend/internal/handlers"
)

type RequestRoutes struct {
	handler *handlers.RequestHandler
}

func NewRequestRoutes(handler *handlers.RequestHandler) *RequestRoutes {
	return &RequestRoutes{handler: handler}
}

func (r *RequestRoutes) Register(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	requests := router.Group("/requests")
	requests.Use(authenticate)
	{
		requests.GET("", r.handler.List)
		requests.POST("", r.handler.Create)
		requests.GET("/:id", r.handler.Get)
	}
}
