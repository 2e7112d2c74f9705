package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/middlewares"
	"github.com/blucialabs/backend/internal/responses"
	"github.com/blucialabs/backend/internal/services"
	"github.com/blucialabs/backend/internal/utils"
)

type RequestHandler struct {
	requestService *services.RequestService
}

func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// List handles GET /api/requests: the caller's own requests, newest first.
func (h *RequestHandler) List(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		responses.Error(c, apperrors.Unauthenticated("Authentication required"))
		return
	}

	requests, err := h.requestService.ListForUser(c.Request.Context(), callerID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// Create handles POST /api/requests. Any userId in the payload is ignored;
// the input struct has no such field and ownership comes from the token.
func (h *RequestHandler) Create(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		responses.Error(c, apperrors.Unauthenticated("Authentication required"))
		return
	}

	var input services.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		responses.Error(c, apperrors.Validation("Invalid request body"))
		return
	}

	request, err := h.requestService.Create(c.Request.Context(), callerID, &input)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service request submitted successfully. A confirmation email has been sent.",
		"request": request,
	})
}

// Get handles GET /api/requests/:id. An id belonging to someone else looks
// exactly like a missing one.
func (h *RequestHandler) Get(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		responses.Error(c, apperrors.Unauthenticated("Authentication required"))
		return
	}

	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Error(c, apperrors.NotFound("Request not found"))
		return
	}

	request, err := h.requestService.GetForUser(c.Request.Context(), callerID, id)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}
