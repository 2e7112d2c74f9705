package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/models"
	"github.com/blucialabs/backend/internal/responses"
	"github.com/blucialabs/backend/internal/services"
	"github.com/blucialabs/backend/internal/utils"
)

// AdminHandler serves the staff console. Every route behind it is gated on
// role = admin by the router.
type AdminHandler struct {
	requestService *services.RequestService
}

func NewAdminHandler(requestService *services.RequestService) *AdminHandler {
	return &AdminHandler{requestService: requestService}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, recent, err := h.requestService.Stats(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":          stats,
		"recentRequests": recent,
	})
}

// Requests handles GET /api/admin/requests: every request joined with its
// owner's account name/email.
func (h *AdminHandler) Requests(c *gin.Context) {
	requests, err := h.requestService.ListAll(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// UpdateStatus handles PATCH /api/admin/requests/:id/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Error(c, apperrors.NotFound("Request not found"))
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, apperrors.Validation("Invalid status"))
		return
	}

	request, err := h.requestService.UpdateStatus(c.Request.Context(), id, models.Status(req.Status))
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated successfully",
		"request": request,
	})
}

// EmailClient handles POST /api/admin/requests/:id/email: a free-form
// message to the request's owner.
func (h *AdminHandler) EmailClient(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		responses.Error(c, apperrors.NotFound("Request not found"))
		return
	}

	var req struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, apperrors.Validation("Subject and message are required"))
		return
	}

	recipient, err := h.requestService.EmailClient(c.Request.Context(), id, req.Subject, req.Message)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Email sent successfully",
		"recipient": recipient,
	})
}
