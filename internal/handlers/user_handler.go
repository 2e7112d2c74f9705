package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/middlewares"
	"github.com/blucialabs/backend/internal/models"
	"github.com/blucialabs/backend/internal/responses"
	"github.com/blucialabs/backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile handles GET /api/users/profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		responses.Error(c, apperrors.Unauthenticated("Authentication required"))
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), callerID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile handles PUT /api/users/profile. Absent JSON keys stay nil
// in the patch and are left unchanged.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		responses.Error(c, apperrors.Unauthenticated("Authentication required"))
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, apperrors.Validation("Invalid request body"))
		return
	}

	patch := &models.ProfilePatch{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), callerID, patch)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
