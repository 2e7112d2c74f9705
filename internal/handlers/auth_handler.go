package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/middlewares"
	"github.com/blucialabs/backend/internal/responses"
	"github.com/blucialabs/backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, apperrors.Validation("Invalid request body"))
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Name, req.Username, req.Email, req.Password)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully. Please check your email for a welcome message.",
		"token":   token,
		"user":    user,
	})
}

// Login handles POST /api/auth/login. The identifier may be an email or a
// username.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, apperrors.Validation("Invalid request body"))
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		responses.Error(c, apperrors.Unauthenticated("Authentication required"))
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), callerID)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
