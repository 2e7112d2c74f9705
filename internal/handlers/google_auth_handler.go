package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/blucialabs/backend/internal/mailer"
	"github.com/blucialabs/backend/internal/services"
	"github.com/blucialabs/backend/internal/utils"
)

const oauthStateCookie = "oauth_state"

// GoogleAuthHandler drives the browser OAuth dance. When oauthConfig is nil
// the feature is off: /google/enabled says so and the entry points answer
// 400 instead of redirecting anywhere.
type GoogleAuthHandler struct {
	googleAuthService *services.GoogleAuthService
	oauthConfig       *oauth2.Config
	dispatcher        mailer.Dispatcher
	jwtSecret         []byte
	frontendURL       string
	logger            *zap.Logger
}

func NewGoogleAuthHandler(
	googleAuthService *services.GoogleAuthService,
	oauthConfig *oauth2.Config,
	dispatcher mailer.Dispatcher,
	jwtSecret []byte,
	frontendURL string,
	logger *zap.Logger,
) *GoogleAuthHandler {
	return &GoogleAuthHandler{
		googleAuthService: googleAuthService,
		oauthConfig:       oauthConfig,
		dispatcher:        dispatcher,
		jwtSecret:         jwtSecret,
		frontendURL:       frontendURL,
		logger:            logger,
	}
}

// Enabled handles GET /api/auth/google/enabled so the frontend can decide
// whether to render the Google button at all.
func (h *GoogleAuthHandler) Enabled(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"enabled": h.oauthConfig != nil})
}

// Login handles GET /api/auth/google: sets the CSRF state cookie and
// redirects to Google's consent screen.
func (h *GoogleAuthHandler) Login(c *gin.Context) {
	if h.oauthConfig == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Google OAuth is not configured. Please set up Google OAuth credentials in the backend .env file.",
		})
		return
	}

	state, err := utils.GenerateOauthState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to start Google sign-in"})
		return
	}
	c.SetCookie(oauthStateCookie, state, 3600, "/", "", false, true)

	c.Redirect(http.StatusTemporaryRedirect, h.oauthConfig.AuthCodeURL(state))
}

// Callback handles GET /api/auth/google/callback. Every failure lands the
// browser back on the login page; only a minted token reaches the frontend.
func (h *GoogleAuthHandler) Callback(c *gin.Context) {
	if h.oauthConfig == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Google OAuth is not configured. Please set up Google OAuth credentials in the backend .env file.",
		})
		return
	}

	queryState := c.Query("state")
	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || queryState == "" || queryState != cookieState {
		h.logger.Warn("google callback state mismatch")
		h.redirectWithError(c)
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		h.redirectWithError(c)
		return
	}

	token, err := h.oauthConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Warn("google token exchange failed", zap.Error(err))
		h.redirectWithError(c)
		return
	}

	profile, err := h.googleAuthService.FetchProfile(c.Request.Context(), token)
	if err != nil {
		h.logger.Warn("google userinfo fetch failed", zap.Error(err))
		h.redirectWithError(c)
		return
	}

	user, created, err := h.googleAuthService.Resolve(c.Request.Context(), profile)
	if err != nil {
		h.logger.Error("google sign-in failed", zap.Error(err))
		h.redirectWithError(c)
		return
	}

	jwtToken, err := utils.GenerateJWT(user.ID, user.Role, h.jwtSecret)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		h.redirectWithError(c)
		return
	}

	// Welcome email only on the account's very first sign-in.
	if created {
		h.dispatcher.Dispatch(mailer.Welcome(user.Email, user.Name, h.frontendURL))
	}

	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/auth/callback?token="+jwtToken)
}

func (h *GoogleAuthHandler) redirectWithError(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/login?error=oauth_failed")
}
