package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/responses"
	"github.com/blucialabs/backend/internal/utils"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextUserID = "userId"
	ContextRole   = "userRole"
)

// Authenticate gates protected routes on a bearer token. A missing token is
// 401 ("log in"); a present but unverifiable token is 403 ("invalid or
// expired"). The frontend relies on that split to decide whether to
// re-prompt for credentials.
func Authenticate(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.AbortError(c, apperrors.Unauthenticated("Authentication required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			responses.AbortError(c, apperrors.Unauthenticated("Authentication required"))
			return
		}

		claims, err := utils.VerifyJWT(parts[1], jwtSecret)
		if err != nil {
			responses.AbortError(c, apperrors.Forbidden("Invalid or expired token"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}
