package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/blucialabs/backend/internal/apperrors"
	"github.com/blucialabs/backend/internal/models"
	"github.com/blucialabs/backend/internal/responses"
)

// RequireRoles composes on top of Authenticate: the role from the verified
// token must be one of the allowed set. No database round trip; the token
// is the authority for the 7 days it lives.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRole)
		if !exists {
			responses.AbortError(c, apperrors.Unauthenticated("Authentication required"))
			return
		}

		role, ok := value.(models.Role)
		if !ok || !role.Valid() {
			responses.AbortError(c, apperrors.Forbidden("Access denied"))
			return
		}

		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}

		responses.AbortError(c, apperrors.Forbidden("Admin access required"))
	}
}

// CallerID extracts the authenticated user id set by Authenticate.
func CallerID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
