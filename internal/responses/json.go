package responses

import (
	"github.com/gin-gonic/gin"

	"github.com/blucialabs/backend/internal/apperrors"
)

// The API speaks the original frontend's dialect: plain objects with a
// "message" field for outcomes and whatever extra keys the endpoint owns.

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// Error translates a service error into the status/message pair the client
// may see. Internal detail stays out of the response body.
func Error(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{"message": apperrors.Message(err)})
}

// AbortError is Error for middleware, stopping the handler chain.
func AbortError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"message": apperrors.Message(err)})
}
