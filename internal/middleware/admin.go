package middleware

import (
	"skillboard/internal/identity"
	"skillboard/internal/shared/apperror"
	"skillboard/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// AdminOnly rejects callers whose email is not the designated admin
// address. Must run after AuthMiddleware.
func AdminOnly(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("user_email")
		if !provider.IsAdmin(email) {
			e := apperror.ErrForbidden
			response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
