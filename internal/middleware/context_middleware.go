package middleware

import (
	"skillboard/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)

		email := c.GetString("user_email")

		// Scoped logger carrying the tracing metadata for this request
		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_email", email),
		)

		// Propagate through the standard context so services and repos
		// can pick it up without knowing about Gin
		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithUserEmail(ctx, email)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
