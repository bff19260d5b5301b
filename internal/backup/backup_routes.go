package backup

import (
	"skillboard/internal/identity"
	"skillboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	provider identity.Provider,
	logger *zap.Logger,
) {
	group := r.Group("/backup")
	group.Use(middleware.AuthMiddleware())
	group.Use(middleware.ContextLogger(logger))
	group.Use(middleware.AdminOnly(provider))
	{
		group.GET("/export",
			middleware.RateLimitByUser(0.2, 1),
			handler.Export,
		)

		group.POST("/import",
			middleware.RateLimitByUser(0.1, 1),
			handler.Import,
		)
	}
}
