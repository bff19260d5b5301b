package history

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
	entries := r.Group("/history")
	entries.Use(middleware.AuthMiddleware())
	entries.Use(middleware.ContextLogger(logger))
	{
		entries.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		entries.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.AdminOnly(provider),
			handler.Create,
		)

		entries.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.AdminOnly(provider),
			handler.Update,
		)

		entries.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.AdminOnly(provider),
			handler.Delete,
		)
	}
}
