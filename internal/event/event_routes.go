package event

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
	events := r.Group("/events")
	events.Use(middleware.AuthMiddleware())
	events.Use(middleware.ContextLogger(logger))
	{
		events.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		events.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetById,
		)

		events.POST("/:id/join",
			middleware.RateLimitByUser(1, 3),
			handler.Join,
		)

		events.POST("/:id/leave",
			middleware.RateLimitByUser(1, 3),
			handler.Leave,
		)

		events.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.AdminOnly(provider),
			handler.Create,
		)

		events.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.AdminOnly(provider),
			handler.Update,
		)

		events.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.AdminOnly(provider),
			handler.Delete,
		)
	}
}
