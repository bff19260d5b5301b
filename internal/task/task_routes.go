package task

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
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	tasks.Use(middleware.ContextLogger(logger))
	{
		tasks.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		tasks.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetById,
		)

		tasks.POST("/:id/accept",
			middleware.RateLimitByUser(1, 3),
			handler.Accept,
		)

		tasks.POST("/:id/complete",
			middleware.RateLimitByUser(1, 3),
			handler.Complete,
		)

		tasks.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.AdminOnly(provider),
			handler.Create,
		)

		tasks.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.AdminOnly(provider),
			handler.Update,
		)

		tasks.PUT("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			middleware.AdminOnly(provider),
			handler.SetStatus,
		)

		tasks.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.AdminOnly(provider),
			handler.Delete,
		)
	}
}
