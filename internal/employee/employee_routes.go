package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("/me",
			middleware.RateLimitByUser(5, 20),
			handler.Me,
		)

		employees.GET("/stats",
			middleware.RateLimitByUser(5, 20),
			handler.Stats,
		)

		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.AdminOnly(provider),
			handler.GetAll,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.AdminOnly(provider),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.AdminOnly(provider),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.AdminOnly(provider),
			handler.Update,
		)

		employees.PUT("/:id/skills",
			middleware.RateLimitByUser(0.5, 2),
			middleware.AdminOnly(provider),
			handler.UpdateSkills,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.AdminOnly(provider),
			handler.Delete,
		)
	}
}
