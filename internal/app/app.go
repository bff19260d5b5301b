package app

import (
	"os"

	"skillboard/internal/identity"
	"skillboard/internal/middleware"
	"skillboard/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects infrastructure, migrates the schema and registers
// every feature module on the router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L()

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	if err := autoMigrate(gormDB, sqlDB); err != nil {
		return err
	}

	provider := identity.NewProvider(os.Getenv("ADMIN_EMAIL"))

	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(10, 30))

	return registerModules(router, sqlDB, gormDB, rdb, provider, logger)
}
