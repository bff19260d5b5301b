package app

import (
	"database/sql"

	"skillboard/internal/backup"
	"skillboard/internal/employee"
	"skillboard/internal/event"
	"skillboard/internal/history"
	"skillboard/internal/identity"
	"skillboard/internal/messaging/kafka"
	"skillboard/internal/shared/counter"
	"skillboard/internal/task"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	provider identity.Provider,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	eventRepo := event.NewRepository(gormDB)
	historyRepo := history.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb, logger)
	taskService := task.NewServiceWithOutbox(db, taskRepo, outboxRepo, logger)
	eventService := event.NewService(db, eventRepo, employeeService, event.DefaultOptions(), logger)
	historyService := history.NewService(db, historyRepo, logger)
	backupService := backup.NewService(employeeService, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, provider, logger)
	taskHandler := task.NewHandler(taskService, provider, logger)
	eventHandler := event.NewHandler(eventService, logger)
	historyHandler := history.NewHandler(historyService, provider, logger)
	backupHandler := backup.NewHandler(backupService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, provider, logger)
		task.RegisterRoutes(api, taskHandler, provider, logger)
		event.RegisterRoutes(api, eventHandler, provider, logger)
		history.RegisterRoutes(api, historyHandler, provider, logger)
		backup.RegisterRoutes(api, backupHandler, provider, logger)
	}

	return nil
}
