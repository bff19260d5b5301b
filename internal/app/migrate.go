package app

import (
	"database/sql"

	"skillboard/internal/employee"
	"skillboard/internal/event"
	"skillboard/internal/history"
	"skillboard/internal/task"

	"gorm.io/gorm"
)

// autoMigrate keeps the schema self-contained. The gorm entities
// migrate themselves; the raw-SQL tables (counters, outbox) get
// explicit DDL because no entity describes them.
func autoMigrate(gormDB *gorm.DB, sqlDB *sql.DB) error {
	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&task.Task{},
		&event.Event{},
		&history.HistoryEntry{},
	); err != nil {
		return err
	}

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS counters (
			counter_type TEXT PRIMARY KEY,
			last_value   BIGINT NOT NULL DEFAULT 0,
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS outbox_events (
			id             UUID PRIMARY KEY,
			request_id     TEXT,
			aggregate_type TEXT NOT NULL,
			aggregate_id   UUID NOT NULL,
			event_type     TEXT NOT NULL,
			topic          TEXT NOT NULL,
			payload        JSONB NOT NULL,
			status         TEXT NOT NULL DEFAULT 'pending',
			retry_count    INT NOT NULL DEFAULT 0,
			error_message  TEXT,
			next_retry_at  TIMESTAMPTZ,
			processed_at   TIMESTAMPTZ,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
			ON outbox_events (status, created_at)`,
	}
	for _, stmt := range ddl {
		if _, err := sqlDB.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
