package task

import (
	"time"

	"skillboard/internal/shared/dbtype"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	AssignmentAll        = "all"
	AssignmentDepartment = "department"
	AssignmentSpecific   = "specific"
)

const (
	ScheduleImmediate = "immediate"
	ScheduleScheduled = "scheduled"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Priority    string    `gorm:"type:varchar(10);not null;default:'medium'"`
	DueDate     time.Time `gorm:"type:date"`
	DueTime     string    `gorm:"type:varchar(5)"` // HH:MM, blank means end of day

	AssignmentType   string            `gorm:"type:varchar(20);not null"`
	TargetDepartment string            `gorm:"index"`
	TargetUsers      dbtype.StringList `gorm:"type:jsonb"`

	Status       string            `gorm:"type:varchar(20);not null;default:'pending';index"`
	Participants dbtype.StringList `gorm:"type:jsonb"`
	CompletedBy  string
	CompletedAt  *time.Time
	Notes        string `gorm:"type:text"`

	// ScheduleType only affects the recorded timestamps, never visibility
	ScheduleType string `gorm:"type:varchar(10);not null;default:'immediate'"`
	ScheduledFor *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
