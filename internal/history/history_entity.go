package history

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceSystem = "system"
	SourceManual = "manual"
)

const (
	CategoryTask     = "task"
	CategoryProject  = "project"
	CategoryTraining = "training"
	CategoryMeeting  = "meeting"
)

const (
	MinRating = 1
	MaxRating = 10
)

// HistoryEntry records one completed piece of work for an employee.
// System entries are written by the task-completion consumer and carry
// the originating task id; the unique index makes redelivered messages
// a no-op. Manual entries are entered by an admin and have no task id.
type HistoryEntry struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TaskID        *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	EmployeeEmail string     `gorm:"not null;index"`
	TaskTitle     string     `gorm:"not null"`
	Description   string     `gorm:"type:text"`
	CompletedDate time.Time  `gorm:"type:date;not null"`
	CompletedTime string     `gorm:"type:varchar(5)"` // HH:MM
	Notes         string     `gorm:"type:text"`
	Rating        int        `gorm:"not null;default:5"`
	Category      string     `gorm:"type:varchar(20);not null;default:'task'"`
	Source        string     `gorm:"type:varchar(10);not null;default:'manual'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func validCategory(c string) bool {
	switch c {
	case CategoryTask, CategoryProject, CategoryTraining, CategoryMeeting:
		return true
	}
	return false
}

func validRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
