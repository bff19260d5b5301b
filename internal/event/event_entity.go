package event

import (
	"time"

	"skillboard/internal/shared/dbtype"

	"github.com/google/uuid"
)

const (
	StatusUpcoming           = "upcoming"
	StatusCompleted          = "completed"
	StatusRegistrationClosed = "registration-closed"
)

// Event status is never persisted; it is always derived from Date
// against the clock so stored and computed values cannot drift.
type Event struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                 string    `gorm:"not null"`
	Date                 time.Time `gorm:"type:date;not null;index"`
	Time                 string    `gorm:"type:varchar(5)"` // HH:MM
	Location             string
	Description          string            `gorm:"type:text"`
	MaxParticipants      int               `gorm:"not null"`
	RegistrationDeadline *time.Time        `gorm:"type:date"`
	Participants         dbtype.StringList `gorm:"type:jsonb"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DerivedStatus computes the lifecycle state from the event date.
// registration-closed is a sub-state of upcoming.
func (e *Event) DerivedStatus(now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	eventDay := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, now.Location())

	if eventDay.Before(today) {
		return StatusCompleted
	}
	if e.RegistrationDeadline != nil {
		deadline := time.Date(
			e.RegistrationDeadline.Year(), e.RegistrationDeadline.Month(), e.RegistrationDeadline.Day(),
			0, 0, 0, 0, now.Location(),
		)
		if deadline.Before(today) {
			return StatusRegistrationClosed
		}
	}
	return StatusUpcoming
}

// RegistrationOpen reports whether new joins are still accepted.
func (e *Event) RegistrationOpen(now time.Time) bool {
	return e.DerivedStatus(now) == StatusUpcoming
}

// Full reports whether the capacity is exhausted.
func (e *Event) Full() bool {
	return len(e.Participants) >= e.MaxParticipants
}
