package task

import "time"

// Viewer is the slice of the caller's identity the visibility rules need.
type Viewer struct {
	Email      string
	Department string
	Admin      bool
}

// VisibleTo decides whether a task is shown to a viewer. Admins see
// everything; unknown assignment types are hidden (fail closed).
func VisibleTo(t Task, viewer Viewer) bool {
	if viewer.Admin {
		return true
	}

	switch t.AssignmentType {
	case AssignmentAll:
		return true
	case AssignmentDepartment:
		return t.TargetDepartment != "" && t.TargetDepartment == viewer.Department
	case AssignmentSpecific:
		return t.TargetUsers.Contains(viewer.Email)
	default:
		return false
	}
}

// CanTransition encodes the task state machine: pending -> in-progress
// -> completed, with completed terminal. Reverting to pending is an
// admin correction allowed from any state.
func CanTransition(from, to string) bool {
	switch to {
	case StatusPending:
		return true
	case StatusInProgress:
		return from == StatusPending
	case StatusCompleted:
		return from == StatusPending || from == StatusInProgress
	default:
		return false
	}
}

// IsOverdue derives lateness from the due date and clock; never stored.
// A blank due time means the task is due until end of day.
func IsOverdue(t Task, now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}
	if t.DueDate.IsZero() {
		return false
	}

	dueTime := t.DueTime
	if dueTime == "" {
		dueTime = "23:59"
	}
	parsed, err := time.Parse("15:04", dueTime)
	if err != nil {
		parsed, _ = time.Parse("15:04", "23:59")
	}

	deadline := time.Date(
		t.DueDate.Year(), t.DueDate.Month(), t.DueDate.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location(),
	)

	return now.After(deadline)
}

func validPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func validAssignmentType(t string) bool {
	switch t {
	case AssignmentAll, AssignmentDepartment, AssignmentSpecific:
		return true
	default:
		return false
	}
}
