package events

import "time"

const TaskCompletedTopic = "workforce.task.lifecycle.v1"

type TaskCompletedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	TaskID        string    `json:"task_id"`
	TaskTitle     string    `json:"task_title"`
	Description   string    `json:"description,omitempty"`
	EmployeeEmail string    `json:"employee_email"`
	Notes         string    `json:"notes,omitempty"`
	CompletedAt   time.Time `json:"completed_at"`
}
