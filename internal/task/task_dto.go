package task

import "time"

type CreateTaskRequest struct {
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description"`
	Priority         string   `json:"priority" binding:"required"`
	DueDate          string   `json:"due_date" binding:"required"`
	DueTime          string   `json:"due_time"`
	AssignmentType   string   `json:"assignment_type" binding:"required"`
	TargetDepartment string   `json:"target_department"`
	TargetUsers      []string `json:"target_users"`
	ScheduleType     string   `json:"schedule_type"`
	ScheduledFor     string   `json:"scheduled_for"`
}

type UpdateTaskRequest struct {
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description"`
	Priority         string   `json:"priority" binding:"required"`
	DueDate          string   `json:"due_date" binding:"required"`
	DueTime          string   `json:"due_time"`
	AssignmentType   string   `json:"assignment_type" binding:"required"`
	TargetDepartment string   `json:"target_department"`
	TargetUsers      []string `json:"target_users"`
}

type CompleteTaskRequest struct {
	Notes string `json:"notes"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TaskResponse struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Priority         string   `json:"priority"`
	DueDate          string   `json:"due_date"`
	DueTime          string   `json:"due_time,omitempty"`
	AssignmentType   string   `json:"assignment_type"`
	TargetDepartment string   `json:"target_department,omitempty"`
	TargetUsers      []string `json:"target_users,omitempty"`
	Status           string   `json:"status"`
	Participants     []string `json:"participants"`
	CompletedBy      string   `json:"completed_by,omitempty"`
	CompletedAt      *string  `json:"completed_at,omitempty"`
	Notes            string   `json:"notes,omitempty"`
	ScheduleType     string   `json:"schedule_type"`
	ScheduledFor     *string  `json:"scheduled_for,omitempty"`
	Overdue          bool     `json:"overdue"`
}

func mapToResponse(t Task, now time.Time) TaskResponse {
	resp := TaskResponse{
		ID:               t.ID.String(),
		Title:            t.Title,
		Description:      t.Description,
		Priority:         t.Priority,
		DueDate:          t.DueDate.Format("2006-01-02"),
		DueTime:          t.DueTime,
		AssignmentType:   t.AssignmentType,
		TargetDepartment: t.TargetDepartment,
		TargetUsers:      t.TargetUsers,
		Status:           t.Status,
		Participants:     t.Participants,
		CompletedBy:      t.CompletedBy,
		Notes:            t.Notes,
		ScheduleType:     t.ScheduleType,
		Overdue:          IsOverdue(t, now),
	}
	if resp.Participants == nil {
		resp.Participants = []string{}
	}
	if t.CompletedAt != nil {
		v := t.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &v
	}
	if t.ScheduledFor != nil {
		v := t.ScheduledFor.Format(time.RFC3339)
		resp.ScheduledFor = &v
	}
	return resp
}

func mapToListResponse(tasks []Task, now time.Time) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = mapToResponse(t, now)
	}
	return resp
}
