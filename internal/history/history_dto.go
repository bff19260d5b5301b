package history

import (
	"time"

	"github.com/google/uuid"
)

type CreateHistoryRequest struct {
	EmployeeEmail string `json:"employee_email" binding:"required,email"`
	TaskTitle     string `json:"task_title" binding:"required"`
	Description   string `json:"description"`
	CompletedDate string `json:"completed_date" binding:"required"`
	CompletedTime string `json:"completed_time"`
	Notes         string `json:"notes"`
	Rating        int    `json:"rating" binding:"required"`
	Category      string `json:"category" binding:"required"`
}

type UpdateHistoryRequest struct {
	TaskTitle     string `json:"task_title" binding:"required"`
	Description   string `json:"description"`
	CompletedDate string `json:"completed_date" binding:"required"`
	CompletedTime string `json:"completed_time"`
	Notes         string `json:"notes"`
	Rating        int    `json:"rating" binding:"required"`
	Category      string `json:"category" binding:"required"`
}

// SystemEntryInput is what the task-completion consumer hands over.
type SystemEntryInput struct {
	TaskID        uuid.UUID
	EmployeeEmail string
	TaskTitle     string
	Description   string
	Notes         string
	CompletedAt   time.Time
}

type HistoryResponse struct {
	ID            string `json:"id"`
	TaskID        string `json:"task_id,omitempty"`
	EmployeeEmail string `json:"employee_email"`
	TaskTitle     string `json:"task_title"`
	Description   string `json:"description,omitempty"`
	CompletedDate string `json:"completed_date"`
	CompletedTime string `json:"completed_time,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Rating        int    `json:"rating"`
	Category      string `json:"category"`
	Source        string `json:"source"`
}

func mapToResponse(e HistoryEntry) HistoryResponse {
	resp := HistoryResponse{
		ID:            e.ID.String(),
		EmployeeEmail: e.EmployeeEmail,
		TaskTitle:     e.TaskTitle,
		Description:   e.Description,
		CompletedDate: e.CompletedDate.Format("2006-01-02"),
		CompletedTime: e.CompletedTime,
		Notes:         e.Notes,
		Rating:        e.Rating,
		Category:      e.Category,
		Source:        e.Source,
	}
	if e.TaskID != nil {
		resp.TaskID = e.TaskID.String()
	}
	return resp
}

func mapToListResponse(entries []HistoryEntry) []HistoryResponse {
	resp := make([]HistoryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp
}
