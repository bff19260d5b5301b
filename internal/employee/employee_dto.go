package employee

import "skillboard/internal/scoring"

type SkillInput struct {
	Name  string `json:"name" binding:"required"`
	Score int    `json:"score"`
}

type CreateEmployeeRequest struct {
	EmployeeID     string       `json:"employee_id"` // auto-numbered when blank
	Name           string       `json:"name" binding:"required"`
	Email          string       `json:"email" binding:"required,email"`
	Position       string       `json:"position"`
	Department     string       `json:"department" binding:"required"`
	Phone          string       `json:"phone"`
	Manager        string       `json:"manager"`
	StartDate      string       `json:"start_date" binding:"required"`
	AttendanceRate int          `json:"attendance_rate"`
	Status         string       `json:"status"`
	Skills         []SkillInput `json:"skills"` // blank means default taxonomy at 50
	Rewards        string       `json:"rewards"`
}

type UpdateEmployeeRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Position       string `json:"position"`
	Department     string `json:"department" binding:"required"`
	Phone          string `json:"phone"`
	Manager        string `json:"manager"`
	StartDate      string `json:"start_date" binding:"required"`
	AttendanceRate int    `json:"attendance_rate"`
	Status         string `json:"status"`
	Rewards        string `json:"rewards"`
}

type UpdateSkillsRequest struct {
	Skills []SkillInput `json:"skills" binding:"required"`
}

type SkillResponse struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Level int    `json:"level"`
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Position       string          `json:"position"`
	Department     string          `json:"department"`
	Phone          string          `json:"phone"`
	Manager        string          `json:"manager"`
	StartDate      string          `json:"start_date"`
	AttendanceRate int             `json:"attendance_rate"`
	TasksCompleted int             `json:"tasks_completed"`
	EventsJoined   int             `json:"events_joined"`
	Status         string          `json:"status"`
	Skills         []SkillResponse `json:"skills"`
	Rewards        string          `json:"rewards,omitempty"`
	TotalScore     int             `json:"total_score"`
	AverageScore   int             `json:"average_score"`
	OverallRank    string          `json:"overall_rank"`
	RankColor      string          `json:"rank_color"`
}

type CompanyStatsResponse struct {
	TotalEmployees      int `json:"total_employees"`
	AverageAttendance   int `json:"average_attendance"`
	TotalTasksCompleted int `json:"total_tasks_completed"`
	TotalEventsJoined   int `json:"total_events_joined"`
	AveragePerformance  int `json:"average_performance"`
}

func statsToResponse(stats scoring.CompanyStats) CompanyStatsResponse {
	return CompanyStatsResponse{
		TotalEmployees:      stats.TotalEmployees,
		AverageAttendance:   stats.AverageAttendance,
		TotalTasksCompleted: stats.TotalTasksCompleted,
		TotalEventsJoined:   stats.TotalEventsJoined,
		AveragePerformance:  stats.AveragePerformance,
	}
}
