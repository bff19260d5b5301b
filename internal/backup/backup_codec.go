package backup

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	backuperrors "skillboard/internal/backup/errors"
	"skillboard/internal/employee"
	"skillboard/internal/scoring"
)

// Fixed-column roster contract. The first twelve columns are employee
// fields, then one column per taxonomy skill, then rewards.
const (
	colEmployeeID = iota
	colName
	colEmail
	colPosition
	colDepartment
	colPhone
	colStartDate
	colManager
	colAttendanceRate
	colTasksCompleted
	colEventsJoined
	colStatus
	colFirstSkill
)

const colRewards = colFirstSkill + scoring.SkillCount

// Import defaults for blank or unparsable cells.
const (
	defaultAttendanceRate = 95
	defaultSkillScore     = 50
)

func Headers() []string {
	headers := []string{
		"Employee ID",
		"Name",
		"Email",
		"Position",
		"Department",
		"Phone",
		"Start Date",
		"Manager",
		"Attendance Rate",
		"Tasks Completed",
		"Events Joined",
		"Status",
	}
	for i, name := range employee.DefaultSkillNames {
		headers = append(headers, fmt.Sprintf("Skill %d - %s", i+1, name))
	}
	return append(headers, "Rewards")
}

func recordFromResponse(e employee.EmployeeResponse) []string {
	rec := []string{
		e.EmployeeID,
		e.Name,
		e.Email,
		e.Position,
		e.Department,
		e.Phone,
		e.StartDate,
		e.Manager,
		strconv.Itoa(e.AttendanceRate),
		strconv.Itoa(e.TasksCompleted),
		strconv.Itoa(e.EventsJoined),
		e.Status,
	}
	for i := 0; i < scoring.SkillCount; i++ {
		score := defaultSkillScore
		if i < len(e.Skills) {
			score = e.Skills[i].Score
		}
		rec = append(rec, strconv.Itoa(score))
	}
	return append(rec, e.Rewards)
}

// employeeFromRecord rebuilds an entity from one data row. Skill scores
// map by column position onto the taxonomy, never by header text.
func employeeFromRecord(rec []string, now time.Time) (employee.Employee, error) {
	if len(rec) <= colStatus {
		return employee.Employee{}, backuperrors.ErrTooFewColumns
	}

	cell := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	employeeID := cell(colEmployeeID)
	if employeeID == "" {
		return employee.Employee{}, backuperrors.ErrMissingEmployeeID
	}
	email := strings.ToLower(cell(colEmail))
	if email == "" {
		return employee.Employee{}, backuperrors.ErrMissingEmail
	}

	startDate := now
	if v := cell(colStartDate); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return employee.Employee{}, backuperrors.ErrInvalidStartDate
		}
		startDate = parsed
	}

	status := strings.ToLower(cell(colStatus))
	switch status {
	case "":
		status = employee.StatusActive
	case employee.StatusActive, employee.StatusInactive:
	default:
		return employee.Employee{}, backuperrors.ErrInvalidStatus
	}

	skills := make(employee.Skills, scoring.SkillCount)
	for i, name := range employee.DefaultSkillNames {
		skills[i] = scoring.Skill{
			Name:  name,
			Score: intCell(cell(colFirstSkill+i), defaultSkillScore),
		}
	}

	return employee.Employee{
		EmployeeID:     employeeID,
		Name:           cell(colName),
		Email:          email,
		Position:       cell(colPosition),
		Department:     cell(colDepartment),
		Phone:          cell(colPhone),
		StartDate:      startDate,
		Manager:        cell(colManager),
		AttendanceRate: intCell(cell(colAttendanceRate), defaultAttendanceRate),
		TasksCompleted: intCell(cell(colTasksCompleted), 0),
		EventsJoined:   intCell(cell(colEventsJoined), 0),
		Status:         status,
		Skills:         skills,
		Rewards:        cell(colRewards),
	}, nil
}

func intCell(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// isHeaderRow lets imports of a fresh export skip the header line.
func isHeaderRow(rec []string) bool {
	return len(rec) > 0 && strings.TrimSpace(rec[0]) == "Employee ID"
}
