package scoring

import "math"

// EmployeePerformance is the slice of an employee record the company
// aggregate needs. Feature packages map their entities into it.
type EmployeePerformance struct {
	Skills         []Skill
	AttendanceRate int
	TasksCompleted int
	EventsJoined   int
}

// CompanyStats is the dashboard-level aggregate over the whole roster.
type CompanyStats struct {
	TotalEmployees      int `json:"totalEmployees"`
	AverageAttendance   int `json:"averageAttendance"`
	TotalTasksCompleted int `json:"totalTasksCompleted"`
	TotalEventsJoined   int `json:"totalEventsJoined"`
	AveragePerformance  int `json:"averagePerformance"`
}

// ComputeCompanyStats reduces a roster into the dashboard aggregate.
// An empty roster yields the zero value, never a division fault.
func ComputeCompanyStats(roster []EmployeePerformance) CompanyStats {
	if len(roster) == 0 {
		return CompanyStats{}
	}

	var stats CompanyStats
	stats.TotalEmployees = len(roster)

	attendanceSum := 0
	performanceSum := 0
	for _, emp := range roster {
		attendanceSum += emp.AttendanceRate
		performanceSum += AverageSkillScore(emp.Skills)
		stats.TotalTasksCompleted += emp.TasksCompleted
		stats.TotalEventsJoined += emp.EventsJoined
	}

	n := float64(len(roster))
	stats.AverageAttendance = int(math.Round(float64(attendanceSum) / n))
	stats.AveragePerformance = int(math.Round(float64(performanceSum) / n))

	return stats
}
