package scoring_test

import (
	"testing"

	"skillboard/internal/scoring"

	"github.com/stretchr/testify/assert"
)

func sevenSkills(scores ...int) []scoring.Skill {
	skills := make([]scoring.Skill, len(scores))
	for i, s := range scores {
		skills[i] = scoring.Skill{Score: s}
	}
	return skills
}

func TestComputeCompanyStats_EmptyRoster(t *testing.T) {
	assert.Equal(t, scoring.CompanyStats{}, scoring.ComputeCompanyStats(nil))
	assert.Equal(t, scoring.CompanyStats{}, scoring.ComputeCompanyStats([]scoring.EmployeePerformance{}))
}

func TestComputeCompanyStats(t *testing.T) {
	roster := []scoring.EmployeePerformance{
		{
			// total 600 -> rank S band
			Skills:         sevenSkills(90, 90, 90, 85, 85, 80, 80),
			AttendanceRate: 100,
			TasksCompleted: 50,
			EventsJoined:   25,
		},
		{
			// total 450 -> rank B band
			Skills:         sevenSkills(70, 70, 65, 65, 60, 60, 60),
			AttendanceRate: 95,
			TasksCompleted: 24,
			EventsJoined:   12,
		},
		{
			// total 300 -> rank C band
			Skills:         sevenSkills(50, 45, 45, 40, 40, 40, 40),
			AttendanceRate: 98,
			TasksCompleted: 18,
			EventsJoined:   15,
		},
	}

	stats := scoring.ComputeCompanyStats(roster)

	assert.Equal(t, 3, stats.TotalEmployees)
	// (100+95+98)/3 = 97.67 -> 98
	assert.Equal(t, 98, stats.AverageAttendance)
	assert.Equal(t, 92, stats.TotalTasksCompleted)
	assert.Equal(t, 52, stats.TotalEventsJoined)
	// per-employee averages: 600/7->86, 450/7->64, 300/7->43; mean 64.33 -> 64
	assert.Equal(t, 64, stats.AveragePerformance)

	// the end-to-end rank bands the roster above was built for
	assert.Equal(t, scoring.RankS, scoring.OverallRank(scoring.TotalScore(roster[0].Skills)))
	assert.Equal(t, scoring.RankB, scoring.OverallRank(scoring.TotalScore(roster[1].Skills)))
	assert.Equal(t, scoring.RankC, scoring.OverallRank(scoring.TotalScore(roster[2].Skills)))
}
