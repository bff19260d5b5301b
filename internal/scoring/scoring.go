package scoring

import "math"

// Rank is the letter grade assigned to an employee, best to worst.
type Rank string

const (
	RankS      Rank = "S"
	RankA      Rank = "A"
	RankB      Rank = "B"
	RankC      Rank = "C"
	RankD      Rank = "D"
	RankE      Rank = "E"
	RankEMinus Rank = "E-"
)

// Skill is a single scored competency out of the fixed 7-entry taxonomy.
type Skill struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

const (
	// SkillCount is the size of the fixed skill taxonomy.
	SkillCount = 7

	MinScore = 0
	MaxScore = 100

	// MaxTotalScore is the ceiling of the 7-skill sum.
	MaxTotalScore = SkillCount * MaxScore
)

// SkillLevel maps a 0-100 score onto a 1-10 level using 10-point buckets.
// Scores of 90 and above all land in the top bucket.
func SkillLevel(score int) int {
	if score < 0 {
		return 1
	}
	if score >= 90 {
		return 10
	}
	return score/10 + 1
}

// OverallRank grades the sum of all 7 skill scores (0-700). The thresholds
// are 85/70/55/40/25/10 percent of the 700 maximum.
func OverallRank(totalScore int) Rank {
	switch {
	case totalScore >= 595:
		return RankS
	case totalScore >= 490:
		return RankA
	case totalScore >= 385:
		return RankB
	case totalScore >= 280:
		return RankC
	case totalScore >= 175:
		return RankD
	case totalScore >= 70:
		return RankE
	default:
		return RankEMinus
	}
}

// RankByAverage grades a 0-100 average score. Distinct from OverallRank:
// this one is used for average-based displays and operates on a different
// domain, so the two must not be merged.
func RankByAverage(averageScore int) Rank {
	switch {
	case averageScore >= 85:
		return RankS
	case averageScore >= 70:
		return RankA
	case averageScore >= 55:
		return RankB
	case averageScore >= 40:
		return RankC
	case averageScore >= 25:
		return RankD
	case averageScore >= 10:
		return RankE
	default:
		return RankEMinus
	}
}

// RankColor returns the display hex token for a rank. Unknown ranks get gray.
func RankColor(rank Rank) string {
	switch rank {
	case RankS:
		return "#ffd700" // Gold
	case RankA:
		return "#c0c0c0" // Silver
	case RankB:
		return "#cd7f32" // Bronze
	case RankC:
		return "#3b82f6" // Blue
	case RankD:
		return "#10b981" // Green
	case RankE:
		return "#f59e0b" // Yellow
	case RankEMinus:
		return "#ef4444" // Red
	default:
		return "#6b7280" // Gray
	}
}

// AverageSkillScore averages the scores, rounded half away from zero.
// An empty slice yields 0.
func AverageSkillScore(skills []Skill) int {
	if len(skills) == 0 {
		return 0
	}
	total := 0
	for _, s := range skills {
		total += s.Score
	}
	return int(math.Round(float64(total) / float64(len(skills))))
}

// TotalScore sums the skill scores without clamping; callers clamp on write.
func TotalScore(skills []Skill) int {
	total := 0
	for _, s := range skills {
		total += s.Score
	}
	return total
}

// ClampScore forces a score into [0,100]. Applied at every write boundary
// so the pure functions above stay total over their documented domain.
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
