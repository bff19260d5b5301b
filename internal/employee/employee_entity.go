package employee

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"skillboard/internal/scoring"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// DefaultSkillNames is the fixed 7-entry dye-house taxonomy. Every
// employee carries exactly these skills in this order.
var DefaultSkillNames = [scoring.SkillCount]string{
	"ทดสอบ Munsell",
	"การต่อเทปร้อยเทป",
	"การเตรียมสีและสารเคมี",
	"การอ่านใบย้อม",
	"การตรวจคุณภาพงานย้อม",
	"การตรวจเช็คเครื่องจักร",
	"ทักษะการดูสี / เติมสี / ปรับสี",
}

// DefaultSkills returns the taxonomy with every score at the import
// default of 50.
func DefaultSkills() Skills {
	skills := make(Skills, scoring.SkillCount)
	for i, name := range DefaultSkillNames {
		skills[i] = scoring.Skill{Name: name, Score: 50}
	}
	return skills
}

// Skills is the JSONB-backed skill sequence.
type Skills []scoring.Skill

func (s Skills) Value() (driver.Value, error) {
	if s == nil {
		s = Skills{}
	}
	return json.Marshal(s)
}

func (s *Skills) Scan(value any) error {
	if value == nil {
		*s = Skills{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("employee: unsupported scan source for Skills")
	}
}

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID     string    `gorm:"uniqueIndex"` // human code, e.g. EMP001
	Name           string
	Email          string `gorm:"uniqueIndex"`
	Position       string
	Department     string `gorm:"index"`
	Phone          string
	Manager        string
	StartDate      time.Time `gorm:"type:date"`
	AttendanceRate int
	TasksCompleted int
	EventsJoined   int
	Status         string `gorm:"type:varchar(20);not null;default:'active'"`
	Skills         Skills `gorm:"type:jsonb"`
	Rewards        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TotalScore is the 0-700 sum the overall rank is graded on.
func (e *Employee) TotalScore() int {
	return scoring.TotalScore(e.Skills)
}
