package backup_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"sync"
	"testing"

	"skillboard/internal/backup"
	backuperrors "skillboard/internal/backup/errors"
	"skillboard/internal/employee"
	"skillboard/internal/scoring"

	"github.com/stretchr/testify/assert"
)

type fakeDirectory struct {
	getAllFn func(ctx context.Context) ([]employee.EmployeeResponse, error)

	mu       sync.Mutex
	upserted []employee.Employee
	upsertFn func(ctx context.Context, empl employee.Employee) (employee.EmployeeResponse, error)
}

func (f *fakeDirectory) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeDirectory) Upsert(ctx context.Context, empl employee.Employee) (employee.EmployeeResponse, error) {
	f.mu.Lock()
	f.upserted = append(f.upserted, empl)
	f.mu.Unlock()
	if f.upsertFn != nil {
		return f.upsertFn(ctx, empl)
	}
	return employee.EmployeeResponse{}, nil
}

func (f *fakeDirectory) byEmployeeID(id string) (employee.Employee, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.upserted {
		if e.EmployeeID == id {
			return e, true
		}
	}
	return employee.Employee{}, false
}

func skillResponses(score int) []employee.SkillResponse {
	skills := make([]employee.SkillResponse, scoring.SkillCount)
	for i, name := range employee.DefaultSkillNames {
		skills[i] = employee.SkillResponse{
			Name:  name,
			Score: score,
			Level: scoring.SkillLevel(score),
		}
	}
	return skills
}

func TestBackupService_Export(t *testing.T) {
	dir := &fakeDirectory{
		getAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{
					EmployeeID:     "EMP001",
					Name:           "Somchai Jaidee",
					Email:          "somchai@company.com",
					Position:       "Dye Technician",
					Department:     "Dyeing",
					StartDate:      "2024-06-01",
					AttendanceRate: 97,
					TasksCompleted: 12,
					EventsJoined:   3,
					Status:         "active",
					Skills:         skillResponses(80),
					Rewards:        "Employee of the month, June",
				},
			}, nil
		},
	}
	svc := backup.NewService(dir)

	data, err := svc.Export(context.Background())
	assert.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	assert.Equal(t, backup.Headers(), records[0])
	assert.Len(t, records[0], 12+scoring.SkillCount+1)

	row := records[1]
	assert.Equal(t, "EMP001", row[0])
	assert.Equal(t, "somchai@company.com", row[2])
	assert.Equal(t, "97", row[8])
	assert.Equal(t, "80", row[12])
	// the rewards cell holds a comma, which the csv writer must quote
	assert.Equal(t, "Employee of the month, June", row[len(row)-1])
}

func TestBackupService_ImportRoundTrip(t *testing.T) {
	dir := &fakeDirectory{
		getAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{
					EmployeeID:     "EMP001",
					Name:           "Somchai Jaidee",
					Email:          "Somchai@Company.com",
					Department:     "Dyeing",
					StartDate:      "2024-06-01",
					AttendanceRate: 97,
					Status:         "active",
					Skills:         skillResponses(80),
				},
			}, nil
		},
	}
	svc := backup.NewService(dir)

	data, err := svc.Export(context.Background())
	assert.NoError(t, err)

	report, err := svc.Import(context.Background(), bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 0, report.Failed)

	got, ok := dir.byEmployeeID("EMP001")
	assert.True(t, ok)
	assert.Equal(t, "somchai@company.com", got.Email)
	assert.Equal(t, 97, got.AttendanceRate)
	assert.Len(t, got.Skills, scoring.SkillCount)
	assert.Equal(t, 80, got.Skills[0].Score)
}

func TestBackupService_ImportDefaults(t *testing.T) {
	dir := &fakeDirectory{}
	svc := backup.NewService(dir)

	// blank attendance, counters, skills, start date and status
	csvBody := "EMP002,Suda,suda@company.com,,,,,,,,,\n"

	report, err := svc.Import(context.Background(), strings.NewReader(csvBody))
	assert.NoError(t, err)
	assert.Equal(t, 1, report.Imported)

	got, ok := dir.byEmployeeID("EMP002")
	assert.True(t, ok)
	assert.Equal(t, 95, got.AttendanceRate)
	assert.Equal(t, 0, got.TasksCompleted)
	assert.Equal(t, 0, got.EventsJoined)
	assert.Equal(t, employee.StatusActive, got.Status)
	assert.False(t, got.StartDate.IsZero())
	for _, s := range got.Skills {
		assert.Equal(t, 50, s.Score)
	}
}

func TestBackupService_ImportRowErrors(t *testing.T) {
	dir := &fakeDirectory{}
	svc := backup.NewService(dir)

	rows := strings.Join([]string{
		",No ID,noid@company.com,,,,,,,,,",
		"EMP004,No Email,,,,,,,,,,",
		"EMP005,Bad Date,baddate@company.com,,,,13-02-2026,,,,,",
		"EMP006,Bad Status,badstatus@company.com,,,,,,,,,terminated",
		"EMP007,Fine,fine@company.com,,,,,,,,,active",
	}, "\n") + "\n"

	report, err := svc.Import(context.Background(), strings.NewReader(rows))
	assert.NoError(t, err)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 4, report.Failed)

	// row errors come back sorted even though rows run concurrently
	assert.Equal(t, 1, report.Errors[0].Row)
	assert.Equal(t, backuperrors.ErrMissingEmployeeID.Message, report.Errors[0].Message)
	assert.Equal(t, 2, report.Errors[1].Row)
	assert.Equal(t, backuperrors.ErrMissingEmail.Message, report.Errors[1].Message)
	assert.Equal(t, 3, report.Errors[2].Row)
	assert.Equal(t, 4, report.Errors[3].Row)

	_, ok := dir.byEmployeeID("EMP007")
	assert.True(t, ok)
}

func TestBackupService_ImportHeaderOnly(t *testing.T) {
	dir := &fakeDirectory{}
	svc := backup.NewService(dir)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	assert.NoError(t, w.Write(backup.Headers()))
	w.Flush()

	_, err := svc.Import(context.Background(), &buf)
	assert.ErrorIs(t, err, backuperrors.ErrEmptyImport)
}

func TestBackupService_ImportTooFewColumns(t *testing.T) {
	dir := &fakeDirectory{}
	svc := backup.NewService(dir)

	report, err := svc.Import(context.Background(), strings.NewReader("EMP001,Somchai\n"))
	assert.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, backuperrors.ErrTooFewColumns.Message, report.Errors[0].Message)
}
