package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"skillboard/internal/employee"
	employeeerrors "skillboard/internal/employee/errors"
	"skillboard/internal/scoring"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn           func(tx *sql.Tx) employee.Repository
	createFn           func(ctx context.Context, empl *employee.Employee) error
	findAllFn          func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn         func(ctx context.Context, id string) (*employee.Employee, error)
	findByEmailFn      func(ctx context.Context, email string) (*employee.Employee, error)
	findByEmployeeIDFn func(ctx context.Context, employeeID string) (*employee.Employee, error)
	updateFn           func(ctx context.Context, empl *employee.Employee) error
	deleteFn           func(ctx context.Context, id string) error
	incrementTasksFn   func(ctx context.Context, email string) error
	incrementEventsFn  func(ctx context.Context, email string, delta int) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if f.findByEmployeeIDFn != nil {
		return f.findByEmployeeIDFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeEmployeeRepository) IncrementTasksCompleted(ctx context.Context, email string) error {
	if f.incrementTasksFn != nil {
		return f.incrementTasksFn(ctx, email)
	}
	return nil
}

func (f *fakeEmployeeRepository) IncrementEventsJoined(ctx context.Context, email string, delta int) error {
	if f.incrementEventsFn != nil {
		return f.incrementEventsFn(ctx, email, delta)
	}
	return nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type employeeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *fakeEmployeeRepository
	counter *fakeCounterRepository
}

func setupEmployeeServiceTest(t *testing.T, rdb *redis.Client) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	counterRepo := &fakeCounterRepository{}
	svc := employee.NewService(db, repo, counterRepo, rdb)

	return &employeeServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		counter: counterRepo,
	}
}

func expectEmployeeTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	deps := setupEmployeeServiceTest(t, nil)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("blank employee id is auto numbered", func(t *testing.T) {
		expectEmployeeTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			assert.Equal(t, "EMP001", empl.EmployeeID)
			assert.Equal(t, employee.StatusActive, empl.Status)
			assert.Len(t, empl.Skills, scoring.SkillCount)
			for _, sk := range empl.Skills {
				assert.Equal(t, 50, sk.Score)
			}
			return nil
		}

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			Name:       "Somchai J.",
			Email:      "somchai@company.com",
			Department: "Dyeing",
			StartDate:  "2024-06-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP001", resp.EmployeeID)
		assert.Equal(t, 350, resp.TotalScore)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid start date", func(t *testing.T) {
		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			Name:       "Somchai J.",
			Email:      "somchai@company.com",
			Department: "Dyeing",
			StartDate:  "01/06/2024",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidStartDate)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			Name:       "Somchai J.",
			Email:      "somchai@company.com",
			Department: "Dyeing",
			StartDate:  "2024-06-01",
			Status:     "suspended",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidStatus)
	})

	t.Run("wrong skill count", func(t *testing.T) {
		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			Name:       "Somchai J.",
			Email:      "somchai@company.com",
			Department: "Dyeing",
			StartDate:  "2024-06-01",
			Skills:     []employee.SkillInput{{Name: "only one", Score: 80}},
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidSkillCount)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		expectEmployeeTx(t, deps.sqlMock, false)

		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_employees_email"}
		}

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			Name:       "Somchai J.",
			Email:      "somchai@company.com",
			Department: "Dyeing",
			StartDate:  "2024-06-01",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmailTaken)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_UpdateSkills(t *testing.T) {
	deps := setupEmployeeServiceTest(t, nil)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("scores are clamped on write", func(t *testing.T) {
		expectEmployeeTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), Skills: employee.DefaultSkills()}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, empl *employee.Employee) error {
			assert.Equal(t, 100, empl.Skills[0].Score)
			assert.Equal(t, 0, empl.Skills[1].Score)
			assert.Equal(t, 75, empl.Skills[2].Score)
			return nil
		}

		inputs := make([]employee.SkillInput, scoring.SkillCount)
		for i, name := range employee.DefaultSkillNames {
			inputs[i] = employee.SkillInput{Name: name, Score: 50}
		}
		inputs[0].Score = 150
		inputs[1].Score = -20
		inputs[2].Score = 75

		resp, err := deps.service.UpdateSkills(ctx, uuid.NewString(), employee.UpdateSkillsRequest{Skills: inputs})
		assert.NoError(t, err)
		assert.Equal(t, 100, resp.Skills[0].Score)
		assert.Equal(t, 10, resp.Skills[0].Level)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("wrong count rejected", func(t *testing.T) {
		_, err := deps.service.UpdateSkills(ctx, uuid.NewString(), employee.UpdateSkillsRequest{
			Skills: []employee.SkillInput{{Name: "x", Score: 10}},
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidSkillCount)
	})
}

func TestEmployeeService_Stats(t *testing.T) {
	ctx := context.Background()

	roster := []employee.Employee{
		{AttendanceRate: 98, TasksCompleted: 12, EventsJoined: 3, Skills: skillsAt(86)},
		{AttendanceRate: 98, TasksCompleted: 8, EventsJoined: 1, Skills: skillsAt(43)},
	}

	t.Run("cache miss computes and stores", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		deps := setupEmployeeServiceTest(t, rdb)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return roster, nil
		}

		expected := employee.CompanyStatsResponse{
			TotalEmployees:      2,
			AverageAttendance:   98,
			TotalTasksCompleted: 20,
			TotalEventsJoined:   4,
			AveragePerformance:  65,
		}
		payload, err := json.Marshal(expected)
		assert.NoError(t, err)

		redisMock.ExpectGet(employee.CompanyStatsKey).RedisNil()
		redisMock.ExpectSet(employee.CompanyStatsKey, payload, 5*time.Minute).SetVal("OK")

		resp, err := deps.service.Stats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit skips the roster query", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		deps := setupEmployeeServiceTest(t, rdb)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			t.Fatal("roster query should not run on cache hit")
			return nil, nil
		}

		cached := employee.CompanyStatsResponse{TotalEmployees: 7, AverageAttendance: 95}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)

		redisMock.ExpectGet(employee.CompanyStatsKey).SetVal(string(payload))

		resp, err := deps.service.Stats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("empty roster yields zeros", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t, nil)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return nil, nil
		}

		resp, err := deps.service.Stats(ctx)
		assert.NoError(t, err)
		assert.Equal(t, employee.CompanyStatsResponse{}, resp)
	})
}

func TestEmployeeService_Upsert(t *testing.T) {
	deps := setupEmployeeServiceTest(t, nil)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("existing employee id updates in place", func(t *testing.T) {
		existingID := uuid.New()
		createdAt := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

		deps.repo.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
			assert.Equal(t, "EMP007", employeeID)
			return &employee.Employee{ID: existingID, EmployeeID: "EMP007", CreatedAt: createdAt}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, empl *employee.Employee) error {
			assert.Equal(t, existingID, empl.ID)
			assert.Equal(t, createdAt, empl.CreatedAt)
			assert.Equal(t, "Suda K.", empl.Name)
			return nil
		}

		resp, err := deps.service.Upsert(ctx, employee.Employee{
			EmployeeID: "EMP007",
			Name:       "Suda K.",
			Email:      "suda@company.com",
			Skills:     employee.DefaultSkills(),
		})
		assert.NoError(t, err)
		assert.Equal(t, "EMP007", resp.EmployeeID)
	})

	t.Run("unknown employee id creates", func(t *testing.T) {
		deps.repo.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}
		created := false
		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			created = true
			assert.NotEqual(t, uuid.Nil, empl.ID)
			return nil
		}

		_, err := deps.service.Upsert(ctx, employee.Employee{
			EmployeeID: "EMP099",
			Name:       "Anan P.",
			Email:      "anan@company.com",
			Skills:     employee.DefaultSkills(),
		})
		assert.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("skill scores clamped before write", func(t *testing.T) {
		deps.repo.findByEmployeeIDFn = func(ctx context.Context, employeeID string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}
		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			assert.Equal(t, 100, empl.Skills[0].Score)
			return nil
		}

		skills := employee.DefaultSkills()
		skills[0].Score = 300
		_, err := deps.service.Upsert(ctx, employee.Employee{
			EmployeeID: "EMP100",
			Email:      "malee@company.com",
			Skills:     skills,
		})
		assert.NoError(t, err)
	})
}

func TestEmployeeService_GetByID_NotFound(t *testing.T) {
	deps := setupEmployeeServiceTest(t, nil)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := deps.service.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func skillsAt(score int) employee.Skills {
	skills := make(employee.Skills, scoring.SkillCount)
	for i, name := range employee.DefaultSkillNames {
		skills[i] = scoring.Skill{Name: name, Score: score}
	}
	return skills
}
