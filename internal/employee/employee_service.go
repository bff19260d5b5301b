package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "skillboard/internal/employee/errors"
	"skillboard/internal/scoring"
	"skillboard/internal/shared/contextutil"
	"skillboard/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const CompanyStatsKey = "employees:stats"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetByEmail(ctx context.Context, email string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdateSkills(ctx context.Context, id string, req UpdateSkillsRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (CompanyStatsResponse, error)
	Upsert(ctx context.Context, empl Employee) (EmployeeResponse, error)
	IncrementTasksCompleted(ctx context.Context, email string) error
	IncrementEventsJoined(ctx context.Context, email string, delta int) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department", req.Department),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		s.logger.Warn("create employee invalid start_date",
			zap.String("start_date", req.StartDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidStartDate
	}

	status, err := normalizeStatus(req.Status)
	if err != nil {
		return EmployeeResponse{}, err
	}

	skills, err := skillsFromInput(req.Skills)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.EmployeeID == "" {
		nextVal, err := s.counter.GetNextValue(ctx, "employee_id")
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeID = fmt.Sprintf("EMP%03d", nextVal)
	}

	empl := &Employee{
		ID:             uuid.New(),
		EmployeeID:     req.EmployeeID,
		Name:           req.Name,
		Email:          req.Email,
		Position:       req.Position,
		Department:     req.Department,
		Phone:          req.Phone,
		Manager:        req.Manager,
		StartDate:      startDate,
		AttendanceRate: scoring.ClampScore(req.AttendanceRate),
		Status:         status,
		Skills:         skills,
		Rewards:        req.Rewards,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateStatsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.EmployeeID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("employee_id", id),
		zap.String("email", req.Email),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidStartDate
	}

	status, err := normalizeStatus(req.Status)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Name = req.Name
	empl.Email = req.Email
	empl.Position = req.Position
	empl.Department = req.Department
	empl.Phone = req.Phone
	empl.Manager = req.Manager
	empl.StartDate = startDate
	empl.AttendanceRate = scoring.ClampScore(req.AttendanceRate)
	empl.Status = status
	empl.Rewards = req.Rewards

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateStatsCache(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) UpdateSkills(ctx context.Context, id string, req UpdateSkillsRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee skills requested", zap.String("employee_id", id))

	skills, err := skillsFromInput(req.Skills)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if len(skills) != scoring.SkillCount {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSkillCount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update skills begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.Skills = skills

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update skills persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update skills commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateStatsCache(ctx)

	s.logger.Info("update employee skills success",
		zap.String("employee_id", id),
		zap.Int("total_score", empl.TotalScore()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateStatsCache(ctx)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// Stats recomputes the company aggregate, cached in Redis behind a
// singleflight so a dashboard refresh storm hits the roster query once.
func (s *service) Stats(ctx context.Context) (CompanyStatsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CompanyStatsKey).Result(); err == nil {
			var resp CompanyStatsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(CompanyStatsKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		roster := make([]scoring.EmployeePerformance, len(empls))
		for i, e := range empls {
			roster[i] = scoring.EmployeePerformance{
				Skills:         e.Skills,
				AttendanceRate: e.AttendanceRate,
				TasksCompleted: e.TasksCompleted,
				EventsJoined:   e.EventsJoined,
			}
		}

		resp := statsToResponse(scoring.ComputeCompanyStats(roster))

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, CompanyStatsKey, jsonData, 5*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return CompanyStatsResponse{}, err
	}

	return v.(CompanyStatsResponse), nil
}

// Upsert writes an imported row, matching existing employees by the
// EmployeeID business key. Used by the CSV restore path.
func (s *service) Upsert(ctx context.Context, empl Employee) (EmployeeResponse, error) {
	for i := range empl.Skills {
		empl.Skills[i].Score = scoring.ClampScore(empl.Skills[i].Score)
	}
	empl.AttendanceRate = scoring.ClampScore(empl.AttendanceRate)

	existing, err := s.repo.FindByEmployeeID(ctx, empl.EmployeeID)
	if err == nil {
		empl.ID = existing.ID
		empl.CreatedAt = existing.CreatedAt
		if err := s.repo.Update(ctx, &empl); err != nil {
			return EmployeeResponse{}, mapRepositoryError(err)
		}
	} else {
		if empl.ID == uuid.Nil {
			empl.ID = uuid.New()
		}
		if err := s.repo.Create(ctx, &empl); err != nil {
			return EmployeeResponse{}, mapRepositoryError(err)
		}
	}

	s.invalidateStatsCache(ctx)

	s.logger.Info("upsert employee success", zap.String("employee_id", empl.EmployeeID))
	return mapToResponse(empl), nil
}

func (s *service) IncrementTasksCompleted(ctx context.Context, email string) error {
	if err := s.repo.IncrementTasksCompleted(ctx, email); err != nil {
		s.logger.Error("increment tasks completed failed",
			zap.String("email", email),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	s.invalidateStatsCache(ctx)
	return nil
}

func (s *service) IncrementEventsJoined(ctx context.Context, email string, delta int) error {
	if err := s.repo.IncrementEventsJoined(ctx, email, delta); err != nil {
		s.logger.Error("increment events joined failed",
			zap.String("email", email),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	s.invalidateStatsCache(ctx)
	return nil
}

func (s *service) invalidateStatsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CompanyStatsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate company stats cache",
			zap.Error(err),
			zap.String("key", CompanyStatsKey),
		)
	}
}

// skillsFromInput validates the taxonomy size and clamps every score.
// Empty input falls back to the default taxonomy at score 50.
func skillsFromInput(inputs []SkillInput) (Skills, error) {
	if len(inputs) == 0 {
		return DefaultSkills(), nil
	}
	if len(inputs) != scoring.SkillCount {
		return nil, employeeerrors.ErrInvalidSkillCount
	}
	skills := make(Skills, len(inputs))
	for i, in := range inputs {
		skills[i] = scoring.Skill{
			Name:  in.Name,
			Score: scoring.ClampScore(in.Score),
		}
	}
	return skills, nil
}

func normalizeStatus(status string) (string, error) {
	switch status {
	case "":
		return StatusActive, nil
	case StatusActive, StatusInactive:
		return status, nil
	default:
		return "", employeeerrors.ErrInvalidStatus
	}
}

func parseDate(v string) (time.Time, error) {
	return time.Parse("2006-01-02", v)
}

func mapToResponse(empl Employee) EmployeeResponse {
	skills := make([]SkillResponse, len(empl.Skills))
	for i, sk := range empl.Skills {
		skills[i] = SkillResponse{
			Name:  sk.Name,
			Score: sk.Score,
			Level: scoring.SkillLevel(sk.Score),
		}
	}

	total := empl.TotalScore()
	rank := scoring.OverallRank(total)

	return EmployeeResponse{
		ID:             empl.ID.String(),
		EmployeeID:     empl.EmployeeID,
		Name:           empl.Name,
		Email:          empl.Email,
		Position:       empl.Position,
		Department:     empl.Department,
		Phone:          empl.Phone,
		Manager:        empl.Manager,
		StartDate:      empl.StartDate.Format("2006-01-02"),
		AttendanceRate: empl.AttendanceRate,
		TasksCompleted: empl.TasksCompleted,
		EventsJoined:   empl.EventsJoined,
		Status:         empl.Status,
		Skills:         skills,
		Rewards:        empl.Rewards,
		TotalScore:     total,
		AverageScore:   scoring.AverageSkillScore(empl.Skills),
		OverallRank:    string(rank),
		RankColor:      scoring.RankColor(rank),
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
