package history

import (
	"context"
	"database/sql"
	"errors"
	"time"

	historyerrors "skillboard/internal/history/errors"
	"skillboard/internal/identity"
	"skillboard/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=history_service.go -destination=mock/history_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, viewer identity.User) ([]HistoryResponse, error)
	CreateManual(ctx context.Context, req CreateHistoryRequest) (HistoryResponse, error)
	CreateFromTask(ctx context.Context, in SystemEntryInput) error
	Update(ctx context.Context, id string, req UpdateHistoryRequest) (HistoryResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("history.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("history.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		logger: l,
	}
}

// GetAll returns everything for the admin and only the caller's own
// entries for everyone else.
func (s *service) GetAll(ctx context.Context, viewer identity.User) ([]HistoryResponse, error) {
	var (
		entries []HistoryEntry
		err     error
	)
	if viewer.Admin {
		entries, err = s.repo.FindAll(ctx)
	} else {
		entries, err = s.repo.FindByEmployee(ctx, viewer.Email)
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(entries), nil
}

func (s *service) CreateManual(ctx context.Context, req CreateHistoryRequest) (HistoryResponse, error) {
	s.logger.Debug("create manual history entry requested",
		zap.String("employee_email", req.EmployeeEmail),
		zap.String("task_title", req.TaskTitle),
	)

	if !validRating(req.Rating) {
		return HistoryResponse{}, historyerrors.ErrInvalidRating
	}
	if !validCategory(req.Category) {
		return HistoryResponse{}, historyerrors.ErrInvalidCategory
	}
	date, err := time.Parse("2006-01-02", req.CompletedDate)
	if err != nil {
		return HistoryResponse{}, historyerrors.ErrInvalidCompletedDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create history begin tx failed", zap.Error(err))
		return HistoryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &HistoryEntry{
		ID:            uuid.New(),
		EmployeeEmail: req.EmployeeEmail,
		TaskTitle:     req.TaskTitle,
		Description:   req.Description,
		CompletedDate: date,
		CompletedTime: req.CompletedTime,
		Notes:         req.Notes,
		Rating:        req.Rating,
		Category:      req.Category,
		Source:        SourceManual,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create history persist failed", zap.Error(err))
		return HistoryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create history commit failed", zap.Error(err))
		return HistoryResponse{}, err
	}

	s.logger.Info("create manual history entry success",
		zap.String("history_id", e.ID.String()),
		zap.String("employee_email", e.EmployeeEmail),
	)
	return mapToResponse(*e), nil
}

// CreateFromTask records a task completion delivered by the consumer.
// A redelivered message trips the unique task id index and surfaces as
// ErrDuplicateSystemEntry, which the caller treats as already handled.
func (s *service) CreateFromTask(ctx context.Context, in SystemEntryInput) error {
	taskID := in.TaskID
	e := &HistoryEntry{
		ID:            uuid.New(),
		TaskID:        &taskID,
		EmployeeEmail: in.EmployeeEmail,
		TaskTitle:     in.TaskTitle,
		Description:   in.Description,
		CompletedDate: in.CompletedAt,
		CompletedTime: in.CompletedAt.Format("15:04"),
		Notes:         in.Notes,
		Rating:        5,
		Category:      CategoryTask,
		Source:        SourceSystem,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("system history entry recorded",
		zap.String("history_id", e.ID.String()),
		zap.String("task_id", taskID.String()),
		zap.String("employee_email", in.EmployeeEmail),
	)
	return nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHistoryRequest) (HistoryResponse, error) {
	s.logger.Debug("update history entry requested", zap.String("history_id", id))

	if !validRating(req.Rating) {
		return HistoryResponse{}, historyerrors.ErrInvalidRating
	}
	if !validCategory(req.Category) {
		return HistoryResponse{}, historyerrors.ErrInvalidCategory
	}
	date, err := time.Parse("2006-01-02", req.CompletedDate)
	if err != nil {
		return HistoryResponse{}, historyerrors.ErrInvalidCompletedDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update history begin tx failed", zap.Error(err))
		return HistoryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return HistoryResponse{}, mapRepositoryError(err)
	}
	if e.Source == SourceSystem {
		return HistoryResponse{}, historyerrors.ErrSystemEntryImmutable
	}

	e.TaskTitle = req.TaskTitle
	e.Description = req.Description
	e.CompletedDate = date
	e.CompletedTime = req.CompletedTime
	e.Notes = req.Notes
	e.Rating = req.Rating
	e.Category = req.Category

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update history persist failed", zap.Error(err))
		return HistoryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update history commit failed", zap.Error(err))
		return HistoryResponse{}, err
	}

	s.logger.Info("update history entry success", zap.String("history_id", id))
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if e.Source == SourceSystem {
		return historyerrors.ErrSystemEntryImmutable
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete history entry success", zap.String("history_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return historyerrors.ErrHistoryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return historyerrors.ErrDuplicateSystemEntry
	}

	return apperror.Wrap(err, apperror.CodeServiceUnavailable, apperror.ErrPersistence.Message, apperror.ErrPersistence.HTTPStatus)
}
