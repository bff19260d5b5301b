package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"skillboard/internal/events"
	"skillboard/internal/messaging/kafka"
	"skillboard/internal/shared/contextutil"
	taskerrors "skillboard/internal/task/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context, viewer Viewer) ([]TaskResponse, error)
	GetByID(ctx context.Context, id string, viewer Viewer) (TaskResponse, error)
	Update(ctx context.Context, id string, req UpdateTaskRequest) (TaskResponse, error)
	Accept(ctx context.Context, id string, viewer Viewer) (TaskResponse, error)
	Complete(ctx context.Context, id string, viewer Viewer, notes string) (TaskResponse, error)
	SetStatus(ctx context.Context, id, status, actorEmail string) (TaskResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create task requested",
		zap.String("request_id", rid),
		zap.String("title", req.Title),
		zap.String("assignment_type", req.AssignmentType),
	)

	if !validPriority(req.Priority) {
		return TaskResponse{}, taskerrors.ErrInvalidPriority
	}
	if err := validateAssignment(req.AssignmentType, req.TargetDepartment, req.TargetUsers); err != nil {
		s.logger.Warn("create task assignment validation failed", zap.Error(err))
		return TaskResponse{}, err
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidDueDate
	}

	scheduleType := req.ScheduleType
	if scheduleType == "" {
		scheduleType = ScheduleImmediate
	}
	var scheduledFor *time.Time
	if scheduleType == ScheduleScheduled && req.ScheduledFor != "" {
		if parsed, err := time.Parse(time.RFC3339, req.ScheduledFor); err == nil {
			scheduledFor = &parsed
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t := &Task{
		ID:               uuid.New(),
		Title:            req.Title,
		Description:      req.Description,
		Priority:         req.Priority,
		DueDate:          dueDate,
		DueTime:          req.DueTime,
		AssignmentType:   req.AssignmentType,
		TargetDepartment: req.TargetDepartment,
		TargetUsers:      req.TargetUsers,
		Status:           StatusPending,
		Participants:     []string{},
		ScheduleType:     scheduleType,
		ScheduledFor:     scheduledFor,
	}

	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create task persist failed", zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create task commit failed", zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("create task success",
		zap.String("request_id", rid),
		zap.String("task_id", t.ID.String()),
	)

	return mapToResponse(*t, s.now()), nil
}

// GetAll applies the visibility rules for non-admin viewers; admins get
// the whole list.
func (s *service) GetAll(ctx context.Context, viewer Viewer) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	visible := tasks
	if !viewer.Admin {
		visible = make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if VisibleTo(t, viewer) {
				visible = append(visible, t)
			}
		}
	}

	return mapToListResponse(visible, s.now()), nil
}

func (s *service) GetByID(ctx context.Context, id string, viewer Viewer) (TaskResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	if !VisibleTo(*t, viewer) {
		return TaskResponse{}, taskerrors.ErrNotVisibleToUser
	}
	return mapToResponse(*t, s.now()), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTaskRequest) (TaskResponse, error) {
	s.logger.Debug("update task requested", zap.String("task_id", id))

	if !validPriority(req.Priority) {
		return TaskResponse{}, taskerrors.ErrInvalidPriority
	}
	if err := validateAssignment(req.AssignmentType, req.TargetDepartment, req.TargetUsers); err != nil {
		return TaskResponse{}, err
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidDueDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}

	t.Title = req.Title
	t.Description = req.Description
	t.Priority = req.Priority
	t.DueDate = dueDate
	t.DueTime = req.DueTime
	t.AssignmentType = req.AssignmentType
	t.TargetDepartment = req.TargetDepartment
	t.TargetUsers = req.TargetUsers

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("update task persist failed", zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update task commit failed", zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("update task success", zap.String("task_id", id))
	return mapToResponse(*t, s.now()), nil
}

// Accept moves a pending task to in-progress and records the viewer as a
// participant. A second accept is rejected rather than silently re-applied.
func (s *service) Accept(ctx context.Context, id string, viewer Viewer) (TaskResponse, error) {
	s.logger.Debug("accept task requested",
		zap.String("task_id", id),
		zap.String("user_email", viewer.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("accept task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	if !VisibleTo(*t, viewer) {
		return TaskResponse{}, taskerrors.ErrNotVisibleToUser
	}
	if t.Status != StatusPending {
		s.logger.Warn("accept task invalid state",
			zap.String("task_id", id),
			zap.String("status", t.Status),
		)
		return TaskResponse{}, taskerrors.ErrAcceptNotPending
	}

	if !t.Participants.Contains(viewer.Email) {
		t.Participants = append(t.Participants, viewer.Email)
	}
	t.Status = StatusInProgress

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("accept task persist failed", zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("accept task commit failed", zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("accept task success",
		zap.String("task_id", id),
		zap.String("user_email", viewer.Email),
	)
	return mapToResponse(*t, s.now()), nil
}

// Complete is terminal. The completion stamp and outbox event land in the
// same transaction so the audit trail can never observe a half-finished
// completion.
func (s *service) Complete(ctx context.Context, id string, viewer Viewer, notes string) (TaskResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("complete task requested",
		zap.String("request_id", rid),
		zap.String("task_id", id),
		zap.String("user_email", viewer.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("complete task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	if !VisibleTo(*t, viewer) {
		return TaskResponse{}, taskerrors.ErrNotVisibleToUser
	}
	if t.Status == StatusCompleted {
		s.logger.Warn("complete task already completed", zap.String("task_id", id))
		return TaskResponse{}, taskerrors.ErrAlreadyCompleted
	}

	completedAt := s.now().UTC()
	if !t.Participants.Contains(viewer.Email) {
		t.Participants = append(t.Participants, viewer.Email)
	}
	t.Status = StatusCompleted
	t.CompletedBy = viewer.Email
	t.CompletedAt = &completedAt
	t.Notes = notes

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("complete task persist failed", zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	if err := s.queueCompletedEvent(ctx, tx, rid, *t); err != nil {
		return TaskResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("complete task commit failed", zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("complete task success",
		zap.String("request_id", rid),
		zap.String("task_id", id),
		zap.String("completed_by", viewer.Email),
	)
	return mapToResponse(*t, s.now()), nil
}

// SetStatus is the admin override. Moving to in-progress or completed
// carries the same side effects as accept/complete; moving back to
// pending is a correction that clears the completion stamp.
func (s *service) SetStatus(ctx context.Context, id, status, actorEmail string) (TaskResponse, error) {
	s.logger.Debug("set task status requested",
		zap.String("task_id", id),
		zap.String("target_status", status),
	)

	adminViewer := Viewer{Email: actorEmail, Admin: true}

	switch status {
	case StatusInProgress:
		return s.Accept(ctx, id, adminViewer)
	case StatusCompleted:
		return s.Complete(ctx, id, adminViewer, "")
	case StatusPending:
		// fall through to the reset below
	default:
		return TaskResponse{}, taskerrors.ErrInvalidStatusTransition
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set task status begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}

	t.Status = StatusPending
	t.CompletedBy = ""
	t.CompletedAt = nil

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("set task status persist failed", zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set task status commit failed", zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("set task status success",
		zap.String("task_id", id),
		zap.String("status", StatusPending),
	)
	return mapToResponse(*t, s.now()), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete task success", zap.String("task_id", id))
	return nil
}

func (s *service) queueCompletedEvent(ctx context.Context, tx *sql.Tx, rid string, t Task) error {
	if s.outbox == nil {
		return nil
	}

	event := events.TaskCompletedEvent{
		EventType:     "task_completed",
		RequestID:     rid,
		TaskID:        t.ID.String(),
		TaskTitle:     t.Title,
		Description:   t.Description,
		EmployeeEmail: t.CompletedBy,
		Notes:         t.Notes,
		CompletedAt:   *t.CompletedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal task_completed event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "task",
		AggregateID:   t.ID.String(),
		EventType:     event.EventType,
		Topic:         events.TaskCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("complete task outbox persist failed",
			zap.String("task_id", t.ID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func validateAssignment(assignmentType, targetDepartment string, targetUsers []string) error {
	if !validAssignmentType(assignmentType) {
		return taskerrors.ErrInvalidAssignmentType
	}
	if assignmentType == AssignmentDepartment && targetDepartment == "" {
		return taskerrors.ErrTargetDepartmentRequired
	}
	if assignmentType == AssignmentSpecific && len(targetUsers) == 0 {
		return taskerrors.ErrTargetUsersRequired
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taskerrors.ErrTaskNotFound
	}
	return err
}
