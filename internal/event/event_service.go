package event

import (
	"context"
	"database/sql"
	"errors"
	"time"

	eventerrors "skillboard/internal/event/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RosterCounter is the slice of the employee service the event module
// needs: keeping the per-employee participation counter in step.
type RosterCounter interface {
	IncrementEventsJoined(ctx context.Context, email string, delta int) error
}

// Options tunes behaviors the dashboard left loose.
type Options struct {
	// AllowLeaveCompleted keeps the historical behavior of letting a
	// user drop off a past event's roster. Off means leave is only
	// legal while the event is still upcoming.
	AllowLeaveCompleted bool
}

func DefaultOptions() Options {
	return Options{AllowLeaveCompleted: true}
}

//go:generate mockgen -source=event_service.go -destination=mock/event_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEventRequest) (EventResponse, error)
	GetAll(ctx context.Context) ([]EventResponse, error)
	GetByID(ctx context.Context, id string) (EventResponse, error)
	Update(ctx context.Context, id string, req UpdateEventRequest) (EventResponse, error)
	Join(ctx context.Context, id, email string) (EventResponse, error)
	Leave(ctx context.Context, id, email string) (EventResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	roster RosterCounter
	opts   Options
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, roster RosterCounter, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("event.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("event.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		roster: roster,
		opts:   opts,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEventRequest) (EventResponse, error) {
	s.logger.Debug("create event requested",
		zap.String("name", req.Name),
		zap.String("date", req.Date),
	)

	if req.MaxParticipants <= 0 {
		return EventResponse{}, eventerrors.ErrInvalidMaxParticipants
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return EventResponse{}, err
	}
	deadline, err := parseOptionalDate(req.RegistrationDeadline)
	if err != nil {
		return EventResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create event begin tx failed", zap.Error(err))
		return EventResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &Event{
		ID:                   uuid.New(),
		Name:                 req.Name,
		Date:                 date,
		Time:                 req.Time,
		Location:             req.Location,
		Description:          req.Description,
		MaxParticipants:      req.MaxParticipants,
		RegistrationDeadline: deadline,
		Participants:         []string{},
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create event persist failed", zap.Error(err))
		return EventResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create event commit failed", zap.Error(err))
		return EventResponse{}, err
	}

	s.logger.Info("create event success", zap.String("event_id", e.ID.String()))
	return mapToResponse(*e, s.now()), nil
}

func (s *service) GetAll(ctx context.Context) ([]EventResponse, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(events, s.now()), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EventResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EventResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e, s.now()), nil
}

// Update rejects a capacity cut below the current membership so the
// roster can never silently exceed the cap.
func (s *service) Update(ctx context.Context, id string, req UpdateEventRequest) (EventResponse, error) {
	s.logger.Debug("update event requested", zap.String("event_id", id))

	if req.MaxParticipants <= 0 {
		return EventResponse{}, eventerrors.ErrInvalidMaxParticipants
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return EventResponse{}, err
	}
	deadline, err := parseOptionalDate(req.RegistrationDeadline)
	if err != nil {
		return EventResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update event begin tx failed", zap.Error(err))
		return EventResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EventResponse{}, mapRepositoryError(err)
	}

	if req.MaxParticipants < len(e.Participants) {
		s.logger.Warn("update event capacity below membership",
			zap.String("event_id", id),
			zap.Int("max_participants", req.MaxParticipants),
			zap.Int("current", len(e.Participants)),
		)
		return EventResponse{}, eventerrors.ErrCapacityBelowMembership
	}

	e.Name = req.Name
	e.Date = date
	e.Time = req.Time
	e.Location = req.Location
	e.Description = req.Description
	e.MaxParticipants = req.MaxParticipants
	e.RegistrationDeadline = deadline

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update event persist failed", zap.Error(err))
		return EventResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update event commit failed", zap.Error(err))
		return EventResponse{}, err
	}

	s.logger.Info("update event success", zap.String("event_id", id))
	return mapToResponse(*e, s.now()), nil
}

// Join enforces state, duplicate-membership and capacity in that order,
// then bumps the employee's participation counter.
func (s *service) Join(ctx context.Context, id, email string) (EventResponse, error) {
	s.logger.Debug("join event requested",
		zap.String("event_id", id),
		zap.String("user_email", email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("join event begin tx failed", zap.Error(err))
		return EventResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EventResponse{}, mapRepositoryError(err)
	}

	now := s.now()
	if !e.RegistrationOpen(now) {
		s.logger.Warn("join event not open",
			zap.String("event_id", id),
			zap.String("status", e.DerivedStatus(now)),
		)
		return EventResponse{}, eventerrors.ErrEventNotUpcoming
	}
	if e.Participants.Contains(email) {
		return EventResponse{}, eventerrors.ErrAlreadyJoined
	}
	if e.Full() {
		s.logger.Warn("join event full",
			zap.String("event_id", id),
			zap.Int("max_participants", e.MaxParticipants),
		)
		return EventResponse{}, eventerrors.ErrEventFull
	}

	e.Participants = append(e.Participants, email)

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("join event persist failed", zap.Error(err))
		return EventResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("join event commit failed", zap.Error(err))
		return EventResponse{}, err
	}

	if s.roster != nil {
		if err := s.roster.IncrementEventsJoined(ctx, email, 1); err != nil {
			s.logger.Error("increment events joined failed",
				zap.String("user_email", email),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("join event success",
		zap.String("event_id", id),
		zap.String("user_email", email),
	)
	return mapToResponse(*e, s.now()), nil
}

func (s *service) Leave(ctx context.Context, id, email string) (EventResponse, error) {
	s.logger.Debug("leave event requested",
		zap.String("event_id", id),
		zap.String("user_email", email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("leave event begin tx failed", zap.Error(err))
		return EventResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EventResponse{}, mapRepositoryError(err)
	}

	if !e.Participants.Contains(email) {
		return EventResponse{}, eventerrors.ErrNotParticipant
	}
	if !s.opts.AllowLeaveCompleted && e.DerivedStatus(s.now()) == StatusCompleted {
		return EventResponse{}, eventerrors.ErrLeaveCompletedEvent
	}

	e.Participants = e.Participants.Without(email)

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("leave event persist failed", zap.Error(err))
		return EventResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("leave event commit failed", zap.Error(err))
		return EventResponse{}, err
	}

	if s.roster != nil {
		if err := s.roster.IncrementEventsJoined(ctx, email, -1); err != nil {
			s.logger.Error("decrement events joined failed",
				zap.String("user_email", email),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("leave event success",
		zap.String("event_id", id),
		zap.String("user_email", email),
	)
	return mapToResponse(*e, s.now()), nil
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

	s.logger.Info("delete event success", zap.String("event_id", id))
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, eventerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := parseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return eventerrors.ErrEventNotFound
	}
	return err
}
