package eventerrors

import (
	"net/http"

	"skillboard/internal/shared/apperror"
)

var (
	ErrEventNotFound = apperror.New(
		apperror.CodeNotFound,
		"event not found",
		http.StatusNotFound,
	)
	ErrEventFull = apperror.New(
		apperror.CodeCapacityExceeded,
		"event has reached maximum participants",
		http.StatusConflict,
	)
	ErrAlreadyJoined = apperror.New(
		apperror.CodeConflict,
		"user has already joined this event",
		http.StatusConflict,
	)
	ErrNotParticipant = apperror.New(
		apperror.CodeInvalidState,
		"user has not joined this event",
		http.StatusBadRequest,
	)
	ErrEventNotUpcoming = apperror.New(
		apperror.CodeInvalidState,
		"event is not open for registration",
		http.StatusBadRequest,
	)
	ErrLeaveCompletedEvent = apperror.New(
		apperror.CodeInvalidState,
		"cannot leave an event that has already taken place",
		http.StatusBadRequest,
	)
	ErrInvalidMaxParticipants = apperror.New(
		apperror.CodeInvalidInput,
		"max_participants must be greater than zero",
		http.StatusBadRequest,
	)
	ErrCapacityBelowMembership = apperror.New(
		apperror.CodeInvalidInput,
		"max_participants cannot be lowered below the current participant count",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
