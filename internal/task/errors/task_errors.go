package taskerrors

import (
	"net/http"

	"skillboard/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"task not found",
		http.StatusNotFound,
	)
	ErrInvalidPriority = apperror.New(
		apperror.CodeInvalidInput,
		"priority must be low, medium or high",
		http.StatusBadRequest,
	)
	ErrInvalidAssignmentType = apperror.New(
		apperror.CodeInvalidInput,
		"assignment_type must be all, department or specific",
		http.StatusBadRequest,
	)
	ErrTargetDepartmentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"target_department is required for department assignment",
		http.StatusBadRequest,
	)
	ErrTargetUsersRequired = apperror.New(
		apperror.CodeInvalidInput,
		"target_users is required for specific assignment",
		http.StatusBadRequest,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid due_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid task status transition",
		http.StatusBadRequest,
	)
	ErrAlreadyCompleted = apperror.New(
		apperror.CodeInvalidState,
		"task is already completed",
		http.StatusBadRequest,
	)
	ErrAcceptNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only a pending task can be accepted",
		http.StatusBadRequest,
	)
	ErrNotVisibleToUser = apperror.New(
		apperror.CodeForbidden,
		"task is not assigned to this user",
		http.StatusForbidden,
	)
)
