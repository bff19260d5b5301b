package historyerrors

import (
	"net/http"

	"skillboard/internal/shared/apperror"
)

var (
	ErrHistoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"history entry not found",
		http.StatusNotFound,
	)
	ErrInvalidRating = apperror.New(
		apperror.CodeInvalidInput,
		"rating must be between 1 and 10",
		http.StatusBadRequest,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"category must be one of task, project, training, meeting",
		http.StatusBadRequest,
	)
	ErrInvalidCompletedDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid completed_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrSystemEntryImmutable = apperror.New(
		apperror.CodeInvalidState,
		"system-generated history entries cannot be modified or deleted",
		http.StatusBadRequest,
	)
	ErrDuplicateSystemEntry = apperror.New(
		apperror.CodeConflict,
		"a history entry for this task completion already exists",
		http.StatusConflict,
	)
)
