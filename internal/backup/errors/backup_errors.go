package backuperrors

import (
	"net/http"

	"skillboard/internal/shared/apperror"
)

var (
	ErrMalformedCSV = apperror.New(
		apperror.CodeInvalidInput,
		"request body is not valid CSV",
		http.StatusBadRequest,
	)
	ErrEmptyImport = apperror.New(
		apperror.CodeInvalidInput,
		"import contains no data rows",
		http.StatusBadRequest,
	)
	ErrTooFewColumns = apperror.New(
		apperror.CodeInvalidInput,
		"row has fewer columns than the roster contract requires",
		http.StatusBadRequest,
	)
	ErrMissingEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Employee ID is required",
		http.StatusBadRequest,
	)
	ErrMissingEmail = apperror.New(
		apperror.CodeInvalidInput,
		"Email is required",
		http.StatusBadRequest,
	)
	ErrInvalidStartDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid Start Date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be active or inactive",
		http.StatusBadRequest,
	)
)
