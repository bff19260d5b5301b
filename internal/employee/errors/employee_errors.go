package employeeerrors

import (
	"net/http"

	"skillboard/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
	ErrEmployeeIDTaken = apperror.New(
		apperror.CodeConflict,
		"an employee with this employee id already exists",
		http.StatusConflict,
	)
	ErrInvalidSkillCount = apperror.New(
		apperror.CodeInvalidInput,
		"exactly 7 skills are required",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be active or inactive",
		http.StatusBadRequest,
	)
	ErrInvalidStartDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid start_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
