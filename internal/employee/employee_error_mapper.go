package employee

import (
	"errors"
	"strings"

	employeeerrors "skillboard/internal/employee/errors"
	"skillboard/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return employeeerrors.ErrEmailTaken
		}
		return employeeerrors.ErrEmployeeIDTaken
	}

	return apperror.Wrap(err, apperror.CodeServiceUnavailable, apperror.ErrPersistence.Message, apperror.ErrPersistence.HTTPStatus)
}
