package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-user-post-api/pkg/apperror"
)

// SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeStringTooLong       = "22001"
)

const usersEmailKey = "users_email_key"

// classify turns a pgx error into an *apperror.Error.
// notFound is the message used for pgx.ErrNoRows and foreign key violations.
func classify(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound(notFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			if pgErr.ConstraintName == usersEmailKey {
				return apperror.Conflict("email already exists", err)
			}
			return apperror.Conflict("duplicate value", err)
		case codeForeignKeyViolation:
			return apperror.NotFound(notFound)
		case codeStringTooLong:
			return apperror.Validation(pgErr.Message)
		}
	}
	return apperror.Internal(err)
}
