package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-clinic-api/internal/domain/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapErr translates driver errors into repository sentinels, keeping the cause wrapped.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &constraintError{kind: repository.ErrDuplicate, constraint: pgErr.ConstraintName, cause: err}
		case pgForeignKeyViolation:
			return &constraintError{kind: repository.ErrReferenced, constraint: pgErr.ConstraintName, cause: err}
		}
	}
	return err
}

// constraintError keeps the violated constraint name around so services can
// point the violation at the right field.
type constraintError struct {
	kind       error
	constraint string
	cause      error
}

func (e *constraintError) Error() string {
	return e.kind.Error() + " (" + e.constraint + "): " + e.cause.Error()
}

func (e *constraintError) Is(target error) bool { return target == e.kind }

func (e *constraintError) Unwrap() error { return e.cause }

// Constraint returns the name of the violated constraint.
func (e *constraintError) Constraint() string { return e.constraint }
