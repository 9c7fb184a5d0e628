package application

import (
	"errors"

	repo "github.com/oksasatya/go-clinic-api/internal/domain/repository"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("resource not found")
	// ErrConflict is returned when deleting a record other records still point at.
	ErrConflict = errors.New("resource is still referenced")
)

type constraintField struct {
	field, rule, msg string
}

// constraintFields maps database constraint names to the request field they guard.
var constraintFields = map[string]constraintField{
	"usuarios_email_key":      {"email", "unique", "is already registered"},
	"medicos_matricula_key":   {"matricula", "unique", "is already registered"},
	"pacientes_dni_key":       {"dni", "unique", "is already registered"},
	"turnos_id_paciente_fkey": {"id_paciente", "exists", "patient does not exist"},
	"turnos_id_medico_fkey":   {"id_medico", "exists", "doctor does not exist"},
}

// storeError translates repository errors raised by writes.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repo.ErrDuplicate), errors.Is(err, repo.ErrReferenced):
		var cv repo.ConstraintViolation
		if errors.As(err, &cv) {
			if f, ok := constraintFields[cv.Constraint()]; ok {
				return validation.Fail(f.field, f.rule, f.msg)
			}
		}
		if errors.Is(err, repo.ErrReferenced) {
			return ErrConflict
		}
	}
	return err
}

// deleteError is storeError for deletes, where a foreign key hit means the
// row is still referenced rather than a bad request field.
func deleteError(err error) error {
	if errors.Is(err, repo.ErrReferenced) {
		return ErrConflict
	}
	return storeError(err)
}
