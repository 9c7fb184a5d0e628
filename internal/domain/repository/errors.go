package repository

import "errors"

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate value")
	ErrReferenced = errors.New("record is still referenced")
)

// ConstraintViolation is implemented by ErrDuplicate / ErrReferenced errors that
// know which database constraint was hit.
type ConstraintViolation interface {
	Constraint() string
}
