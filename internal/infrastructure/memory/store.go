// Package memory keeps the whole Credential Store in process memory. It mirrors
// the constraints of the SQL schema (unique columns, restrictive foreign keys)
// and backs the test suite and STORAGE_DRIVER=memory.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/internal/domain/repository"
)

type Store struct {
	mu sync.RWMutex

	users        map[int64]entity.User
	doctors      map[int64]entity.Doctor
	patients     map[int64]entity.Patient
	appointments map[int64]entity.Appointment

	nextUser, nextDoctor, nextPatient, nextAppointment int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:        map[int64]entity.User{},
		doctors:      map[int64]entity.Doctor{},
		patients:     map[int64]entity.Patient{},
		appointments: map[int64]entity.Appointment{},
		now:          time.Now,
	}
}

func (s *Store) Users() *UserRepository               { return &UserRepository{s: s} }
func (s *Store) Doctors() *DoctorRepository           { return &DoctorRepository{s: s} }
func (s *Store) Patients() *PatientRepository         { return &PatientRepository{s: s} }
func (s *Store) Appointments() *AppointmentRepository { return &AppointmentRepository{s: s} }

type constraintError struct {
	kind       error
	constraint string
}

func (e *constraintError) Error() string        { return e.kind.Error() + " (" + e.constraint + ")" }
func (e *constraintError) Is(target error) bool { return target == e.kind }
func (e *constraintError) Constraint() string   { return e.constraint }

func duplicate(constraint string) error {
	return &constraintError{kind: repository.ErrDuplicate, constraint: constraint}
}

func referenced(constraint string) error {
	return &constraintError{kind: repository.ErrReferenced, constraint: constraint}
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
