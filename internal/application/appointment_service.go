package application

import (
	"context"
	"errors"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	repo "github.com/oksasatya/go-clinic-api/internal/domain/repository"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

var appointmentSchema = validation.Schema{
	{Field: "id_paciente", Tags: "required,gt=0"},
	{Field: "id_medico", Tags: "required,gt=0"},
	{Field: "fecha", Tags: "required,isodate"},
	{Field: "hora", Tags: "required,hhmm"},
	{Field: "estado", Tags: "omitempty,oneof=pending attended cancelled"},
	{Field: "observaciones", Tags: "omitempty,max=255"},
}

// appointmentUpdateSchema covers the only fields that may change after creation.
var appointmentUpdateSchema = validation.Schema{
	{Field: "estado", Tags: "required,oneof=pending attended cancelled"},
	{Field: "observaciones", Tags: "max=255"},
}

type AppointmentService struct {
	Repo      repo.AppointmentRepository
	Patients  repo.PatientRepository
	Doctors   repo.DoctorRepository
	Validator *validation.Validator
}

func NewAppointmentService(r repo.AppointmentRepository, patients repo.PatientRepository, doctors repo.DoctorRepository, v *validation.Validator) *AppointmentService {
	return &AppointmentService{Repo: r, Patients: patients, Doctors: doctors, Validator: v}
}

type AppointmentInput struct {
	PatientID *int64
	DoctorID  *int64
	Date      *string
	Time      *string
	Status    *string
	Notes     *string
}

type AppointmentUpdateInput struct {
	Status *string
	Notes  *string
}

func (s *AppointmentService) List(ctx context.Context) ([]entity.AppointmentDetail, error) {
	return s.Repo.List(ctx)
}

func (s *AppointmentService) Get(ctx context.Context, id int64) (*entity.Appointment, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return a, nil
}

// Create checks that both the patient and the doctor exist before inserting.
// The foreign keys back the check if either disappears in between.
func (s *AppointmentService) Create(ctx context.Context, in AppointmentInput) (*entity.Appointment, error) {
	f := validation.Fields{}
	validation.Put(f, "id_paciente", in.PatientID)
	validation.Put(f, "id_medico", in.DoctorID)
	validation.Put(f, "fecha", in.Date)
	validation.Put(f, "hora", in.Time)
	validation.Put(f, "estado", in.Status)
	validation.Put(f, "observaciones", in.Notes)
	if err := s.Validator.Check(appointmentSchema, f, validation.Create); err != nil {
		return nil, err
	}

	var missing []validation.Violation
	if _, err := s.Patients.GetByID(ctx, *in.PatientID); err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		missing = append(missing, validation.Violation{Field: "id_paciente", Rule: "exists", Message: "patient does not exist"})
	}
	if _, err := s.Doctors.GetByID(ctx, *in.DoctorID); err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		missing = append(missing, validation.Violation{Field: "id_medico", Rule: "exists", Message: "doctor does not exist"})
	}
	if len(missing) > 0 {
		return nil, &validation.Error{Violations: missing}
	}

	a := &entity.Appointment{
		PatientID: *in.PatientID,
		DoctorID:  *in.DoctorID,
		Date:      *in.Date,
		Time:      *in.Time,
		Status:    entity.StatusPending,
	}
	if in.Status != nil && *in.Status != "" {
		a.Status = entity.AppointmentStatus(*in.Status)
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, storeError(err)
	}
	return a, nil
}

// Update changes status and notes only. Any status may follow any other.
func (s *AppointmentService) Update(ctx context.Context, id int64, in AppointmentUpdateInput) (*entity.Appointment, error) {
	f := validation.Fields{}
	validation.Put(f, "estado", in.Status)
	validation.Put(f, "observaciones", in.Notes)
	if err := s.Validator.Check(appointmentUpdateSchema, f, validation.Update); err != nil {
		return nil, err
	}
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if in.Status != nil {
		a.Status = entity.AppointmentStatus(*in.Status)
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}
	if err := s.Repo.UpdateStatusNotes(ctx, a); err != nil {
		return nil, storeError(err)
	}
	return a, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	return storeError(s.Repo.Delete(ctx, id))
}
