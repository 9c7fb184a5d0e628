package repository

import (
	"context"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
)

type DoctorRepository interface {
	List(ctx context.Context) ([]entity.Doctor, error)
	GetByID(ctx context.Context, id int64) (*entity.Doctor, error)
	Create(ctx context.Context, d *entity.Doctor) error
	Update(ctx context.Context, d *entity.Doctor) error
	Delete(ctx context.Context, id int64) error
}

type PatientRepository interface {
	List(ctx context.Context) ([]entity.Patient, error)
	GetByID(ctx context.Context, id int64) (*entity.Patient, error)
	Create(ctx context.Context, p *entity.Patient) error
	Update(ctx context.Context, p *entity.Patient) error
	Delete(ctx context.Context, id int64) error
	// Search matches q against name, surname, national id and insurance provider.
	Search(ctx context.Context, q string, limit int) ([]entity.Patient, error)
}

type AppointmentRepository interface {
	List(ctx context.Context) ([]entity.AppointmentDetail, error)
	GetByID(ctx context.Context, id int64) (*entity.Appointment, error)
	Create(ctx context.Context, a *entity.Appointment) error
	// UpdateStatusNotes writes the only two fields that may change after creation.
	UpdateStatusNotes(ctx context.Context, a *entity.Appointment) error
	Delete(ctx context.Context, id int64) error
	CountByDoctor(ctx context.Context, doctorID int64) (int, error)
	CountByPatient(ctx context.Context, patientID int64) (int, error)
}
