package application

import (
	"context"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	repo "github.com/oksasatya/go-clinic-api/internal/domain/repository"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

var doctorSchema = validation.Schema{
	{Field: "nombre", Tags: "required,max=50,personname"},
	{Field: "apellido", Tags: "required,max=50,personname"},
	{Field: "especialidad", Tags: "required,max=50"},
	{Field: "matricula", Tags: "required,alphanum,max=20"},
}

type DoctorService struct {
	Repo         repo.DoctorRepository
	Appointments repo.AppointmentRepository
	Validator    *validation.Validator
}

func NewDoctorService(r repo.DoctorRepository, appts repo.AppointmentRepository, v *validation.Validator) *DoctorService {
	return &DoctorService{Repo: r, Appointments: appts, Validator: v}
}

type DoctorInput struct {
	Name          *string
	Surname       *string
	Specialty     *string
	LicenseNumber *string
}

func (in DoctorInput) fields() validation.Fields {
	f := validation.Fields{}
	validation.Put(f, "nombre", in.Name)
	validation.Put(f, "apellido", in.Surname)
	validation.Put(f, "especialidad", in.Specialty)
	validation.Put(f, "matricula", in.LicenseNumber)
	return f
}

func (in DoctorInput) apply(d *entity.Doctor) {
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.Surname != nil {
		d.Surname = *in.Surname
	}
	if in.Specialty != nil {
		d.Specialty = *in.Specialty
	}
	if in.LicenseNumber != nil {
		d.LicenseNumber = *in.LicenseNumber
	}
}

func (s *DoctorService) List(ctx context.Context) ([]entity.Doctor, error) {
	return s.Repo.List(ctx)
}

func (s *DoctorService) Get(ctx context.Context, id int64) (*entity.Doctor, error) {
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return d, nil
}

func (s *DoctorService) Create(ctx context.Context, in DoctorInput) (*entity.Doctor, error) {
	if err := s.Validator.Check(doctorSchema, in.fields(), validation.Create); err != nil {
		return nil, err
	}
	d := &entity.Doctor{}
	in.apply(d)
	if err := s.Repo.Create(ctx, d); err != nil {
		return nil, storeError(err)
	}
	return d, nil
}

func (s *DoctorService) Update(ctx context.Context, id int64, in DoctorInput) (*entity.Doctor, error) {
	if err := s.Validator.Check(doctorSchema, in.fields(), validation.Update); err != nil {
		return nil, err
	}
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	in.apply(d)
	if err := s.Repo.Update(ctx, d); err != nil {
		return nil, storeError(err)
	}
	return d, nil
}

// Delete refuses to remove a doctor that still has appointments.
func (s *DoctorService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return storeError(err)
	}
	n, err := s.Appointments.CountByDoctor(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	return deleteError(s.Repo.Delete(ctx, id))
}
