package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	repo "github.com/oksasatya/go-clinic-api/internal/domain/repository"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

var patientSchema = validation.Schema{
	{Field: "nombre", Tags: "required,max=50,personname"},
	{Field: "apellido", Tags: "required,max=50,personname"},
	{Field: "dni", Tags: "required,number,min=7,max=8"},
	{Field: "fecha_nacimiento", Tags: "required,isodate"},
	{Field: "obra_social", Tags: "omitempty,max=50"},
}

var searchSchema = validation.Schema{
	{Field: "q", Tags: "required,max=100"},
}

const defaultSearchLimit = 20

// PatientIndex is a full text index over patients. Writes to it are best effort;
// the database stays the source of truth.
type PatientIndex interface {
	Index(ctx context.Context, p entity.Patient) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, limit int) ([]entity.Patient, error)
}

type PatientService struct {
	Repo         repo.PatientRepository
	Appointments repo.AppointmentRepository
	Index        PatientIndex
	Validator    *validation.Validator
	Logger       *logrus.Logger
}

// NewPatientService builds the service; index may be nil, searches then go to the database.
func NewPatientService(r repo.PatientRepository, appts repo.AppointmentRepository, index PatientIndex, v *validation.Validator, logger *logrus.Logger) *PatientService {
	return &PatientService{Repo: r, Appointments: appts, Index: index, Validator: v, Logger: logger}
}

type PatientInput struct {
	Name              *string
	Surname           *string
	NationalID        *string
	BirthDate         *string
	InsuranceProvider *string
}

func (in PatientInput) fields() validation.Fields {
	f := validation.Fields{}
	validation.Put(f, "nombre", in.Name)
	validation.Put(f, "apellido", in.Surname)
	validation.Put(f, "dni", in.NationalID)
	validation.Put(f, "fecha_nacimiento", in.BirthDate)
	validation.Put(f, "obra_social", in.InsuranceProvider)
	return f
}

func (in PatientInput) apply(p *entity.Patient) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Surname != nil {
		p.Surname = *in.Surname
	}
	if in.NationalID != nil {
		p.NationalID = *in.NationalID
	}
	if in.BirthDate != nil {
		p.BirthDate = *in.BirthDate
	}
	if in.InsuranceProvider != nil {
		p.InsuranceProvider = *in.InsuranceProvider
	}
}

func (s *PatientService) List(ctx context.Context) ([]entity.Patient, error) {
	return s.Repo.List(ctx)
}

func (s *PatientService) Get(ctx context.Context, id int64) (*entity.Patient, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return p, nil
}

func (s *PatientService) Create(ctx context.Context, in PatientInput) (*entity.Patient, error) {
	if err := s.Validator.Check(patientSchema, in.fields(), validation.Create); err != nil {
		return nil, err
	}
	p := &entity.Patient{}
	in.apply(p)
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, storeError(err)
	}
	s.index(ctx, *p)
	return p, nil
}

func (s *PatientService) Update(ctx context.Context, id int64, in PatientInput) (*entity.Patient, error) {
	if err := s.Validator.Check(patientSchema, in.fields(), validation.Update); err != nil {
		return nil, err
	}
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	in.apply(p)
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, storeError(err)
	}
	s.index(ctx, *p)
	return p, nil
}

// Delete refuses to remove a patient that still has appointments.
func (s *PatientService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return storeError(err)
	}
	n, err := s.Appointments.CountByPatient(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return deleteError(err)
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.warn(err, id, "patient index remove failed")
		}
	}
	return nil
}

// Search matches q against name, surname, national id and insurance provider.
// The index answers when configured; any index failure falls back to the database.
func (s *PatientService) Search(ctx context.Context, q string, limit int) ([]entity.Patient, error) {
	q = strings.TrimSpace(q)
	if err := s.Validator.Check(searchSchema, validation.Fields{"q": q}, validation.Create); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = defaultSearchLimit
	}
	if s.Index != nil {
		out, err := s.Index.Search(ctx, q, limit)
		if err == nil {
			return out, nil
		}
		s.warn(err, 0, "patient index search failed, using database")
	}
	return s.Repo.Search(ctx, q, limit)
}

func (s *PatientService) index(ctx context.Context, p entity.Patient) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, p); err != nil {
		s.warn(err, p.ID, "patient index failed")
	}
}

func (s *PatientService) warn(err error, id int64, msg string) {
	if s.Logger == nil {
		return
	}
	entry := s.Logger.WithError(err)
	if id > 0 {
		entry = entry.WithField("patient_id", id)
	}
	entry.Warn(msg)
}
