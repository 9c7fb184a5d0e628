package application

import (
	"context"
	"testing"
	"time"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/internal/infrastructure/memory"
	"github.com/oksasatya/go-clinic-api/pkg/helpers"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

type fixture struct {
	store        *memory.Store
	jwt          *helpers.JWTManager
	auth         *AuthService
	users        *UserService
	doctors      *DoctorService
	patients     *PatientService
	appointments *AppointmentService
	notified     []entity.User
}

func (f *fixture) UserRegistered(_ context.Context, u entity.User) error {
	f.notified = append(f.notified, u)
	return nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	v := validation.New()
	log := helpers.NewDiscardLogger()
	f := &fixture{store: store, jwt: helpers.NewJWTManager("test-secret", 4*time.Hour)}
	f.auth = NewAuthService(store.Users(), f.jwt, v, log, 4)
	f.users = NewUserService(store.Users(), v, f, log, 4)
	f.doctors = NewDoctorService(store.Doctors(), store.Appointments(), v)
	f.patients = NewPatientService(store.Patients(), store.Appointments(), nil, v, log)
	f.appointments = NewAppointmentService(store.Appointments(), store.Patients(), store.Doctors(), v)
	return f
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) doctor(t *testing.T) *entity.Doctor {
	t.Helper()
	d, err := f.doctors.Create(context.Background(), DoctorInput{
		Name: ptr("Laura"), Surname: ptr("Pérez"), Specialty: ptr("Cardiología"), LicenseNumber: ptr("MN1234"),
	})
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return d
}

func (f *fixture) patient(t *testing.T) *entity.Patient {
	t.Helper()
	p, err := f.patients.Create(context.Background(), PatientInput{
		Name: ptr("Ana"), Surname: ptr("Gómez"), NationalID: ptr("30111222"),
		BirthDate: ptr("1990-01-01"), InsuranceProvider: ptr("OSDE"),
	})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return p
}
