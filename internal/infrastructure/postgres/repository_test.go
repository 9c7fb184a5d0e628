package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/internal/domain/repository"
	"github.com/oksasatya/go-clinic-api/pkg/helpers"
)

// setup needs a disposable database in DATABASE_URL; migrations are applied to it.
func setup(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../.env")
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	if err := Migrate(dsn, "../../../db/migrations", helpers.NewDiscardLogger()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	pool, err := NewPool(context.Background(), dsn, 4, 1, time.Minute)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// token is unique per call so tests can share a database.
func token() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] }

// dni returns a fresh 8 digit national id.
func dni() string { return fmt.Sprintf("%08d", uuid.New().ID()%100000000) }

func constraintOf(t *testing.T, err error) string {
	t.Helper()
	var cv repository.ConstraintViolation
	if !errors.As(err, &cv) {
		t.Fatalf("err = %v, want a constraint violation", err)
	}
	return cv.Constraint()
}

func newPatient(t *testing.T, r *PatientRepository, obraSocial string) *entity.Patient {
	t.Helper()
	p := &entity.Patient{Name: "Ana", Surname: "Gómez", NationalID: dni(), BirthDate: "1990-02-28", InsuranceProvider: obraSocial}
	if err := r.Create(context.Background(), p); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	t.Cleanup(func() { _ = r.Delete(context.Background(), p.ID) })
	return p
}

func newDoctor(t *testing.T, r *DoctorRepository) *entity.Doctor {
	t.Helper()
	d := &entity.Doctor{Name: "Laura", Surname: "Pérez", Specialty: "Cardiología", LicenseNumber: "MN" + token()}
	if err := r.Create(context.Background(), d); err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	t.Cleanup(func() { _ = r.Delete(context.Background(), d.ID) })
	return d
}

func TestPatientRoundTripAndDuplicateDNI(t *testing.T) {
	pool := setup(t)
	ctx := context.Background()
	r := NewPatientRepository(pool)

	p := newPatient(t, r, "OSDE")
	got, err := r.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ana" || got.Surname != "Gómez" || got.NationalID != p.NationalID ||
		got.BirthDate != "1990-02-28" || got.InsuranceProvider != "OSDE" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	dup := &entity.Patient{Name: "Eva", Surname: "Sosa", NationalID: p.NationalID, BirthDate: "2000-01-01", InsuranceProvider: "PAMI"}
	err = r.Create(ctx, dup)
	if !errors.Is(err, repository.ErrDuplicate) || constraintOf(t, err) != "pacientes_dni_key" {
		t.Fatalf("duplicate dni err = %v", err)
	}

	if _, err := r.GetByID(ctx, -1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("missing patient err = %v", err)
	}
	if err := r.Delete(ctx, -1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("delete missing err = %v", err)
	}
}

func TestPatientSearchEscapesWildcards(t *testing.T) {
	pool := setup(t)
	r := NewPatientRepository(pool)
	tok := token()

	literal := newPatient(t, r, tok+"%X")
	newPatient(t, r, tok+"aX")
	newPatient(t, r, tok+"_Y")

	out, err := r.Search(context.Background(), tok+"%", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 1 || out[0].ID != literal.ID {
		t.Fatalf("%% must match literally, got %+v", out)
	}

	out, err = r.Search(context.Background(), tok+"_", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 1 || out[0].InsuranceProvider != tok+"_Y" {
		t.Fatalf("_ must match literally, got %+v", out)
	}

	out, err = r.Search(context.Background(), strings.ToUpper(tok), 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("case insensitive search with limit 2 returned %d rows", len(out))
	}
}

func TestDoctorAndUserUniqueConstraints(t *testing.T) {
	pool := setup(t)
	ctx := context.Background()

	doctors := NewDoctorRepository(pool)
	d := newDoctor(t, doctors)
	err := doctors.Create(ctx, &entity.Doctor{Name: "Otro", Surname: "Medico", Specialty: "Clínica", LicenseNumber: d.LicenseNumber})
	if !errors.Is(err, repository.ErrDuplicate) || constraintOf(t, err) != "medicos_matricula_key" {
		t.Fatalf("duplicate matricula err = %v", err)
	}

	users := NewUserRepository(pool)
	u := &entity.User{Name: "Ana", Email: "ana-" + token() + "@example.com", Password: "hash"}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { _ = users.Delete(ctx, u.ID) })
	got, err := users.GetByEmail(ctx, u.Email)
	if err != nil || got.ID != u.ID || got.Password != "hash" {
		t.Fatalf("get by email = %+v, %v", got, err)
	}
	err = users.Create(ctx, &entity.User{Name: "Eva", Email: u.Email, Password: "hash"})
	if !errors.Is(err, repository.ErrDuplicate) || constraintOf(t, err) != "usuarios_email_key" {
		t.Fatalf("duplicate email err = %v", err)
	}
}

func TestAppointmentDateTimeAndForeignKeys(t *testing.T) {
	pool := setup(t)
	ctx := context.Background()
	patients := NewPatientRepository(pool)
	doctors := NewDoctorRepository(pool)
	appts := NewAppointmentRepository(pool)

	p := newPatient(t, patients, "OSDE")
	d := newDoctor(t, doctors)

	a := &entity.Appointment{PatientID: p.ID, DoctorID: d.ID, Date: "2031-12-31", Time: "09:05", Status: entity.StatusPending, Notes: "control"}
	if err := appts.Create(ctx, a); err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	t.Cleanup(func() { _ = appts.Delete(ctx, a.ID) })

	got, err := appts.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Date != "2031-12-31" || got.Time != "09:05" || got.Status != entity.StatusPending || got.Notes != "control" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	list, err := appts.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, row := range list {
		if row.ID == a.ID {
			found = row.PatientSurname == "Gómez" && row.DoctorName == "Laura" && row.Time == "09:05"
		}
	}
	if !found {
		t.Fatal("joined row missing or incomplete")
	}

	got.Status, got.Notes = entity.StatusAttended, "ok"
	if err := appts.UpdateStatusNotes(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	if n, err := appts.CountByDoctor(ctx, d.ID); err != nil || n != 1 {
		t.Fatalf("count by doctor = %d, %v", n, err)
	}

	err = doctors.Delete(ctx, d.ID)
	if !errors.Is(err, repository.ErrReferenced) || constraintOf(t, err) != "turnos_id_medico_fkey" {
		t.Fatalf("delete referenced doctor err = %v", err)
	}

	err = appts.Create(ctx, &entity.Appointment{PatientID: -1, DoctorID: d.ID, Date: "2031-12-31", Time: "10:00", Status: entity.StatusPending})
	if !errors.Is(err, repository.ErrReferenced) || constraintOf(t, err) != "turnos_id_paciente_fkey" {
		t.Fatalf("missing patient err = %v", err)
	}
}
