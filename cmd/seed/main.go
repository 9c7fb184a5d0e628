package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-clinic-api/config"
	"github.com/oksasatya/go-clinic-api/internal/application"
	pginfra "github.com/oksasatya/go-clinic-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-clinic-api/pkg/helpers"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

// Seeds a demo account, doctor and patient through the application services,
// so the same rules apply as over HTTP. Safe to run more than once.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	v := validation.New()
	appts := pginfra.NewAppointmentRepository(pool)
	users := application.NewUserService(pginfra.NewUserRepository(pool), v, nil, logger, cfg.BcryptCost)
	doctors := application.NewDoctorService(pginfra.NewDoctorRepository(pool), appts, v)
	patients := application.NewPatientService(pginfra.NewPatientRepository(pool), appts, nil, v, logger)

	email, password := "demo@clinica.local", "password123"
	u, err := users.Register(ctx, application.UserInput{Name: str("Usuario Demo"), Email: &email, Password: &password})
	report("user", err, func() string { return fmt.Sprintf("id=%d email=%s password=%s", u.ID, email, password) })

	d, err := doctors.Create(ctx, application.DoctorInput{
		Name: str("Laura"), Surname: str("Pérez"), Specialty: str("Cardiología"), LicenseNumber: str("MN1234"),
	})
	report("doctor", err, func() string { return fmt.Sprintf("id=%d matricula=%s", d.ID, d.LicenseNumber) })

	p, err := patients.Create(ctx, application.PatientInput{
		Name: str("Ana"), Surname: str("Gómez"), NationalID: str("30111222"),
		BirthDate: str("1990-01-01"), InsuranceProvider: str("OSDE"),
	})
	report("patient", err, func() string { return fmt.Sprintf("id=%d dni=%s", p.ID, p.NationalID) })
}

func report(what string, err error, ok func() string) {
	var verr *validation.Error
	switch {
	case err == nil:
		fmt.Printf("seeded %s: %s\n", what, ok())
	case errors.As(err, &verr):
		// unique constraint hit on a previous run
		fmt.Printf("%s already present (%v)\n", what, verr)
	default:
		log.Fatalf("failed to seed %s: %v", what, err)
	}
}

func str(s string) *string { return &s }
