package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-clinic-api/config"
	"github.com/oksasatya/go-clinic-api/internal/infrastructure/memory"
	"github.com/oksasatya/go-clinic-api/internal/router"
	"github.com/oksasatya/go-clinic-api/pkg/client"
	"github.com/oksasatya/go-clinic-api/pkg/helpers"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := &config.Config{AppName: "clinic-test", Env: "test", BcryptCost: 4}
	r, err := router.NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	reg := router.NewRegistry(r)
	router.InitModules(reg, router.Deps{
		Config: cfg,
		Logger: helpers.NewDiscardLogger(),
		JWT:    helpers.NewJWTManager("test-secret", 4*time.Hour),
		Stores: router.MemoryStores(memory.NewStore()),
	})
	reg.RegisterAll()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClinicFlow(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := client.New(srv.URL, client.WithInterceptors(client.InvalidateOn401))

	if _, err := c.Register(ctx, "Ana", "ana@example.com", "12345678"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Login(ctx, "ana@example.com", "12345678"); err != nil {
		t.Fatal(err)
	}

	doctors := client.NewListView(c.Doctors(), func(d client.Doctor) int64 { return d.ID })
	if err := doctors.Load(ctx); err != nil {
		t.Fatal(err)
	}
	df := client.NewForm(c.Doctors(), 0, doctors)
	doc, err := df.Submit(ctx, client.Doctor{Nombre: "Luis", Apellido: "Paz", Especialidad: "Clinica", Matricula: "MP100"})
	if err != nil {
		t.Fatal(err)
	}
	if len(doctors.Items()) != 1 {
		t.Fatalf("doctors after create = %+v", doctors.Items())
	}

	if _, err := df.Submit(ctx, client.Doctor{Nombre: "Otro", Apellido: "Medico", Especialidad: "Pediatria", Matricula: "MP100"}); err == nil {
		t.Fatal("duplicate matricula accepted")
	}
	if df.FieldError("matricula") == "" {
		t.Fatal("no matricula violation")
	}

	pat, err := c.Patients().Create(ctx, client.Patient{
		Nombre: "Eva", Apellido: "Sosa", DNI: "30111222", FechaNacimiento: "1990-05-01", ObraSocial: "OSDE",
	})
	if err != nil {
		t.Fatal(err)
	}

	turnos := client.NewListView(c.Appointments(), func(a client.Appointment) int64 { return a.ID })
	tf := client.NewForm(c.Appointments(), 0, turnos)
	ap, err := tf.Submit(ctx, client.Appointment{IDPaciente: pat.ID, IDMedico: doc.ID, Fecha: "2026-11-02", Hora: "10:30"})
	if err != nil {
		t.Fatal(err)
	}
	if ap.Estado != client.StatusPending {
		t.Fatalf("estado = %q", ap.Estado)
	}
	row, ok := turnos.Find(ap.ID)
	if !ok || row.PacienteApellido != "Sosa" || row.MedicoNombre != "Luis" {
		t.Fatalf("joined row = %+v", row)
	}

	if _, err := c.SetAppointmentStatus(ctx, ap.ID, client.StatusAttended); err != nil {
		t.Fatal(err)
	}
	got, err := c.Appointments().Get(ctx, ap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Estado != client.StatusAttended || got.Fecha != "2026-11-02" {
		t.Fatalf("turno after status change = %+v", got)
	}

	var apiErr *client.APIError
	err = doctors.Delete(ctx, doc.ID)
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusConflict {
		t.Fatalf("delete referenced doctor err = %v", err)
	}
	if doctors.Err() == nil {
		t.Fatal("list does not expose the failure")
	}

	if err := turnos.Delete(ctx, ap.ID); err != nil {
		t.Fatal(err)
	}
	if err := doctors.Delete(ctx, doc.ID); err != nil {
		t.Fatal(err)
	}
	if len(doctors.Items()) != 0 {
		t.Fatalf("doctors after delete = %+v", doctors.Items())
	}
}

func TestExpiredTokenEndsSession(t *testing.T) {
	srv := newServer(t)
	store := &client.MemoryStore{}
	_ = store.Save(client.Session{Token: "not-a-jwt", Username: "ana@example.com"})

	c := client.New(srv.URL, client.WithStore(store), client.WithInterceptors(client.InvalidateOn401))
	if err := c.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	_, err := c.Users().List(context.Background())
	if !errors.Is(err, client.ErrSessionExpired) {
		t.Fatalf("err = %v", err)
	}
	if _, ok := c.Session(); ok {
		t.Fatal("session kept after 401")
	}
}
