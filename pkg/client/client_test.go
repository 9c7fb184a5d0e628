package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewDoesNotReadStore(t *testing.T) {
	store := &MemoryStore{}
	_ = store.Save(Session{Token: "tok", Username: "ana@example.com"})

	c := New("http://unused", WithStore(store))
	if _, ok := c.Session(); ok {
		t.Fatal("session loaded before Restore")
	}
	if err := c.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	s, ok := c.Session()
	if !ok || s.Username != "ana@example.com" {
		t.Fatalf("restored session = %+v", s)
	}
}

func TestRestoreDropsExpiredSession(t *testing.T) {
	store := &MemoryStore{}
	_ = store.Save(Session{Token: "tok", ExpiresAt: time.Now().Add(-time.Minute)})

	c := New("http://unused", WithStore(store))
	if err := c.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Session(); ok {
		t.Fatal("expired session kept")
	}
	if s, _ := store.Load(); s.Valid() {
		t.Fatal("expired session left in store")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json"))
	if s, err := fs.Load(); err != nil || s.Valid() {
		t.Fatalf("empty load = %+v, %v", s, err)
	}
	want := Session{Token: "abc", Username: "ana@example.com"}
	if err := fs.Save(want); err != nil {
		t.Fatal(err)
	}
	got, err := fs.Load()
	if err != nil || got.Token != want.Token || got.Username != want.Username {
		t.Fatalf("load = %+v, %v", got, err)
	}
	if err := fs.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := fs.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestDoWithoutTokenSendsNothing(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Doctors().List(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("err = %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatal("request reached the server")
	}
}

func TestLoginAndBearerHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["contraseña"] != "12345678" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"success":false,"error":"invalid credentials"}`))
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"token":"tok","username":"ana@example.com"}`))
		case "/medicos":
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"medicos":[{"id_medico":1,"nombre":"Luis","apellido":"Paz","especialidad":"Clinica","matricula":"MP1"}]}`))
		}
	}))
	defer srv.Close()

	store := &MemoryStore{}
	c := New(srv.URL, WithStore(store))

	_, err := c.Login(context.Background(), "ana@example.com", "wrong-pass")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest || apiErr.Message != "invalid credentials" {
		t.Fatalf("bad login err = %v", err)
	}
	if _, ok := c.Session(); ok {
		t.Fatal("failed login created a session")
	}

	if _, err := c.Login(context.Background(), "ana@example.com", "12345678"); err != nil {
		t.Fatal(err)
	}
	if s, _ := store.Load(); s.Token != "tok" {
		t.Fatalf("stored session = %+v", s)
	}
	docs, err := c.Doctors().List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Matricula != "MP1" {
		t.Fatalf("doctors = %+v", docs)
	}
}

func TestInvalidateOn401ClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":"invalid token"}`))
	}))
	defer srv.Close()

	store := &MemoryStore{}
	_ = store.Save(Session{Token: "stale"})
	c := New(srv.URL, WithStore(store), WithInterceptors(InvalidateOn401))
	if err := c.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}

	_, err := c.Patients().List(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("err = %v", err)
	}
	if _, ok := c.Session(); ok {
		t.Fatal("session still set")
	}
	if s, _ := store.Load(); s.Valid() {
		t.Fatal("store not cleared")
	}
}

func TestWithout401InterceptorSessionIsKept(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := &MemoryStore{}
	_ = store.Save(Session{Token: "stale"})
	c := New(srv.URL, WithStore(store))
	_ = c.Restore(context.Background())

	_, err := c.Patients().List(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("err = %v", err)
	}
	if _, ok := c.Session(); !ok {
		t.Fatal("session cleared without interceptor")
	}
}

func TestRegisterShortPasswordMakesNoRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Register(context.Background(), "Ana", "ana@example.com", "1234567")
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("err = %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatal("request reached the server")
	}
}

func TestFormMapsViolations(t *testing.T) {
	var puts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/pacientes":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"errores":[{"path":"dni","rule":"number","msg":"must contain digits only"},{"path":"nombre","rule":"required","msg":"nombre is required"}]}`))
		case r.Method == http.MethodPut && r.URL.Path == "/turnos/7":
			atomic.AddInt32(&puts, 1)
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			if _, ok := body["id_paciente"]; ok {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"turno":{"id_turno":7,"estado":"attended"}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/turnos":
			_, _ = w.Write([]byte(`{"success":true,"turnos":[{"id_turno":7,"estado":"attended"}]}`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.session = Session{Token: "tok"}
	ctx := context.Background()

	pf := NewForm(c.Patients(), 0, nil)
	if pf.Editing() {
		t.Fatal("create form reports edit mode")
	}
	if _, err := pf.Submit(ctx, Patient{DNI: "12ab"}); err == nil {
		t.Fatal("expected error")
	}
	if got := pf.FieldError("dni"); got != "must contain digits only" {
		t.Fatalf("dni error = %q", got)
	}
	if pf.FieldError("obra_social") != "" || pf.Err() != nil {
		t.Fatal("unexpected non-dni error")
	}

	list := NewListView(c.Appointments(), func(a Appointment) int64 { return a.ID })
	af := EditForm(list, Appointment{ID: 7, IDPaciente: 1, IDMedico: 2})
	if !af.Editing() {
		t.Fatal("edit form reports create mode")
	}
	got, err := af.Submit(ctx, Appointment{IDPaciente: 1, Estado: StatusAttended})
	if err != nil {
		t.Fatal(err)
	}
	if got.Estado != StatusAttended || atomic.LoadInt32(&puts) != 1 {
		t.Fatalf("turno = %+v", got)
	}
	if _, ok := list.Find(7); !ok {
		t.Fatal("list not reloaded after submit")
	}
}
