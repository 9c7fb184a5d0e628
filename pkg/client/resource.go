package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Resource is the typed CRUD surface of one API collection.
// T is what the server returns, In is what create and update send.
type Resource[T, In any] struct {
	c        *Client
	path     string
	singular string
	plural   string

	// updateBody reshapes In for PUT when the server accepts fewer fields.
	updateBody func(In) any
}

func NewResource[T, In any](c *Client, path, singular, plural string) *Resource[T, In] {
	return &Resource[T, In]{c: c, path: path, singular: singular, plural: plural}
}

func (c *Client) Users() *Resource[User, UserInput] {
	return NewResource[User, UserInput](c, "/usuarios", "usuario", "usuarios")
}

func (c *Client) Doctors() *Resource[Doctor, Doctor] {
	return NewResource[Doctor, Doctor](c, "/medicos", "medico", "medicos")
}

func (c *Client) Patients() *Resource[Patient, Patient] {
	return NewResource[Patient, Patient](c, "/pacientes", "paciente", "pacientes")
}

func (c *Client) Appointments() *Resource[Appointment, Appointment] {
	r := NewResource[Appointment, Appointment](c, "/turnos", "turno", "turnos")
	r.updateBody = func(a Appointment) any {
		return AppointmentUpdate{Estado: a.Estado, Observaciones: &a.Observaciones}
	}
	return r
}

func (r *Resource[T, In]) List(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.path)
}

func (r *Resource[T, In]) list(ctx context.Context, path string) ([]T, error) {
	var env map[string]json.RawMessage
	if err := r.c.send(ctx, http.MethodGet, path, nil, &env, true); err != nil {
		return nil, err
	}
	var out []T
	if raw, ok := env[r.plural]; ok {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.plural, err)
		}
	}
	return out, nil
}

func (r *Resource[T, In]) Get(ctx context.Context, id int64) (T, error) {
	return r.one(ctx, http.MethodGet, r.item(id), nil)
}

func (r *Resource[T, In]) Create(ctx context.Context, in In) (T, error) {
	return r.one(ctx, http.MethodPost, r.path, in)
}

func (r *Resource[T, In]) Update(ctx context.Context, id int64, in In) (T, error) {
	var body any = in
	if r.updateBody != nil {
		body = r.updateBody(in)
	}
	return r.one(ctx, http.MethodPut, r.item(id), body)
}

func (r *Resource[T, In]) Delete(ctx context.Context, id int64) error {
	return r.c.send(ctx, http.MethodDelete, r.item(id), nil, nil, true)
}

func (r *Resource[T, In]) item(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

func (r *Resource[T, In]) one(ctx context.Context, method, path string, in any) (T, error) {
	var zero T
	var env map[string]json.RawMessage
	if err := r.c.send(ctx, method, path, in, &env, true); err != nil {
		return zero, err
	}
	raw, ok := env[r.singular]
	if !ok {
		return zero, fmt.Errorf("response has no %q", r.singular)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("decode %s: %w", r.singular, err)
	}
	return out, nil
}

// SearchPatients calls GET /pacientes/buscar.
func (c *Client) SearchPatients(ctx context.Context, q string, limit int) ([]Patient, error) {
	v := url.Values{"q": {q}}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return c.Patients().list(ctx, "/pacientes/buscar?"+v.Encode())
}

// SetAppointmentStatus changes only the status of an appointment.
func (c *Client) SetAppointmentStatus(ctx context.Context, id int64, estado string) (Appointment, error) {
	r := c.Appointments()
	return r.one(ctx, http.MethodPut, r.item(id), AppointmentUpdate{Estado: estado})
}
