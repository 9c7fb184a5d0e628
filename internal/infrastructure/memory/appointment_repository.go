package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/internal/domain/repository"
)

type AppointmentRepository struct{ s *Store }

func (r *AppointmentRepository) List(_ context.Context) ([]entity.AppointmentDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.AppointmentDetail, 0, len(r.s.appointments))
	for _, id := range sortedKeys(r.s.appointments) {
		a := r.s.appointments[id]
		p := r.s.patients[a.PatientID]
		d := r.s.doctors[a.DoctorID]
		out = append(out, entity.AppointmentDetail{
			Appointment:    a,
			PatientName:    p.Name,
			PatientSurname: p.Surname,
			DoctorName:     d.Name,
			DoctorSurname:  d.Surname,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *AppointmentRepository) GetByID(_ context.Context, id int64) (*entity.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *AppointmentRepository) Create(_ context.Context, a *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.patients[a.PatientID]; !ok {
		return referenced("turnos_id_paciente_fkey")
	}
	if _, ok := r.s.doctors[a.DoctorID]; !ok {
		return referenced("turnos_id_medico_fkey")
	}
	r.s.nextAppointment++
	a.ID = r.s.nextAppointment
	a.CreatedAt = r.s.now()
	a.UpdatedAt = a.CreatedAt
	r.s.appointments[a.ID] = *a
	return nil
}

func (r *AppointmentRepository) UpdateStatusNotes(_ context.Context, a *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.appointments[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Status = a.Status
	cur.Notes = a.Notes
	cur.UpdatedAt = r.s.now()
	r.s.appointments[a.ID] = cur
	*a = cur
	return nil
}

func (r *AppointmentRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.appointments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.appointments, id)
	return nil
}

func (r *AppointmentRepository) CountByDoctor(_ context.Context, doctorID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, a := range r.s.appointments {
		if a.DoctorID == doctorID {
			n++
		}
	}
	return n, nil
}

func (r *AppointmentRepository) CountByPatient(_ context.Context, patientID int64) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, a := range r.s.appointments {
		if a.PatientID == patientID {
			n++
		}
	}
	return n, nil
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)
