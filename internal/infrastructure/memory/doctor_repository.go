package memory

import (
	"context"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/internal/domain/repository"
)

type DoctorRepository struct{ s *Store }

func (r *DoctorRepository) List(_ context.Context) ([]entity.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Doctor, 0, len(r.s.doctors))
	for _, id := range sortedKeys(r.s.doctors) {
		out = append(out, r.s.doctors[id])
	}
	return out, nil
}

func (r *DoctorRepository) GetByID(_ context.Context, id int64) (*entity.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.doctors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *DoctorRepository) Create(_ context.Context, d *entity.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.licenseTaken(d.LicenseNumber, 0) {
		return duplicate("medicos_matricula_key")
	}
	r.s.nextDoctor++
	d.ID = r.s.nextDoctor
	d.CreatedAt = r.s.now()
	d.UpdatedAt = d.CreatedAt
	r.s.doctors[d.ID] = *d
	return nil
}

func (r *DoctorRepository) Update(_ context.Context, d *entity.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.doctors[d.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.licenseTaken(d.LicenseNumber, d.ID) {
		return duplicate("medicos_matricula_key")
	}
	d.CreatedAt = cur.CreatedAt
	d.UpdatedAt = r.s.now()
	r.s.doctors[d.ID] = *d
	return nil
}

func (r *DoctorRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[id]; !ok {
		return repository.ErrNotFound
	}
	for _, a := range r.s.appointments {
		if a.DoctorID == id {
			return referenced("turnos_id_medico_fkey")
		}
	}
	delete(r.s.doctors, id)
	return nil
}

func (r *DoctorRepository) licenseTaken(license string, except int64) bool {
	for id, d := range r.s.doctors {
		if id != except && d.LicenseNumber == license {
			return true
		}
	}
	return false
}

var _ repository.DoctorRepository = (*DoctorRepository)(nil)
