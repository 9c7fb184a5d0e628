package memory

import (
	"context"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/internal/domain/repository"
)

type PatientRepository struct{ s *Store }

func (r *PatientRepository) List(_ context.Context) ([]entity.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Patient, 0, len(r.s.patients))
	for _, id := range sortedKeys(r.s.patients) {
		out = append(out, r.s.patients[id])
	}
	return out, nil
}

func (r *PatientRepository) Search(_ context.Context, q string, limit int) ([]entity.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Patient{}
	for _, id := range sortedKeys(r.s.patients) {
		if len(out) >= limit {
			break
		}
		p := r.s.patients[id]
		if containsFold(p.Name, q) || containsFold(p.Surname, q) ||
			containsFold(p.NationalID, q) || containsFold(p.InsuranceProvider, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PatientRepository) GetByID(_ context.Context, id int64) (*entity.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *PatientRepository) Create(_ context.Context, p *entity.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.dniTaken(p.NationalID, 0) {
		return duplicate("pacientes_dni_key")
	}
	r.s.nextPatient++
	p.ID = r.s.nextPatient
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	r.s.patients[p.ID] = *p
	return nil
}

func (r *PatientRepository) Update(_ context.Context, p *entity.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.patients[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.dniTaken(p.NationalID, p.ID) {
		return duplicate("pacientes_dni_key")
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.s.now()
	r.s.patients[p.ID] = *p
	return nil
}

func (r *PatientRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.patients[id]; !ok {
		return repository.ErrNotFound
	}
	for _, a := range r.s.appointments {
		if a.PatientID == id {
			return referenced("turnos_id_paciente_fkey")
		}
	}
	delete(r.s.patients, id)
	return nil
}

func (r *PatientRepository) dniTaken(dni string, except int64) bool {
	for id, p := range r.s.patients {
		if id != except && p.NationalID == dni {
			return true
		}
	}
	return false
}

var _ repository.PatientRepository = (*PatientRepository)(nil)
