package memory

import (
	"context"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/internal/domain/repository"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.User, 0, len(r.s.users))
	for _, id := range sortedKeys(r.s.users) {
		out = append(out, r.s.users[id])
	}
	return out, nil
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, 0) {
		return duplicate("usuarios_email_key")
	}
	r.s.nextUser++
	u.ID = r.s.nextUser
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return duplicate("usuarios_email_key")
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = r.s.now()
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

// caller holds the lock
func (r *UserRepository) emailTaken(email string, except int64) bool {
	for id, u := range r.s.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

var _ repository.UserRepository = (*UserRepository)(nil)
