package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	repo "github.com/oksasatya/go-clinic-api/internal/domain/repository"
	"github.com/oksasatya/go-clinic-api/pkg/helpers"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

var userSchema = validation.Schema{
	{Field: "nombre", Tags: "required,max=50,personname"},
	{Field: "email", Tags: "required,email,max=100"},
	{Field: "contraseña", Tags: "required,pwd"},
}

type UserService struct {
	Repo       repo.UserRepository
	Validator  *validation.Validator
	Notifier   Notifier
	Logger     *logrus.Logger
	BcryptCost int
}

func NewUserService(r repo.UserRepository, v *validation.Validator, n Notifier, logger *logrus.Logger, bcryptCost int) *UserService {
	if n == nil {
		n = nopNotifier{}
	}
	return &UserService{Repo: r, Validator: v, Notifier: n, Logger: logger, BcryptCost: bcryptCost}
}

type UserInput struct {
	Name     *string
	Email    *string
	Password *string
}

func (in UserInput) fields() validation.Fields {
	f := validation.Fields{}
	validation.Put(f, "nombre", in.Name)
	validation.Put(f, "email", in.Email)
	validation.Put(f, "contraseña", in.Password)
	return f
}

// Register creates an account. The password is stored as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, in UserInput) (*entity.User, error) {
	if err := s.Validator.Check(userSchema, in.fields(), validation.Create); err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(*in.Password, s.BcryptCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: *in.Name, Email: *in.Email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, storeError(err)
	}
	registrations.Add(1)

	if err := s.Notifier.UserRegistered(ctx, *u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("user registered notification failed")
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return u, nil
}

// Update changes only the supplied fields; a new password is rehashed.
func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (*entity.User, error) {
	if err := s.Validator.Check(userSchema, in.fields(), validation.Update); err != nil {
		return nil, err
	}
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password, s.BcryptCost)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, storeError(err)
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
