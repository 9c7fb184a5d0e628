package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/go-clinic-api/internal/domain/repository"
	"github.com/oksasatya/go-clinic-api/pkg/helpers"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

var loginSchema = validation.Schema{
	{Field: "email", Tags: "required,email,max=100"},
	{Field: "contraseña", Tags: "required"},
}

type AuthService struct {
	Users      repo.UserRepository
	JWT        *helpers.JWTManager
	Validator  *validation.Validator
	Logger     *logrus.Logger
	BcryptCost int
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, v *validation.Validator, logger *logrus.Logger, bcryptCost int) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Validator: v, Logger: logger, BcryptCost: bcryptCost}
}

type LoginInput struct {
	Email    *string
	Password *string
}

// Session is what a successful login hands back to the caller.
type Session struct {
	UserID    int64
	Token     string
	Username  string
	ExpiresAt time.Time
}

// Login verifies the credentials and issues a token. Unknown email and wrong
// password both fail with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	f := validation.Fields{}
	validation.Put(f, "email", in.Email)
	validation.Put(f, "contraseña", in.Password)
	if err := s.Validator.Check(loginSchema, f, validation.Create); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(*in.Email)

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		helpers.BurnCompare(*in.Password, s.BcryptCost)
		s.failed(email, "unknown email")
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, *in.Password) {
		s.failed(email, "password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}
	loginsOK.Add(1)
	return &Session{UserID: u.ID, Token: token, Username: u.Email, ExpiresAt: exp}, nil
}

func (s *AuthService) failed(email, reason string) {
	loginsFailed.Add(1)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"email": email, "reason": reason}).Warn("login failed")
	}
}
