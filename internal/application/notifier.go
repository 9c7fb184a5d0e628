package application

import (
	"context"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
)

// Notifier is told about events other processes react to, such as the
// welcome email. Implementations must not block for long.
type Notifier interface {
	UserRegistered(ctx context.Context, u entity.User) error
}

type nopNotifier struct{}

func (nopNotifier) UserRegistered(context.Context, entity.User) error { return nil }
