// Package queue publishes domain events as RabbitMQ jobs.
package queue

import (
	"context"
	"time"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/pkg/mailer"
	mailtpl "github.com/oksasatya/go-clinic-api/pkg/mailer/templates"
)

// Publisher is satisfied by *helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier turns a registration into a welcome email job for cmd/email_worker.
type EmailNotifier struct {
	Pub     Publisher
	AppName string
}

func NewEmailNotifier(pub Publisher, appName string) *EmailNotifier {
	return &EmailNotifier{Pub: pub, AppName: appName}
}

func (n *EmailNotifier) UserRegistered(ctx context.Context, u entity.User) error {
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.AppName, u.Name, u.Email, u.CreatedAt),
	}
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return n.Pub.PublishJSON(c, job)
}
