package queue

import (
	"context"
	"testing"
	"time"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/pkg/mailer"
	mailtpl "github.com/oksasatya/go-clinic-api/pkg/mailer/templates"
)

type capture struct{ bodies []any }

func (c *capture) PublishJSON(_ context.Context, body any) error {
	c.bodies = append(c.bodies, body)
	return nil
}

func TestUserRegisteredPublishesWelcomeJob(t *testing.T) {
	pub := &capture{}
	n := NewEmailNotifier(pub, "Clínica")
	u := entity.User{ID: 1, Name: "Ana", Email: "ana@example.com", CreatedAt: time.Now()}
	if err := n.UserRegistered(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	if len(pub.bodies) != 1 {
		t.Fatalf("published %d messages", len(pub.bodies))
	}
	job, ok := pub.bodies[0].(mailer.EmailJob)
	if !ok {
		t.Fatalf("body is %T", pub.bodies[0])
	}
	if job.To != "ana@example.com" || job.Template != mailtpl.Welcome || job.Data["Name"] != "Ana" {
		t.Fatalf("job = %+v", job)
	}
}
