package mailer

import (
	"strings"
	"testing"
	"time"

	mailtpl "github.com/oksasatya/go-clinic-api/pkg/mailer/templates"
)

func TestRenderWelcome(t *testing.T) {
	job := EmailJob{
		To:       "ana@example.com",
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData("Clínica Central", "Ana", "ana@example.com", time.Now()),
	}
	subject, text, html, err := Render(job)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(subject, "Clínica Central") {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(text, "Hola Ana") || !strings.Contains(html, "ana@example.com") {
		t.Fatalf("bodies missing recipient data:\n%s\n%s", text, html)
	}
}

func TestRenderRejectsJobWithoutRecipient(t *testing.T) {
	if _, _, _, err := Render(EmailJob{Subject: "x"}); err != ErrEmptyJob {
		t.Fatalf("err = %v, want ErrEmptyJob", err)
	}
}
