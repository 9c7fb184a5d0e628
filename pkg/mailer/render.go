package mailer

import (
	"errors"

	mailtpl "github.com/oksasatya/go-clinic-api/pkg/mailer/templates"
)

var ErrEmptyJob = errors.New("email job has no recipient")

// Render resolves the subject and bodies of a job, rendering its template when set.
func Render(job EmailJob) (subject, text, html string, err error) {
	if job.To == "" {
		return "", "", "", ErrEmptyJob
	}
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", err
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return subject, text, html, nil
}
