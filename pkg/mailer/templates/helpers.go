package templates

import "time"

// NewWelcomeData builds the payload of the welcome email sent after registration.
func NewWelcomeData(appName, name, email string, at time.Time) map[string]any {
	return ToMap(EmailData{
		Name:         name,
		Email:        email,
		AppName:      appName,
		RegisteredAt: at.UTC(),
	})
}
