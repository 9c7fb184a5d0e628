package entity

import "time"

// Doctor is independent from User; a doctor does not need an account.
type Doctor struct {
	ID            int64
	Name          string
	Surname       string
	Specialty     string
	LicenseNumber string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
