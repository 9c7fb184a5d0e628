package entity

import "time"

// Patient dates are kept as YYYY-MM-DD strings so they round-trip exactly.
type Patient struct {
	ID                int64
	Name              string
	Surname           string
	NationalID        string
	BirthDate         string
	InsuranceProvider string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
