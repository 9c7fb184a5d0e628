package entity

import (
	"time"
)

// User is an account able to log in to the clinic back office.
// Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
