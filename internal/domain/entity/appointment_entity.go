package entity

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusAttended  AppointmentStatus = "attended"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment references a Patient and a Doctor by id only.
// Date is YYYY-MM-DD and Time is HH:MM.
type Appointment struct {
	ID        int64
	PatientID int64
	DoctorID  int64
	Date      string
	Time      string
	Status    AppointmentStatus
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentDetail is an Appointment joined with the names of its patient and doctor.
type AppointmentDetail struct {
	Appointment
	PatientName    string
	PatientSurname string
	DoctorName     string
	DoctorSurname  string
}
