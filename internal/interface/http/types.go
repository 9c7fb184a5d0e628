package handlers

import (
	"reflect"
	"time"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
)

var typeOfInt64 = reflect.TypeOf(int64(0))

type userDTO struct {
	ID        int64     `json:"id_usuario"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u *entity.User) userDTO {
	return userDTO{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

type doctorDTO struct {
	ID            int64  `json:"id_medico"`
	Name          string `json:"nombre"`
	Surname       string `json:"apellido"`
	Specialty     string `json:"especialidad"`
	LicenseNumber string `json:"matricula"`
}

func toDoctorDTO(d *entity.Doctor) doctorDTO {
	return doctorDTO{ID: d.ID, Name: d.Name, Surname: d.Surname, Specialty: d.Specialty, LicenseNumber: d.LicenseNumber}
}

type patientDTO struct {
	ID                int64  `json:"id_paciente"`
	Name              string `json:"nombre"`
	Surname           string `json:"apellido"`
	NationalID        string `json:"dni"`
	BirthDate         string `json:"fecha_nacimiento"`
	InsuranceProvider string `json:"obra_social"`
}

func toPatientDTO(p *entity.Patient) patientDTO {
	return patientDTO{
		ID:                p.ID,
		Name:              p.Name,
		Surname:           p.Surname,
		NationalID:        p.NationalID,
		BirthDate:         p.BirthDate,
		InsuranceProvider: p.InsuranceProvider,
	}
}

type appointmentDTO struct {
	ID             int64  `json:"id_turno"`
	PatientID      int64  `json:"id_paciente"`
	DoctorID       int64  `json:"id_medico"`
	Date           string `json:"fecha"`
	Time           string `json:"hora"`
	Status         string `json:"estado"`
	Notes          string `json:"observaciones"`
	PatientName    string `json:"paciente_nombre,omitempty"`
	PatientSurname string `json:"paciente_apellido,omitempty"`
	DoctorName     string `json:"medico_nombre,omitempty"`
	DoctorSurname  string `json:"medico_apellido,omitempty"`
}

func toAppointmentDTO(a *entity.Appointment) appointmentDTO {
	return appointmentDTO{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		Date:      a.Date,
		Time:      a.Time,
		Status:    string(a.Status),
		Notes:     a.Notes,
	}
}

func toAppointmentDetailDTO(d *entity.AppointmentDetail) appointmentDTO {
	out := toAppointmentDTO(&d.Appointment)
	out.PatientName = d.PatientName
	out.PatientSurname = d.PatientSurname
	out.DoctorName = d.DoctorName
	out.DoctorSurname = d.DoctorSurname
	return out
}
