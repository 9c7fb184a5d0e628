package client

import "time"

type User struct {
	ID        int64     `json:"id_usuario"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserInput is the body for PUT /usuarios/:id; nil fields are left unchanged.
type UserInput struct {
	Nombre     *string `json:"nombre,omitempty"`
	Email      *string `json:"email,omitempty"`
	Contraseña *string `json:"contraseña,omitempty"`
}

type Doctor struct {
	ID           int64  `json:"id_medico,omitempty"`
	Nombre       string `json:"nombre"`
	Apellido     string `json:"apellido"`
	Especialidad string `json:"especialidad"`
	Matricula    string `json:"matricula"`
}

type Patient struct {
	ID              int64  `json:"id_paciente,omitempty"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	DNI             string `json:"dni"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	ObraSocial      string `json:"obra_social"`
}

// Appointment statuses accepted by the API.
const (
	StatusPending   = "pending"
	StatusAttended  = "attended"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	ID               int64  `json:"id_turno,omitempty"`
	IDPaciente       int64  `json:"id_paciente"`
	IDMedico         int64  `json:"id_medico"`
	Fecha            string `json:"fecha"`
	Hora             string `json:"hora"`
	Estado           string `json:"estado,omitempty"`
	Observaciones    string `json:"observaciones"`
	PacienteNombre   string `json:"paciente_nombre,omitempty"`
	PacienteApellido string `json:"paciente_apellido,omitempty"`
	MedicoNombre     string `json:"medico_nombre,omitempty"`
	MedicoApellido   string `json:"medico_apellido,omitempty"`
}

// AppointmentUpdate is all the edit form may change on an appointment.
type AppointmentUpdate struct {
	Estado        string  `json:"estado,omitempty"`
	Observaciones *string `json:"observaciones,omitempty"`
}
