package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/internal/domain/repository"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) List(ctx context.Context) ([]entity.AppointmentDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id_turno, t.id_paciente, t.id_medico,
		       to_char(t.fecha, 'YYYY-MM-DD'), to_char(t.hora, 'HH24:MI'),
		       t.estado, t.observaciones, t.created_at, t.updated_at,
		       p.nombre, p.apellido, m.nombre, m.apellido
		FROM turnos t
		JOIN pacientes p ON p.id_paciente = t.id_paciente
		JOIN medicos m ON m.id_medico = t.id_medico
		ORDER BY t.fecha, t.hora
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.AppointmentDetail{}
	for rows.Next() {
		var d entity.AppointmentDetail
		if err := rows.Scan(
			&d.ID, &d.PatientID, &d.DoctorID, &d.Date, &d.Time,
			&d.Status, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
			&d.PatientName, &d.PatientSurname, &d.DoctorName, &d.DoctorSurname,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	a := &entity.Appointment{}
	err := r.pool.QueryRow(ctx, `
		SELECT id_turno, id_paciente, id_medico,
		       to_char(fecha, 'YYYY-MM-DD'), to_char(hora, 'HH24:MI'),
		       estado, observaciones, created_at, updated_at
		FROM turnos WHERE id_turno = $1
	`, id).Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Time,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO turnos (id_paciente, id_medico, fecha, hora, estado, observaciones)
		VALUES ($1, $2, $3::date, $4::time, $5, $6)
		RETURNING id_turno, created_at, updated_at
	`, a.PatientID, a.DoctorID, a.Date, a.Time, a.Status, a.Notes)
	return mapErr(row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

func (r *AppointmentRepository) UpdateStatusNotes(ctx context.Context, a *entity.Appointment) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE turnos
		SET estado = $1, observaciones = $2, updated_at = now()
		WHERE id_turno = $3
		RETURNING updated_at
	`, a.Status, a.Notes, a.ID)
	return mapErr(row.Scan(&a.UpdatedAt))
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM turnos WHERE id_turno = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) CountByDoctor(ctx context.Context, doctorID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM turnos WHERE id_medico = $1`, doctorID).Scan(&n)
	return n, err
}

func (r *AppointmentRepository) CountByPatient(ctx context.Context, patientID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM turnos WHERE id_paciente = $1`, patientID).Scan(&n)
	return n, err
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)
