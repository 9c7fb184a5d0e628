package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/internal/domain/repository"
)

type PatientRepository struct {
	pool *pgxpool.Pool
}

func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

const patientColumns = `id_paciente, nombre, apellido, dni, to_char(fecha_nacimiento, 'YYYY-MM-DD'),
	obra_social, created_at, updated_at`

func scanPatient(row interface{ Scan(...any) error }, p *entity.Patient) error {
	return row.Scan(&p.ID, &p.Name, &p.Surname, &p.NationalID, &p.BirthDate,
		&p.InsuranceProvider, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PatientRepository) list(ctx context.Context, sql string, args ...any) ([]entity.Patient, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Patient{}
	for rows.Next() {
		var p entity.Patient
		if err := scanPatient(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PatientRepository) List(ctx context.Context) ([]entity.Patient, error) {
	return r.list(ctx, `SELECT `+patientColumns+` FROM pacientes ORDER BY apellido, nombre`)
}

func (r *PatientRepository) Search(ctx context.Context, q string, limit int) ([]entity.Patient, error) {
	pattern := "%" + strings.NewReplacer(`%`, `\%`, `_`, `\_`).Replace(q) + "%"
	return r.list(ctx, `
		SELECT `+patientColumns+`
		FROM pacientes
		WHERE nombre ILIKE $1 OR apellido ILIKE $1 OR dni ILIKE $1 OR obra_social ILIKE $1
		ORDER BY apellido, nombre
		LIMIT $2
	`, pattern, limit)
}

func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*entity.Patient, error) {
	p := &entity.Patient{}
	row := r.pool.QueryRow(ctx, `SELECT `+patientColumns+` FROM pacientes WHERE id_paciente = $1`, id)
	if err := scanPatient(row, p); err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *PatientRepository) Create(ctx context.Context, p *entity.Patient) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO pacientes (nombre, apellido, dni, fecha_nacimiento, obra_social)
		VALUES ($1, $2, $3, $4::date, $5)
		RETURNING id_paciente, created_at, updated_at
	`, p.Name, p.Surname, p.NationalID, p.BirthDate, p.InsuranceProvider)
	return mapErr(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *PatientRepository) Update(ctx context.Context, p *entity.Patient) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE pacientes
		SET nombre = $1, apellido = $2, dni = $3, fecha_nacimiento = $4::date, obra_social = $5, updated_at = now()
		WHERE id_paciente = $6
		RETURNING updated_at
	`, p.Name, p.Surname, p.NationalID, p.BirthDate, p.InsuranceProvider, p.ID)
	return mapErr(row.Scan(&p.UpdatedAt))
}

func (r *PatientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM pacientes WHERE id_paciente = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PatientRepository = (*PatientRepository)(nil)
