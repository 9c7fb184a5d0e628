package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-clinic-api/internal/domain/entity"
	"github.com/oksasatya/go-clinic-api/internal/domain/repository"
)

type DoctorRepository struct {
	pool *pgxpool.Pool
}

func NewDoctorRepository(pool *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{pool: pool}
}

const doctorColumns = `id_medico, nombre, apellido, especialidad, matricula, created_at, updated_at`

func scanDoctor(row interface{ Scan(...any) error }, d *entity.Doctor) error {
	return row.Scan(&d.ID, &d.Name, &d.Surname, &d.Specialty, &d.LicenseNumber, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DoctorRepository) List(ctx context.Context) ([]entity.Doctor, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+doctorColumns+` FROM medicos ORDER BY apellido, nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Doctor{}
	for rows.Next() {
		var d entity.Doctor
		if err := scanDoctor(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DoctorRepository) GetByID(ctx context.Context, id int64) (*entity.Doctor, error) {
	d := &entity.Doctor{}
	row := r.pool.QueryRow(ctx, `SELECT `+doctorColumns+` FROM medicos WHERE id_medico = $1`, id)
	if err := scanDoctor(row, d); err != nil {
		return nil, mapErr(err)
	}
	return d, nil
}

func (r *DoctorRepository) Create(ctx context.Context, d *entity.Doctor) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO medicos (nombre, apellido, especialidad, matricula)
		VALUES ($1, $2, $3, $4)
		RETURNING id_medico, created_at, updated_at
	`, d.Name, d.Surname, d.Specialty, d.LicenseNumber)
	return mapErr(row.Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt))
}

func (r *DoctorRepository) Update(ctx context.Context, d *entity.Doctor) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE medicos
		SET nombre = $1, apellido = $2, especialidad = $3, matricula = $4, updated_at = now()
		WHERE id_medico = $5
		RETURNING updated_at
	`, d.Name, d.Surname, d.Specialty, d.LicenseNumber, d.ID)
	return mapErr(row.Scan(&d.UpdatedAt))
}

func (r *DoctorRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM medicos WHERE id_medico = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.DoctorRepository = (*DoctorRepository)(nil)
