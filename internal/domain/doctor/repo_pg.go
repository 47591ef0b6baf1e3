package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const doctorCols = `id, user_id, specialty, department_id, license_number, phone, created_at, updated_at`

func (r *repoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.UserID, &d.Specialty, &d.DepartmentID, &d.LicenseNumber,
		&d.Phone, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctor (id, user_id, specialty, department_id, license_number, phone)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		d.ID, d.UserID, d.Specialty, d.DepartmentID, d.LicenseNumber, d.Phone)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrProfileExists
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return r.scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *repoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	return r.scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE user_id = $1`, userID))
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE doctor SET specialty=$2, department_id=$3, license_number=$4, phone=$5, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Specialty, d.DepartmentID, d.LicenseNumber, d.Phone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*DoctorDetail, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if filter.DepartmentID != nil {
		where += fmt.Sprintf(` AND d.department_id = $%d`, idx)
		args = append(args, *filter.DepartmentID)
		idx++
	}
	if filter.Specialty != "" {
		where += fmt.Sprintf(` AND d.specialty ILIKE $%d`, idx)
		args = append(args, "%"+filter.Specialty+"%")
		idx++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM doctor d` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT d.id, d.user_id, d.specialty, d.department_id, d.license_number, d.phone,
			d.created_at, d.updated_at, u.full_name, u.email, dep.name
		FROM doctor d
		JOIN user_account u ON u.id = d.user_id
		LEFT JOIN department dep ON dep.id = d.department_id` + where +
		fmt.Sprintf(` ORDER BY u.full_name ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*DoctorDetail
	for rows.Next() {
		var dd DoctorDetail
		if err := rows.Scan(&dd.ID, &dd.UserID, &dd.Specialty, &dd.DepartmentID, &dd.LicenseNumber,
			&dd.Phone, &dd.CreatedAt, &dd.UpdatedAt, &dd.FullName, &dd.Email, &dd.DepartmentName); err != nil {
			return nil, 0, err
		}
		items = append(items, &dd)
	}
	return items, total, rows.Err()
}
