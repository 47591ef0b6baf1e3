package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Department Repository ===========

type departmentRepoPG struct{ pool *pgxpool.Pool }

func NewDepartmentRepoPG(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepoPG{pool: pool}
}

const deptCols = `id, name, description, created_at, updated_at`

func (r *departmentRepoPG) scanDepartment(row pgx.Row) (*Department, error) {
	var d Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *departmentRepoPG) Create(ctx context.Context, d *Department) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO department (id, name, description)
		VALUES ($1,$2,$3)`,
		d.ID, d.Name, d.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDepartmentExists
		}
		return err
	}
	return nil
}

func (r *departmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Department, error) {
	return r.scanDepartment(r.pool.QueryRow(ctx, `SELECT `+deptCols+` FROM department WHERE id = $1`, id))
}

func (r *departmentRepoPG) Update(ctx context.Context, d *Department) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE department SET name=$2, description=$3, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM department WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

// List returns departments in name order so pickers render alphabetically.
func (r *departmentRepoPG) List(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM department`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+deptCols+` FROM department ORDER BY name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Department
	for rows.Next() {
		d, err := r.scanDepartment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

// =========== Staff Repository ===========

type staffRepoPG struct{ pool *pgxpool.Pool }

func NewStaffRepoPG(pool *pgxpool.Pool) StaffRepository {
	return &staffRepoPG{pool: pool}
}

const staffCols = `id, user_id, designation, department_id, phone, created_at, updated_at`

func (r *staffRepoPG) scanStaff(row pgx.Row) (*StaffMember, error) {
	var s StaffMember
	err := row.Scan(&s.ID, &s.UserID, &s.Designation, &s.DepartmentID, &s.Phone, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *staffRepoPG) Create(ctx context.Context, s *StaffMember) error {
	s.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO staff_member (id, user_id, designation, department_id, phone)
		VALUES ($1,$2,$3,$4,$5)`,
		s.ID, s.UserID, s.Designation, s.DepartmentID, s.Phone)
	return err
}

func (r *staffRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*StaffMember, error) {
	return r.scanStaff(r.pool.QueryRow(ctx, `SELECT `+staffCols+` FROM staff_member WHERE id = $1`, id))
}

func (r *staffRepoPG) Update(ctx context.Context, s *StaffMember) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE staff_member SET designation=$2, department_id=$3, phone=$4, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Designation, s.DepartmentID, s.Phone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStaffNotFound
	}
	return nil
}

func (r *staffRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM staff_member WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStaffNotFound
	}
	return nil
}

func (r *staffRepoPG) List(ctx context.Context, limit, offset int) ([]*StaffDetail, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff_member`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.user_id, s.designation, s.department_id, s.phone, s.created_at, s.updated_at,
			u.full_name, u.email, d.name
		FROM staff_member s
		JOIN user_account u ON u.id = s.user_id
		LEFT JOIN department d ON d.id = s.department_id
		ORDER BY u.full_name ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*StaffDetail
	for rows.Next() {
		var sd StaffDetail
		if err := rows.Scan(&sd.ID, &sd.UserID, &sd.Designation, &sd.DepartmentID, &sd.Phone,
			&sd.CreatedAt, &sd.UpdatedAt, &sd.UserFullName, &sd.UserEmail, &sd.DepartmentName); err != nil {
			return nil, 0, err
		}
		items = append(items, &sd)
	}
	return items, total, rows.Err()
}
