package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const patientCols = `id, user_id, mrn, date_of_birth, gender, blood_group, phone, address, created_at, updated_at`

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.UserID, &p.MRN, &p.DateOfBirth, &p.Gender, &p.BloodGroup,
		&p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts the profile and lets the database mint the MRN from its
// sequence, so concurrent registrations never collide.
func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patient (id, user_id, mrn, date_of_birth, gender, blood_group, phone, address)
		VALUES ($1, $2, 'MRN' || lpad(nextval('mrn_seq')::text, 6, '0'), $3, $4, $5, $6, $7)
		RETURNING mrn`,
		p.ID, p.UserID, p.DateOfBirth, p.Gender, p.BloodGroup, p.Phone, p.Address).Scan(&p.MRN)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrProfileExists
			case "23503":
				return ErrUserMissing
			}
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE user_id = $1`, userID))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patient SET date_of_birth=$2, gender=$3, blood_group=$4, phone=$5, address=$6, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.DateOfBirth, p.Gender, p.BloodGroup, p.Phone, p.Address)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, nameSearch string, limit, offset int) ([]*PatientDetail, int, error) {
	where := ``
	args := []interface{}{}
	if nameSearch != "" {
		where = ` WHERE u.full_name ILIKE $1`
		args = append(args, "%"+nameSearch+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM patient p JOIN user_account u ON u.id = p.user_id` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT p.id, p.user_id, p.mrn, p.date_of_birth, p.gender, p.blood_group, p.phone, p.address,
			p.created_at, p.updated_at, u.full_name, u.email
		FROM patient p
		JOIN user_account u ON u.id = p.user_id` + where
	if nameSearch != "" {
		query += ` ORDER BY u.full_name ASC LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY u.full_name ASC LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*PatientDetail
	for rows.Next() {
		var pd PatientDetail
		if err := rows.Scan(&pd.ID, &pd.UserID, &pd.MRN, &pd.DateOfBirth, &pd.Gender, &pd.BloodGroup,
			&pd.Phone, &pd.Address, &pd.CreatedAt, &pd.UpdatedAt, &pd.FullName, &pd.Email); err != nil {
			return nil, 0, err
		}
		items = append(items, &pd)
	}
	return items, total, rows.Err()
}
