package lab

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

const testCols = `id, patient_id, doctor_id, test_name, status, result, resulted_at, created_at, updated_at`

func (r *repoPG) scanTest(row pgx.Row) (*LabTest, error) {
	var t LabTest
	err := row.Scan(&t.ID, &t.PatientID, &t.DoctorID, &t.TestName, &t.Status,
		&t.Result, &t.ResultedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *repoPG) Create(ctx context.Context, t *LabTest) error {
	t.ID = uuid.New()
	t.Status = StatusPending
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lab_test (id, patient_id, doctor_id, test_name, status)
		VALUES ($1,$2,$3,$4,$5)`,
		t.ID, t.PatientID, t.DoctorID, t.TestName, t.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrPatientRowMissing
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*LabTest, error) {
	return r.scanTest(r.pool.QueryRow(ctx, `SELECT `+testCols+` FROM lab_test WHERE id = $1`, id))
}

func (r *repoPG) SetResult(ctx context.Context, id uuid.UUID, result string) (*LabTest, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE lab_test SET status = $2, result = $3, resulted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $4
		RETURNING `+testCols, id, StatusCompleted, result, StatusPending)
	t, err := r.scanTest(row)
	if err != nil {
		if errors.Is(err, ErrTestNotFound) {
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, ErrAlreadyResulted
			}
			return nil, ErrTestNotFound
		}
		return nil, err
	}
	return t, nil
}

const detailQuery = `
	SELECT t.id, t.patient_id, t.doctor_id, t.test_name, t.status, t.result, t.resulted_at,
		t.created_at, t.updated_at, pu.full_name, p.mrn, du.full_name
	FROM lab_test t
	JOIN patient p ON p.id = t.patient_id
	JOIN user_account pu ON pu.id = p.user_id
	JOIN doctor d ON d.id = t.doctor_id
	JOIN user_account du ON du.id = d.user_id`

func (r *repoPG) ListPending(ctx context.Context, limit, offset int) ([]*LabTestDetail, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lab_test WHERE status = $1`, StatusPending).Scan(&total); err != nil {
		return nil, 0, err
	}
	// oldest orders first so the worklist drains in order
	rows, err := r.pool.Query(ctx, detailQuery+` WHERE t.status = $1 ORDER BY t.created_at ASC LIMIT $2 OFFSET $3`,
		StatusPending, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collect(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*LabTestDetail, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lab_test WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, detailQuery+` WHERE t.patient_id = $1 ORDER BY t.created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collect(rows, total)
}

func collect(rows pgx.Rows, total int) ([]*LabTestDetail, int, error) {
	defer rows.Close()
	var items []*LabTestDetail
	for rows.Next() {
		var td LabTestDetail
		if err := rows.Scan(&td.ID, &td.PatientID, &td.DoctorID, &td.TestName, &td.Status, &td.Result,
			&td.ResultedAt, &td.CreatedAt, &td.UpdatedAt, &td.PatientName, &td.PatientMRN, &td.DoctorName); err != nil {
			return nil, 0, err
		}
		items = append(items, &td)
	}
	return items, total, rows.Err()
}
