package appointment

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

const apptCols = `id, patient_id, doctor_id, scheduled_at, reason, status, created_at, updated_at`

// detailQuery is shared by every list: appointment columns plus the joined
// patient, doctor, and department names.
const detailQuery = `
	SELECT a.id, a.patient_id, a.doctor_id, a.scheduled_at, a.reason, a.status,
		a.created_at, a.updated_at,
		pu.full_name, p.mrn, du.full_name, d.specialty, dep.name
	FROM appointment a
	JOIN patient p ON p.id = a.patient_id
	JOIN user_account pu ON pu.id = p.user_id
	JOIN doctor d ON d.id = a.doctor_id
	JOIN user_account du ON du.id = d.user_id
	LEFT JOIN department dep ON dep.id = d.department_id`

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	a.Status = StatusScheduled
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment (id, patient_id, doctor_id, scheduled_at, reason, status)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.PatientID, a.DoctorID, a.ScheduledAt, a.Reason, a.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrDoctorMissing
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	var a Appointment
	err := r.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM appointment WHERE id = $1`, id).
		Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.ScheduledAt, &a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointment SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*AppointmentDetail, int, error) {
	return r.listWhere(ctx, `a.patient_id = $1`, patientID, limit, offset)
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*AppointmentDetail, int, error) {
	return r.listWhere(ctx, `a.doctor_id = $1`, doctorID, limit, offset)
}

func (r *repoPG) List(ctx context.Context, status string, limit, offset int) ([]*AppointmentDetail, int, error) {
	if status != "" {
		return r.listWhere(ctx, `a.status = $1`, status, limit, offset)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, detailQuery+` ORDER BY a.scheduled_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return r.collect(rows, total)
}

func (r *repoPG) listWhere(ctx context.Context, cond string, arg interface{}, limit, offset int) ([]*AppointmentDetail, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment a WHERE `+cond, arg).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := fmt.Sprintf(`%s WHERE %s ORDER BY a.scheduled_at DESC LIMIT $2 OFFSET $3`, detailQuery, cond)
	rows, err := r.pool.Query(ctx, query, arg, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return r.collect(rows, total)
}

func (r *repoPG) collect(rows pgx.Rows, total int) ([]*AppointmentDetail, int, error) {
	defer rows.Close()
	var items []*AppointmentDetail
	for rows.Next() {
		var ad AppointmentDetail
		if err := rows.Scan(&ad.ID, &ad.PatientID, &ad.DoctorID, &ad.ScheduledAt, &ad.Reason, &ad.Status,
			&ad.CreatedAt, &ad.UpdatedAt,
			&ad.PatientName, &ad.PatientMRN, &ad.DoctorName, &ad.DoctorSpecialty, &ad.DepartmentName); err != nil {
			return nil, 0, err
		}
		items = append(items, &ad)
	}
	return items, total, rows.Err()
}
