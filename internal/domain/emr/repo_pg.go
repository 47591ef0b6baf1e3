package emr

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

const recordCols = `id, patient_id, doctor_id, appointment_id, diagnosis, treatment, notes, created_at, updated_at`

func (r *repoPG) scanRecord(row pgx.Row) (*MedicalRecord, error) {
	var rec MedicalRecord
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.DoctorID, &rec.AppointmentID,
		&rec.Diagnosis, &rec.Treatment, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repoPG) Create(ctx context.Context, rec *MedicalRecord) error {
	rec.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medical_record (id, patient_id, doctor_id, appointment_id, diagnosis, treatment, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, rec.PatientID, rec.DoctorID, rec.AppointmentID, rec.Diagnosis, rec.Treatment, rec.Notes)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrPatientRowMissing
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return r.scanRecord(r.pool.QueryRow(ctx, `SELECT `+recordCols+` FROM medical_record WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rec *MedicalRecord) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE medical_record SET diagnosis=$2, treatment=$3, notes=$4, updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.Diagnosis, rec.Treatment, rec.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*RecordDetail, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM medical_record WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.patient_id, r.doctor_id, r.appointment_id, r.diagnosis, r.treatment, r.notes,
			r.created_at, r.updated_at, pu.full_name, p.mrn, du.full_name, d.specialty
		FROM medical_record r
		JOIN patient p ON p.id = r.patient_id
		JOIN user_account pu ON pu.id = p.user_id
		JOIN doctor d ON d.id = r.doctor_id
		JOIN user_account du ON du.id = d.user_id
		WHERE r.patient_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*RecordDetail
	for rows.Next() {
		var rd RecordDetail
		if err := rows.Scan(&rd.ID, &rd.PatientID, &rd.DoctorID, &rd.AppointmentID, &rd.Diagnosis,
			&rd.Treatment, &rd.Notes, &rd.CreatedAt, &rd.UpdatedAt,
			&rd.PatientName, &rd.PatientMRN, &rd.DoctorName, &rd.DoctorSpecialty); err != nil {
			return nil, 0, err
		}
		items = append(items, &rd)
	}
	return items, total, rows.Err()
}
