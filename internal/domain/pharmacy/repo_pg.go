package pharmacy

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

const rxCols = `id, patient_id, doctor_id, medication_name, dosage, instructions, status, dispensed_at, created_at, updated_at`

func (r *repoPG) scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.PatientID, &p.DoctorID, &p.MedicationName, &p.Dosage,
		&p.Instructions, &p.Status, &p.DispensedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrescriptionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	p.Status = StatusPending
	_, err := r.pool.Exec(ctx, `
		INSERT INTO prescription (id, patient_id, doctor_id, medication_name, dosage, instructions, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.PatientID, p.DoctorID, p.MedicationName, p.Dosage, p.Instructions, p.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrPatientRowMissing
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return r.scanPrescription(r.pool.QueryRow(ctx, `SELECT `+rxCols+` FROM prescription WHERE id = $1`, id))
}

func (r *repoPG) Dispense(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE prescription SET status = $2, dispensed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING `+rxCols, id, StatusDispensed, StatusPending)
	p, err := r.scanPrescription(row)
	if err != nil {
		if errors.Is(err, ErrPrescriptionNotFound) {
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, ErrAlreadyDispensed
			}
			return nil, ErrPrescriptionNotFound
		}
		return nil, err
	}
	return p, nil
}

const detailQuery = `
	SELECT rx.id, rx.patient_id, rx.doctor_id, rx.medication_name, rx.dosage, rx.instructions,
		rx.status, rx.dispensed_at, rx.created_at, rx.updated_at, pu.full_name, p.mrn, du.full_name
	FROM prescription rx
	JOIN patient p ON p.id = rx.patient_id
	JOIN user_account pu ON pu.id = p.user_id
	JOIN doctor d ON d.id = rx.doctor_id
	JOIN user_account du ON du.id = d.user_id`

func (r *repoPG) ListPending(ctx context.Context, limit, offset int) ([]*PrescriptionDetail, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM prescription WHERE status = $1`, StatusPending).Scan(&total); err != nil {
		return nil, 0, err
	}
	// oldest first so the fill queue drains in order
	rows, err := r.pool.Query(ctx, detailQuery+` WHERE rx.status = $1 ORDER BY rx.created_at ASC LIMIT $2 OFFSET $3`,
		StatusPending, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collect(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PrescriptionDetail, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM prescription WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, detailQuery+` WHERE rx.patient_id = $1 ORDER BY rx.created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collect(rows, total)
}

func collect(rows pgx.Rows, total int) ([]*PrescriptionDetail, int, error) {
	defer rows.Close()
	var items []*PrescriptionDetail
	for rows.Next() {
		var pd PrescriptionDetail
		if err := rows.Scan(&pd.ID, &pd.PatientID, &pd.DoctorID, &pd.MedicationName, &pd.Dosage,
			&pd.Instructions, &pd.Status, &pd.DispensedAt, &pd.CreatedAt, &pd.UpdatedAt,
			&pd.PatientName, &pd.PatientMRN, &pd.DoctorName); err != nil {
			return nil, 0, err
		}
		items = append(items, &pd)
	}
	return items, total, rows.Err()
}
