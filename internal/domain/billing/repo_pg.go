package billing

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

const invoiceCols = `id, patient_id, amount_cents, description, status, paid_at, created_at, updated_at`

func (r *repoPG) scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.PatientID, &inv.AmountCents, &inv.Description,
		&inv.Status, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *repoPG) Create(ctx context.Context, inv *Invoice) error {
	inv.ID = uuid.New()
	inv.Status = StatusPending
	_, err := r.pool.Exec(ctx, `
		INSERT INTO invoice (id, patient_id, amount_cents, description, status)
		VALUES ($1,$2,$3,$4,$5)`,
		inv.ID, inv.PatientID, inv.AmountCents, inv.Description, inv.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrPatientRowMissing
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return r.scanInvoice(r.pool.QueryRow(ctx, `SELECT `+invoiceCols+` FROM invoice WHERE id = $1`, id))
}

// MarkPaid flips a pending invoice to paid. The status guard in the WHERE
// clause makes the double-pay race settle on one winner.
func (r *repoPG) MarkPaid(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE invoice SET status = $2, paid_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING `+invoiceCols, id, StatusPaid, StatusPending)
	inv, err := r.scanInvoice(row)
	if err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			// either no row at all or it was already paid
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, ErrAlreadyPaid
			}
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*InvoiceDetail, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoice WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, detailQuery+` WHERE i.patient_id = $1 ORDER BY i.created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collect(rows, total)
}

func (r *repoPG) List(ctx context.Context, status string, limit, offset int) ([]*InvoiceDetail, int, error) {
	if status != "" {
		var total int
		if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoice WHERE status = $1`, status).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err := r.pool.Query(ctx, detailQuery+` WHERE i.status = $1 ORDER BY i.created_at DESC LIMIT $2 OFFSET $3`,
			status, limit, offset)
		if err != nil {
			return nil, 0, err
		}
		return collect(rows, total)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoice`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, detailQuery+` ORDER BY i.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collect(rows, total)
}

const detailQuery = `
	SELECT i.id, i.patient_id, i.amount_cents, i.description, i.status, i.paid_at,
		i.created_at, i.updated_at, u.full_name, p.mrn
	FROM invoice i
	JOIN patient p ON p.id = i.patient_id
	JOIN user_account u ON u.id = p.user_id`

func collect(rows pgx.Rows, total int) ([]*InvoiceDetail, int, error) {
	defer rows.Close()
	var items []*InvoiceDetail
	for rows.Next() {
		var id InvoiceDetail
		if err := rows.Scan(&id.ID, &id.PatientID, &id.AmountCents, &id.Description, &id.Status,
			&id.PaidAt, &id.CreatedAt, &id.UpdatedAt, &id.PatientName, &id.PatientMRN); err != nil {
			return nil, 0, err
		}
		items = append(items, &id)
	}
	return items, total, rows.Err()
}
