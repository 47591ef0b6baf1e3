package billing

import (
	"time"

	"github.com/google/uuid"
)

// Invoice statuses.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Invoice maps to the invoice table. Amounts are integer cents.
type Invoice struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	AmountCents int64      `db:"amount_cents" json:"amount_cents"`
	Description string     `db:"description" json:"description"`
	Status      string     `db:"status" json:"status"`
	PaidAt      *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// InvoiceDetail is the flat list shape with the joined patient name.
type InvoiceDetail struct {
	Invoice
	PatientName string `db:"patient_name" json:"patient_name"`
	PatientMRN  string `db:"patient_mrn" json:"patient_mrn"`
}
