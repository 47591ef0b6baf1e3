package billing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*InvoiceDetail, int, error)
	List(ctx context.Context, status string, limit, offset int) ([]*InvoiceDetail, int, error)
}

// ProfileResolver maps a logged-in user to their patient row.
type ProfileResolver interface {
	PatientIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}
