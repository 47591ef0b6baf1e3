package pharmacy

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	Dispense(ctx context.Context, id uuid.UUID) (*Prescription, error)
	ListPending(ctx context.Context, limit, offset int) ([]*PrescriptionDetail, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PrescriptionDetail, int, error)
}

// ProfileResolver maps a logged-in user to their patient or doctor row.
type ProfileResolver interface {
	PatientIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	DoctorIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}
