package lab

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *LabTest) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabTest, error)
	SetResult(ctx context.Context, id uuid.UUID, result string) (*LabTest, error)
	ListPending(ctx context.Context, limit, offset int) ([]*LabTestDetail, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*LabTestDetail, int, error)
}

// ProfileResolver maps a logged-in user to their patient or doctor row.
type ProfileResolver interface {
	PatientIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	DoctorIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}
