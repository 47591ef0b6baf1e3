package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrPatientNotFound = errors.New("patient profile not found")
	ErrProfileExists   = errors.New("patient profile already exists for this user")
	ErrUserMissing     = errors.New("no such user account")

	// ErrInvalid marks rejected input; anything else unrecognized is a store
	// failure and surfaces as a generic 500.
	ErrInvalid = errors.New("invalid input")
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.UserID == uuid.Nil {
		return fmt.Errorf("%w: user_id is required", ErrInvalid)
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

// GetByUserID looks up the profile behind a logged-in account. Callers map
// ErrPatientNotFound to a 404.
func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	return s.patients.GetByUserID(ctx, userID)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	return s.patients.Update(ctx, p)
}

func (s *Service) ListPatients(ctx context.Context, nameSearch string, limit, offset int) ([]*PatientDetail, int, error) {
	return s.patients.List(ctx, nameSearch, limit, offset)
}
