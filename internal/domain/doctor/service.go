package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrDoctorNotFound = errors.New("doctor profile not found")
	ErrProfileExists  = errors.New("doctor profile already exists for this user")

	// ErrInvalid marks rejected input; anything else unrecognized is a store
	// failure and surfaces as a generic 500.
	ErrInvalid = errors.New("invalid input")
)

type Service struct {
	doctors Repository
}

func NewService(doctors Repository) *Service {
	return &Service{doctors: doctors}
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.UserID == uuid.Nil {
		return fmt.Errorf("%w: user_id is required", ErrInvalid)
	}
	d.Specialty = strings.TrimSpace(d.Specialty)
	if d.Specialty == "" {
		return fmt.Errorf("%w: specialty is required", ErrInvalid)
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByUserID(ctx, userID)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	d.Specialty = strings.TrimSpace(d.Specialty)
	if d.Specialty == "" {
		return fmt.Errorf("%w: specialty is required", ErrInvalid)
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, filter ListFilter, limit, offset int) ([]*DoctorDetail, int, error) {
	return s.doctors.List(ctx, filter, limit, offset)
}
