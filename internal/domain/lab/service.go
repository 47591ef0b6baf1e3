package lab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carewell/hms/internal/domain/account"
)

var (
	ErrTestNotFound      = errors.New("lab test not found")
	ErrPatientRowMissing = errors.New("no such patient")
	ErrPatientMissing    = errors.New("patient profile not found")
	ErrDoctorMissing     = errors.New("doctor profile not found")
	ErrAlreadyResulted   = errors.New("lab test already resulted")

	// ErrInvalid marks rejected input; anything else unrecognized is a store
	// failure and surfaces as a generic 500.
	ErrInvalid = errors.New("invalid input")
)

type Service struct {
	tests    Repository
	resolver ProfileResolver
}

func NewService(tests Repository, resolver ProfileResolver) *Service {
	return &Service{tests: tests, resolver: resolver}
}

// OrderForDoctorUser creates a pending test ordered by the logged-in doctor.
func (s *Service) OrderForDoctorUser(ctx context.Context, doctorUserID uuid.UUID, t *LabTest) error {
	doctorID, err := s.resolver.DoctorIDForUser(ctx, doctorUserID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return ErrDoctorMissing
		}
		return err
	}
	if t.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient_id is required", ErrInvalid)
	}
	t.TestName = strings.TrimSpace(t.TestName)
	if t.TestName == "" {
		return fmt.Errorf("%w: test_name is required", ErrInvalid)
	}
	t.DoctorID = doctorID
	return s.tests.Create(ctx, t)
}

// SetResult completes a pending test with its result text.
func (s *Service) SetResult(ctx context.Context, id uuid.UUID, result string) (*LabTest, error) {
	result = strings.TrimSpace(result)
	if result == "" {
		return nil, fmt.Errorf("%w: result is required", ErrInvalid)
	}
	return s.tests.SetResult(ctx, id, result)
}

func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]*LabTestDetail, int, error) {
	return s.tests.ListPending(ctx, limit, offset)
}

func (s *Service) ListOwn(ctx context.Context, patientUserID uuid.UUID, limit, offset int) ([]*LabTestDetail, int, error) {
	patientID, err := s.resolver.PatientIDForUser(ctx, patientUserID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return nil, 0, ErrPatientMissing
		}
		return nil, 0, err
	}
	return s.tests.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*LabTestDetail, int, error) {
	return s.tests.ListByPatient(ctx, patientID, limit, offset)
}
