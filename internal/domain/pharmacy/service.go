package pharmacy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carewell/hms/internal/domain/account"
)

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrPatientRowMissing    = errors.New("no such patient")
	ErrPatientMissing       = errors.New("patient profile not found")
	ErrDoctorMissing        = errors.New("doctor profile not found")
	ErrAlreadyDispensed     = errors.New("prescription already dispensed")

	// ErrInvalid marks rejected input; anything else unrecognized is a store
	// failure and surfaces as a generic 500.
	ErrInvalid = errors.New("invalid input")
)

type Service struct {
	rx       Repository
	resolver ProfileResolver
}

func NewService(rx Repository, resolver ProfileResolver) *Service {
	return &Service{rx: rx, resolver: resolver}
}

// PrescribeForDoctorUser creates a pending prescription written by the logged-in doctor.
func (s *Service) PrescribeForDoctorUser(ctx context.Context, doctorUserID uuid.UUID, p *Prescription) error {
	doctorID, err := s.resolver.DoctorIDForUser(ctx, doctorUserID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return ErrDoctorMissing
		}
		return err
	}
	if p.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient_id is required", ErrInvalid)
	}
	p.MedicationName = strings.TrimSpace(p.MedicationName)
	if p.MedicationName == "" {
		return fmt.Errorf("%w: medication_name is required", ErrInvalid)
	}
	p.Dosage = strings.TrimSpace(p.Dosage)
	if p.Dosage == "" {
		return fmt.Errorf("%w: dosage is required", ErrInvalid)
	}
	p.Instructions = strings.TrimSpace(p.Instructions)
	p.DoctorID = doctorID
	return s.rx.Create(ctx, p)
}

// Dispense marks a pending prescription dispensed. Dispensing twice fails.
func (s *Service) Dispense(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.rx.Dispense(ctx, id)
}

func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]*PrescriptionDetail, int, error) {
	return s.rx.ListPending(ctx, limit, offset)
}

func (s *Service) ListOwn(ctx context.Context, patientUserID uuid.UUID, limit, offset int) ([]*PrescriptionDetail, int, error) {
	patientID, err := s.resolver.PatientIDForUser(ctx, patientUserID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return nil, 0, ErrPatientMissing
		}
		return nil, 0, err
	}
	return s.rx.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PrescriptionDetail, int, error) {
	return s.rx.ListByPatient(ctx, patientID, limit, offset)
}
