package emr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carewell/hms/internal/domain/account"
)

var (
	ErrRecordNotFound    = errors.New("medical record not found")
	ErrPatientRowMissing = errors.New("no such patient")
	ErrDoctorMissing     = errors.New("doctor profile not found")
	ErrPatientMissing    = errors.New("patient profile not found")
	ErrNotAuthor         = errors.New("record was written by another doctor")

	// ErrInvalid marks rejected input; anything else unrecognized is a store
	// failure and surfaces as a generic 500.
	ErrInvalid = errors.New("invalid input")
)

type Service struct {
	records  Repository
	resolver ProfileResolver
}

func NewService(records Repository, resolver ProfileResolver) *Service {
	return &Service{records: records, resolver: resolver}
}

// CreateForDoctorUser writes a record authored by the logged-in doctor.
func (s *Service) CreateForDoctorUser(ctx context.Context, doctorUserID uuid.UUID, rec *MedicalRecord) error {
	doctorID, err := s.resolver.DoctorIDForUser(ctx, doctorUserID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return ErrDoctorMissing
		}
		return err
	}
	if rec.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient_id is required", ErrInvalid)
	}
	rec.Diagnosis = strings.TrimSpace(rec.Diagnosis)
	if rec.Diagnosis == "" {
		return fmt.Errorf("%w: diagnosis is required", ErrInvalid)
	}
	rec.DoctorID = doctorID
	return s.records.Create(ctx, rec)
}

// UpdateForDoctorUser edits a record; only the authoring doctor may.
func (s *Service) UpdateForDoctorUser(ctx context.Context, doctorUserID uuid.UUID, rec *MedicalRecord) error {
	doctorID, err := s.resolver.DoctorIDForUser(ctx, doctorUserID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return ErrDoctorMissing
		}
		return err
	}
	existing, err := s.records.GetByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	if existing.DoctorID != doctorID {
		return ErrNotAuthor
	}
	rec.Diagnosis = strings.TrimSpace(rec.Diagnosis)
	if rec.Diagnosis == "" {
		return fmt.Errorf("%w: diagnosis is required", ErrInvalid)
	}
	rec.PatientID = existing.PatientID
	rec.DoctorID = existing.DoctorID
	rec.AppointmentID = existing.AppointmentID
	return s.records.Update(ctx, rec)
}

// ListOwn lists the logged-in patient's records.
func (s *Service) ListOwn(ctx context.Context, patientUserID uuid.UUID, limit, offset int) ([]*RecordDetail, int, error) {
	patientID, err := s.resolver.PatientIDForUser(ctx, patientUserID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return nil, 0, ErrPatientMissing
		}
		return nil, 0, err
	}
	return s.records.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*RecordDetail, int, error) {
	return s.records.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return s.records.GetByID(ctx, id)
}
