package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carewell/hms/internal/domain/account"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorMissing       = errors.New("no such doctor")
	ErrPatientMissing      = errors.New("patient profile not found")
	ErrNotYours            = errors.New("appointment belongs to another patient")
	ErrBadTransition       = errors.New("appointment is not open for a status change")

	// ErrInvalid marks rejected input. Handlers translate it to a 400; any
	// other unrecognized error is a store failure and stays server-side.
	ErrInvalid = errors.New("invalid input")
)

type Service struct {
	appointments Repository
	resolver     ProfileResolver
}

func NewService(appointments Repository, resolver ProfileResolver) *Service {
	return &Service{appointments: appointments, resolver: resolver}
}

// Book creates a scheduled appointment for the logged-in patient.
func (s *Service) Book(ctx context.Context, userID, doctorID uuid.UUID, at time.Time, reason *string) (*Appointment, error) {
	patientID, err := s.resolver.PatientIDForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return nil, ErrPatientMissing
		}
		return nil, err
	}
	if doctorID == uuid.Nil {
		return nil, fmt.Errorf("%w: doctor_id is required", ErrInvalid)
	}
	if at.IsZero() {
		return nil, fmt.Errorf("%w: scheduled_at is required", ErrInvalid)
	}
	if !at.After(time.Now()) {
		return nil, fmt.Errorf("%w: scheduled_at must be in the future", ErrInvalid)
	}

	a := &Appointment{PatientID: patientID, DoctorID: doctorID, ScheduledAt: at, Reason: reason}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// UpdateStatus moves a scheduled appointment to one of the terminal states.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	if !terminalStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusScheduled {
		return nil, ErrBadTransition
	}
	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	a.Status = status
	return a, nil
}

// CancelOwn cancels the patient's own appointment. Ownership is checked
// against the caller's resolved patient id.
func (s *Service) CancelOwn(ctx context.Context, userID, appointmentID uuid.UUID) error {
	patientID, err := s.resolver.PatientIDForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return ErrPatientMissing
		}
		return err
	}
	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if a.PatientID != patientID {
		return ErrNotYours
	}
	if a.Status != StatusScheduled {
		return ErrBadTransition
	}
	return s.appointments.UpdateStatus(ctx, appointmentID, StatusCancelled)
}

// Cancel is the staff/admin path: any scheduled appointment.
func (s *Service) Cancel(ctx context.Context, appointmentID uuid.UUID) error {
	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if a.Status != StatusScheduled {
		return ErrBadTransition
	}
	return s.appointments.UpdateStatus(ctx, appointmentID, StatusCancelled)
}

func (s *Service) ListForPatientUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*AppointmentDetail, int, error) {
	patientID, err := s.resolver.PatientIDForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return nil, 0, ErrPatientMissing
		}
		return nil, 0, err
	}
	return s.appointments.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListForDoctorUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*AppointmentDetail, int, error) {
	doctorID, err := s.resolver.DoctorIDForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return nil, 0, ErrDoctorMissing
		}
		return nil, 0, err
	}
	return s.appointments.ListByDoctor(ctx, doctorID, limit, offset)
}

func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]*AppointmentDetail, int, error) {
	if status != "" && status != StatusScheduled && !terminalStatuses[status] {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}
	return s.appointments.List(ctx, status, limit, offset)
}
