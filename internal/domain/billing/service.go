package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carewell/hms/internal/domain/account"
)

var (
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrPatientRowMissing = errors.New("no such patient")
	ErrPatientMissing    = errors.New("patient profile not found")
	ErrAlreadyPaid       = errors.New("invoice already paid")
	ErrNotYours          = errors.New("invoice belongs to another patient")

	// ErrInvalid marks rejected input; anything else unrecognized is a store
	// failure and surfaces as a generic 500.
	ErrInvalid = errors.New("invalid input")
)

type Service struct {
	invoices Repository
	resolver ProfileResolver
}

func NewService(invoices Repository, resolver ProfileResolver) *Service {
	return &Service{invoices: invoices, resolver: resolver}
}

func (s *Service) CreateInvoice(ctx context.Context, inv *Invoice) error {
	if inv.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient_id is required", ErrInvalid)
	}
	if inv.AmountCents <= 0 {
		return fmt.Errorf("%w: amount_cents must be positive", ErrInvalid)
	}
	inv.Description = strings.TrimSpace(inv.Description)
	if inv.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalid)
	}
	return s.invoices.Create(ctx, inv)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

// PayOwn settles the logged-in patient's own invoice.
func (s *Service) PayOwn(ctx context.Context, userID, invoiceID uuid.UUID) (*Invoice, error) {
	patientID, err := s.resolver.PatientIDForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return nil, ErrPatientMissing
		}
		return nil, err
	}
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.PatientID != patientID {
		return nil, ErrNotYours
	}
	return s.invoices.MarkPaid(ctx, invoiceID)
}

// Pay settles any invoice; the front-desk path.
func (s *Service) Pay(ctx context.Context, invoiceID uuid.UUID) (*Invoice, error) {
	return s.invoices.MarkPaid(ctx, invoiceID)
}

func (s *Service) ListOwn(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*InvoiceDetail, int, error) {
	patientID, err := s.resolver.PatientIDForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, account.ErrProfileNotFound) {
			return nil, 0, ErrPatientMissing
		}
		return nil, 0, err
	}
	return s.invoices.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]*InvoiceDetail, int, error) {
	if status != "" && status != StatusPending && status != StatusPaid {
		return nil, 0, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}
	return s.invoices.List(ctx, status, limit, offset)
}
