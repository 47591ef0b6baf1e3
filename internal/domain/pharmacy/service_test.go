package pharmacy

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carewell/hms/internal/domain/account"
)

type mockRepo struct {
	rx        map[uuid.UUID]*Prescription
	createErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{rx: make(map[uuid.UUID]*Prescription)}
}

func (m *mockRepo) Create(_ context.Context, p *Prescription) error {
	if m.createErr != nil {
		return m.createErr
	}
	p.ID = uuid.New()
	p.Status = StatusPending
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.rx[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Prescription, error) {
	p, ok := m.rx[id]
	if !ok {
		return nil, ErrPrescriptionNotFound
	}
	return p, nil
}

func (m *mockRepo) Dispense(_ context.Context, id uuid.UUID) (*Prescription, error) {
	p, ok := m.rx[id]
	if !ok {
		return nil, ErrPrescriptionNotFound
	}
	if p.Status != StatusPending {
		return nil, ErrAlreadyDispensed
	}
	now := time.Now()
	p.Status = StatusDispensed
	p.DispensedAt = &now
	return p, nil
}

func (m *mockRepo) ListPending(_ context.Context, limit, offset int) ([]*PrescriptionDetail, int, error) {
	var items []*PrescriptionDetail
	for _, p := range m.rx {
		if p.Status == StatusPending {
			items = append(items, &PrescriptionDetail{Prescription: *p, PatientName: "Pat", PatientMRN: "MRN000001"})
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*PrescriptionDetail, int, error) {
	var items []*PrescriptionDetail
	for _, p := range m.rx {
		if p.PatientID == patientID {
			items = append(items, &PrescriptionDetail{Prescription: *p, PatientName: "Pat", PatientMRN: "MRN000001"})
		}
	}
	return items, len(items), nil
}

type mockResolver struct {
	patients map[uuid.UUID]uuid.UUID
	doctors  map[uuid.UUID]uuid.UUID
}

func newMockResolver() *mockResolver {
	return &mockResolver{
		patients: make(map[uuid.UUID]uuid.UUID),
		doctors:  make(map[uuid.UUID]uuid.UUID),
	}
}

func (m *mockResolver) PatientIDForUser(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, ok := m.patients[userID]
	if !ok {
		return uuid.Nil, account.ErrProfileNotFound
	}
	return id, nil
}

func (m *mockResolver) DoctorIDForUser(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, ok := m.doctors[userID]
	if !ok {
		return uuid.Nil, account.ErrProfileNotFound
	}
	return id, nil
}

func newTestService() (*Service, *mockResolver) {
	resolver := newMockResolver()
	return NewService(newMockRepo(), resolver), resolver
}

func TestService_PrescribeForDoctorUser(t *testing.T) {
	svc, resolver := newTestService()
	ctx := context.Background()
	userID, doctorID := uuid.New(), uuid.New()
	resolver.doctors[userID] = doctorID

	p := &Prescription{PatientID: uuid.New(), MedicationName: "Amoxicillin", Dosage: "500mg", Instructions: "Three times daily"}
	if err := svc.PrescribeForDoctorUser(ctx, userID, p); err != nil {
		t.Fatalf("PrescribeForDoctorUser: %v", err)
	}
	if p.DoctorID != doctorID {
		t.Fatalf("doctor_id = %s, want prescriber %s", p.DoctorID, doctorID)
	}
	if p.Status != StatusPending {
		t.Fatalf("status = %q, want %q", p.Status, StatusPending)
	}
}

func TestService_PrescribeForDoctorUser_NoProfile(t *testing.T) {
	svc, _ := newTestService()
	p := &Prescription{PatientID: uuid.New(), MedicationName: "Amoxicillin", Dosage: "500mg"}

	if err := svc.PrescribeForDoctorUser(context.Background(), uuid.New(), p); err != ErrDoctorMissing {
		t.Fatalf("err = %v, want ErrDoctorMissing", err)
	}
}

func TestService_PrescribeForDoctorUser_Validation(t *testing.T) {
	svc, resolver := newTestService()
	ctx := context.Background()
	userID := uuid.New()
	resolver.doctors[userID] = uuid.New()

	if err := svc.PrescribeForDoctorUser(ctx, userID, &Prescription{MedicationName: "Amoxicillin", Dosage: "500mg"}); err == nil {
		t.Error("expected error for missing patient_id")
	}
	if err := svc.PrescribeForDoctorUser(ctx, userID, &Prescription{PatientID: uuid.New(), Dosage: "500mg"}); err == nil {
		t.Error("expected error for missing medication_name")
	}
	if err := svc.PrescribeForDoctorUser(ctx, userID, &Prescription{PatientID: uuid.New(), MedicationName: "Amoxicillin", Dosage: " "}); err == nil {
		t.Error("expected error for blank dosage")
	}
}

func TestService_Dispense(t *testing.T) {
	svc, resolver := newTestService()
	ctx := context.Background()
	userID := uuid.New()
	resolver.doctors[userID] = uuid.New()

	p := &Prescription{PatientID: uuid.New(), MedicationName: "Amoxicillin", Dosage: "500mg"}
	if err := svc.PrescribeForDoctorUser(ctx, userID, p); err != nil {
		t.Fatalf("PrescribeForDoctorUser: %v", err)
	}

	done, err := svc.Dispense(ctx, p.ID)
	if err != nil {
		t.Fatalf("Dispense: %v", err)
	}
	if done.Status != StatusDispensed || done.DispensedAt == nil {
		t.Fatalf("prescription = %+v, want dispensed with timestamp", done)
	}

	if _, err := svc.Dispense(ctx, p.ID); err != ErrAlreadyDispensed {
		t.Fatalf("double dispense err = %v, want ErrAlreadyDispensed", err)
	}
}

func TestService_ListOwn(t *testing.T) {
	svc, resolver := newTestService()
	ctx := context.Background()
	doctorUser, patientUser, patientID := uuid.New(), uuid.New(), uuid.New()
	resolver.doctors[doctorUser] = uuid.New()
	resolver.patients[patientUser] = patientID

	mine := &Prescription{PatientID: patientID, MedicationName: "Amoxicillin", Dosage: "500mg"}
	other := &Prescription{PatientID: uuid.New(), MedicationName: "Ibuprofen", Dosage: "200mg"}
	for _, p := range []*Prescription{mine, other} {
		if err := svc.PrescribeForDoctorUser(ctx, doctorUser, p); err != nil {
			t.Fatalf("PrescribeForDoctorUser: %v", err)
		}
	}

	items, total, err := svc.ListOwn(ctx, patientUser, 20, 0)
	if err != nil {
		t.Fatalf("ListOwn: %v", err)
	}
	if total != 1 || items[0].ID != mine.ID {
		t.Fatalf("got %d prescriptions, want only the patient's own", total)
	}

	if _, _, err := svc.ListOwn(ctx, uuid.New(), 20, 0); err != ErrPatientMissing {
		t.Fatalf("err = %v, want ErrPatientMissing", err)
	}
}

func TestService_ListPending_DrainsOnDispense(t *testing.T) {
	svc, resolver := newTestService()
	ctx := context.Background()
	userID := uuid.New()
	resolver.doctors[userID] = uuid.New()

	a := &Prescription{PatientID: uuid.New(), MedicationName: "Amoxicillin", Dosage: "500mg"}
	b := &Prescription{PatientID: uuid.New(), MedicationName: "Ibuprofen", Dosage: "200mg"}
	for _, p := range []*Prescription{a, b} {
		if err := svc.PrescribeForDoctorUser(ctx, userID, p); err != nil {
			t.Fatalf("PrescribeForDoctorUser: %v", err)
		}
	}
	if _, err := svc.Dispense(ctx, a.ID); err != nil {
		t.Fatalf("Dispense: %v", err)
	}

	items, total, err := svc.ListPending(ctx, 20, 0)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if total != 1 || items[0].ID != b.ID {
		t.Fatalf("got %d pending, want only the undispensed prescription", total)
	}
}
