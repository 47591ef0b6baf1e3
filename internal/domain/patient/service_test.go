package patient

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
	nextMRN  int
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient), nextMRN: 1}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	for _, existing := range m.patients {
		if existing.UserID == p.UserID {
			return ErrProfileExists
		}
	}
	p.ID = uuid.New()
	p.MRN = fmt.Sprintf("MRN%06d", m.nextMRN)
	m.nextMRN++
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	return p, nil
}

func (m *mockRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*Patient, error) {
	for _, p := range m.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, ErrPatientNotFound
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return ErrPatientNotFound
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) List(_ context.Context, nameSearch string, limit, offset int) ([]*PatientDetail, int, error) {
	var items []*PatientDetail
	for _, p := range m.patients {
		items = append(items, &PatientDetail{Patient: *p, FullName: "Test Patient", Email: "p@example.com"})
	}
	return items, len(items), nil
}

func newTestService() *Service {
	return NewService(newMockRepo())
}

func TestService_CreatePatient_AssignsMRN(t *testing.T) {
	svc := newTestService()
	p := &Patient{UserID: uuid.New()}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if p.MRN == "" {
		t.Fatal("expected an MRN")
	}
}

func TestService_CreatePatient_RequiresUser(t *testing.T) {
	svc := newTestService()
	if err := svc.CreatePatient(context.Background(), &Patient{}); err == nil {
		t.Fatal("expected error for missing user_id")
	}
}

func TestService_CreatePatient_OneProfilePerUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	userID := uuid.New()

	if err := svc.CreatePatient(ctx, &Patient{UserID: userID}); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if err := svc.CreatePatient(ctx, &Patient{UserID: userID}); err != ErrProfileExists {
		t.Fatalf("err = %v, want ErrProfileExists", err)
	}
}

func TestService_GetByUserID(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	userID := uuid.New()

	p := &Patient{UserID: userID}
	if err := svc.CreatePatient(ctx, p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}

	got, err := svc.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.ID != p.ID {
		t.Fatal("wrong profile returned")
	}

	if _, err := svc.GetByUserID(ctx, uuid.New()); err != ErrPatientNotFound {
		t.Fatalf("err = %v, want ErrPatientNotFound", err)
	}
}
