package doctor

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	doctors map[uuid.UUID]*Doctor
}

func newMockRepo() *mockRepo {
	return &mockRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	for _, existing := range m.doctors {
		if existing.UserID == d.UserID {
			return ErrProfileExists
		}
	}
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	return d, nil
}

func (m *mockRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*Doctor, error) {
	for _, d := range m.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (m *mockRepo) Update(_ context.Context, d *Doctor) error {
	if _, ok := m.doctors[d.ID]; !ok {
		return ErrDoctorNotFound
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.doctors[id]; !ok {
		return ErrDoctorNotFound
	}
	delete(m.doctors, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, filter ListFilter, limit, offset int) ([]*DoctorDetail, int, error) {
	var items []*DoctorDetail
	for _, d := range m.doctors {
		if filter.Specialty != "" && d.Specialty != filter.Specialty {
			continue
		}
		if filter.DepartmentID != nil && (d.DepartmentID == nil || *d.DepartmentID != *filter.DepartmentID) {
			continue
		}
		items = append(items, &DoctorDetail{Doctor: *d, FullName: "Dr. Test", Email: "doc@example.com"})
	}
	return items, len(items), nil
}

func newTestService() *Service {
	return NewService(newMockRepo())
}

func TestService_CreateDoctor_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.CreateDoctor(ctx, &Doctor{Specialty: "Cardiology"}); err == nil {
		t.Error("expected error for missing user_id")
	}
	if err := svc.CreateDoctor(ctx, &Doctor{UserID: uuid.New()}); err == nil {
		t.Error("expected error for missing specialty")
	}
}

func TestService_CreateDoctor_OneProfilePerUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	userID := uuid.New()

	if err := svc.CreateDoctor(ctx, &Doctor{UserID: userID, Specialty: "Cardiology"}); err != nil {
		t.Fatalf("CreateDoctor: %v", err)
	}
	if err := svc.CreateDoctor(ctx, &Doctor{UserID: userID, Specialty: "Neurology"}); err != ErrProfileExists {
		t.Fatalf("err = %v, want ErrProfileExists", err)
	}
}

func TestService_ListDoctors_SpecialtyFilter(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.CreateDoctor(ctx, &Doctor{UserID: uuid.New(), Specialty: "Cardiology"}); err != nil {
		t.Fatalf("CreateDoctor: %v", err)
	}
	if err := svc.CreateDoctor(ctx, &Doctor{UserID: uuid.New(), Specialty: "Neurology"}); err != nil {
		t.Fatalf("CreateDoctor: %v", err)
	}

	items, total, err := svc.ListDoctors(ctx, ListFilter{Specialty: "Cardiology"}, 20, 0)
	if err != nil {
		t.Fatalf("ListDoctors: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Specialty != "Cardiology" {
		t.Fatalf("got %d items, want only the cardiologist", len(items))
	}
}

func TestService_DeleteDoctor(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d := &Doctor{UserID: uuid.New(), Specialty: "Cardiology"}
	if err := svc.CreateDoctor(ctx, d); err != nil {
		t.Fatalf("CreateDoctor: %v", err)
	}
	if err := svc.DeleteDoctor(ctx, d.ID); err != nil {
		t.Fatalf("DeleteDoctor: %v", err)
	}
	if _, err := svc.GetDoctor(ctx, d.ID); err != ErrDoctorNotFound {
		t.Fatalf("err = %v, want ErrDoctorNotFound", err)
	}
}
