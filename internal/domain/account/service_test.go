package account

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carewell/hms/internal/platform/auth"
)

// -- Mock Repository --

type mockUserRepo struct {
	users map[uuid.UUID]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrEmailTaken
		}
	}
	u.ID = uuid.New()
	u.Active = true
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepo) List(_ context.Context, limit, offset int) ([]*User, int, error) {
	var items []*User
	for _, u := range m.users {
		items = append(items, u)
	}
	return items, len(items), nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *mockUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Active = active
	return nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	codec, err := auth.NewTokenCodec("test-signing-secret-0123456789")
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return NewService(newMockUserRepo(), codec, time.Hour, 4)
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "jane@example.com", "s3cret-pass", "Jane Doe")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Role != auth.RolePatient {
		t.Fatalf("role = %q, want patient", u.Role)
	}
	if u.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}

	result, err := svc.Login(ctx, "jane@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.ID != u.ID {
		t.Fatal("login returned wrong user")
	}
}

func TestService_Register_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "s3cret-pass", "Jane"); err == nil {
		t.Error("expected error for missing email")
	}
	if _, err := svc.Register(ctx, "jane@example.com", "short", "Jane"); err == nil {
		t.Error("expected error for short password")
	}
	if _, err := svc.Register(ctx, "jane@example.com", "s3cret-pass", ""); err == nil {
		t.Error("expected error for missing full_name")
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "jane@example.com", "s3cret-pass", "Jane"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "jane@example.com", "s3cret-pass", "Other Jane"); err != ErrEmailTaken {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "jane@example.com", "s3cret-pass", "Jane"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Login(ctx, "jane@example.com", "wrong-pass"); err != ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass"); err != ErrInvalidCredentials {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestService_Login_InactiveUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "jane@example.com", "s3cret-pass", "Jane")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.SetActive(ctx, u.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if _, err := svc.Login(ctx, "jane@example.com", "s3cret-pass"); err != ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestService_CreateUser_UnknownRole(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.CreateUser(context.Background(), "x@example.com", "s3cret-pass", "X", "superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestService_ChangePassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "jane@example.com", "s3cret-pass", "Jane")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ChangePassword(ctx, u.ID, "wrong-pass", "new-secret"); err != ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if err := svc.ChangePassword(ctx, u.ID, "s3cret-pass", "new-secret"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := svc.Login(ctx, "jane@example.com", "new-secret"); err != nil {
		t.Fatalf("Login with new password: %v", err)
	}
}
