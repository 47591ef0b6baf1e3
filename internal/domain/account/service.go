package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carewell/hms/internal/platform/auth"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalid marks rejected input; anything else unrecognized is a store
	// failure and surfaces as a generic 500.
	ErrInvalid = errors.New("invalid input")
)

type Service struct {
	users      UserRepository
	codec      *auth.TokenCodec
	tokenTTL   time.Duration
	bcryptCost int
}

func NewService(users UserRepository, codec *auth.TokenCodec, tokenTTL time.Duration, bcryptCost int) *Service {
	return &Service{users: users, codec: codec, tokenTTL: tokenTTL, bcryptCost: bcryptCost}
}

// Register creates a patient-role account. Admins create other roles through
// CreateUser.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*User, error) {
	return s.createUser(ctx, email, password, fullName, auth.RolePatient)
}

// CreateUser creates an account with an explicit role.
func (s *Service) CreateUser(ctx context.Context, email, password, fullName string, role auth.Role) (*User, error) {
	parsed, ok := auth.ParseRole(string(role))
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalid, role)
	}
	return s.createUser(ctx, email, password, fullName, parsed)
}

func (s *Service) createUser(ctx context.Context, email, password, fullName string, role auth.Role) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalid)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalid)
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("%w: full_name is required", ErrInvalid)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the password and issues a credential. The same error comes
// back for an unknown email and a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.Active {
		return nil, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.codec.Issue(u.ID.String(), u.Role, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.users.List(ctx, limit, offset)
}

// ChangePassword verifies the current password before storing the new hash.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(u.PasswordHash, current); err != nil {
		return ErrInvalidCredentials
	}
	if len(next) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalid)
	}
	hash, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, id, hash)
}

func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.users.SetActive(ctx, id, active)
}
