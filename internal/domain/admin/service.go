package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDepartmentExists   = errors.New("department already exists")
	ErrStaffNotFound      = errors.New("staff member not found")

	// ErrInvalid marks rejected input; anything else unrecognized is a store
	// failure and surfaces as a generic 500.
	ErrInvalid = errors.New("invalid input")
)

type Service struct {
	departments DepartmentRepository
	staff       StaffRepository
}

func NewService(departments DepartmentRepository, staff StaffRepository) *Service {
	return &Service{departments: departments, staff: staff}
}

// -- Departments --

func (s *Service) CreateDepartment(ctx context.Context, d *Department) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	return s.departments.Create(ctx, d)
}

func (s *Service) GetDepartment(ctx context.Context, id uuid.UUID) (*Department, error) {
	return s.departments.GetByID(ctx, id)
}

func (s *Service) UpdateDepartment(ctx context.Context, d *Department) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	return s.departments.Update(ctx, d)
}

func (s *Service) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	return s.departments.Delete(ctx, id)
}

func (s *Service) ListDepartments(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	return s.departments.List(ctx, limit, offset)
}

// -- Staff --

func (s *Service) CreateStaff(ctx context.Context, m *StaffMember) error {
	if m.UserID == uuid.Nil {
		return fmt.Errorf("%w: user_id is required", ErrInvalid)
	}
	m.Designation = strings.TrimSpace(m.Designation)
	if m.Designation == "" {
		return fmt.Errorf("%w: designation is required", ErrInvalid)
	}
	return s.staff.Create(ctx, m)
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*StaffMember, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *Service) UpdateStaff(ctx context.Context, m *StaffMember) error {
	m.Designation = strings.TrimSpace(m.Designation)
	if m.Designation == "" {
		return fmt.Errorf("%w: designation is required", ErrInvalid)
	}
	return s.staff.Update(ctx, m)
}

func (s *Service) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	return s.staff.Delete(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context, limit, offset int) ([]*StaffDetail, int, error) {
	return s.staff.List(ctx, limit, offset)
}
