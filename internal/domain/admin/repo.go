package admin

import (
	"context"

	"github.com/google/uuid"
)

type DepartmentRepository interface {
	Create(ctx context.Context, d *Department) error
	GetByID(ctx context.Context, id uuid.UUID) (*Department, error)
	Update(ctx context.Context, d *Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Department, int, error)
}

type StaffRepository interface {
	Create(ctx context.Context, s *StaffMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*StaffMember, error)
	Update(ctx context.Context, s *StaffMember) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*StaffDetail, int, error)
}
