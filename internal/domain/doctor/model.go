package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor table.
type Doctor struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	UserID        uuid.UUID  `db:"user_id" json:"user_id"`
	Specialty     string     `db:"specialty" json:"specialty"`
	DepartmentID  *uuid.UUID `db:"department_id" json:"department_id,omitempty"`
	LicenseNumber *string    `db:"license_number" json:"license_number,omitempty"`
	Phone         *string    `db:"phone" json:"phone,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// DoctorDetail is the flat list shape with joined account and department
// names.
type DoctorDetail struct {
	Doctor
	FullName       string  `db:"full_name" json:"full_name"`
	Email          string  `db:"email" json:"email"`
	DepartmentName *string `db:"department_name" json:"department_name,omitempty"`
}

// ListFilter narrows the doctor list.
type ListFilter struct {
	DepartmentID *uuid.UUID
	Specialty    string
}
