package admin

import (
	"time"

	"github.com/google/uuid"
)

// Department maps to the department table.
type Department struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// StaffMember links a user account to a designation and department.
type StaffMember struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	Designation  string     `db:"designation" json:"designation"`
	DepartmentID *uuid.UUID `db:"department_id" json:"department_id,omitempty"`
	Phone        *string    `db:"phone" json:"phone,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// StaffDetail is the flat list shape: staff columns plus the joined user and
// department names.
type StaffDetail struct {
	StaffMember
	UserFullName   string  `db:"user_full_name" json:"user_full_name"`
	UserEmail      string  `db:"user_email" json:"user_email"`
	DepartmentName *string `db:"department_name" json:"department_name,omitempty"`
}
