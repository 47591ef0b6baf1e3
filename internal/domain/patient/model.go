package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. MRN is assigned by the store on create
// and never changes.
type Patient struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	UserID      uuid.UUID  `db:"user_id" json:"user_id"`
	MRN         string     `db:"mrn" json:"mrn"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender      *string    `db:"gender" json:"gender,omitempty"`
	BloodGroup  *string    `db:"blood_group" json:"blood_group,omitempty"`
	Phone       *string    `db:"phone" json:"phone,omitempty"`
	Address     *string    `db:"address" json:"address,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// PatientDetail is the flat list shape with the joined account name.
type PatientDetail struct {
	Patient
	FullName string `db:"full_name" json:"full_name"`
	Email    string `db:"email" json:"email"`
}
