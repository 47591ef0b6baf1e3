package lab

import (
	"time"

	"github.com/google/uuid"
)

// Lab test statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// LabTest maps to the lab_test table. DoctorID is the ordering doctor.
type LabTest struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	PatientID  uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID   uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	TestName   string     `db:"test_name" json:"test_name"`
	Status     string     `db:"status" json:"status"`
	Result     *string    `db:"result" json:"result,omitempty"`
	ResultedAt *time.Time `db:"resulted_at" json:"resulted_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// LabTestDetail is the flat list shape with the joined names.
type LabTestDetail struct {
	LabTest
	PatientName string `db:"patient_name" json:"patient_name"`
	PatientMRN  string `db:"patient_mrn" json:"patient_mrn"`
	DoctorName  string `db:"doctor_name" json:"doctor_name"`
}
