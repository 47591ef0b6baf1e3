package pharmacy

import (
	"time"

	"github.com/google/uuid"
)

// Prescription statuses.
const (
	StatusPending   = "pending"
	StatusDispensed = "dispensed"
)

// Prescription maps to the prescription table. DoctorID is the prescriber.
type Prescription struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID       uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	MedicationName string     `db:"medication_name" json:"medication_name"`
	Dosage         string     `db:"dosage" json:"dosage"`
	Instructions   string     `db:"instructions" json:"instructions"`
	Status         string     `db:"status" json:"status"`
	DispensedAt    *time.Time `db:"dispensed_at" json:"dispensed_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// PrescriptionDetail is the flat list shape with the joined names.
type PrescriptionDetail struct {
	Prescription
	PatientName string `db:"patient_name" json:"patient_name"`
	PatientMRN  string `db:"patient_mrn" json:"patient_mrn"`
	DoctorName  string `db:"doctor_name" json:"doctor_name"`
}
