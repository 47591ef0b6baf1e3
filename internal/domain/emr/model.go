package emr

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord maps to the medical_record table.
type MedicalRecord struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	Diagnosis     string     `db:"diagnosis" json:"diagnosis"`
	Treatment     *string    `db:"treatment" json:"treatment,omitempty"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// RecordDetail is the flat list shape with the joined names.
type RecordDetail struct {
	MedicalRecord
	PatientName     string `db:"patient_name" json:"patient_name"`
	PatientMRN      string `db:"patient_mrn" json:"patient_mrn"`
	DoctorName      string `db:"doctor_name" json:"doctor_name"`
	DoctorSpecialty string `db:"doctor_specialty" json:"doctor_specialty"`
}
