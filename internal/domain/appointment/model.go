package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. A row starts scheduled and moves exactly once.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

var terminalStatuses = map[string]bool{
	StatusCompleted: true,
	StatusCancelled: true,
	StatusNoShow:    true,
}

// Appointment maps to the appointment table.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor_id"`
	ScheduledAt time.Time `db:"scheduled_at" json:"scheduled_at"`
	Reason      *string   `db:"reason" json:"reason,omitempty"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// AppointmentDetail flattens the patient, doctor, and department joins into
// one row so clients never stitch nested objects.
type AppointmentDetail struct {
	Appointment
	PatientName     string  `db:"patient_name" json:"patient_name"`
	PatientMRN      string  `db:"patient_mrn" json:"patient_mrn"`
	DoctorName      string  `db:"doctor_name" json:"doctor_name"`
	DoctorSpecialty string  `db:"doctor_specialty" json:"doctor_specialty"`
	DepartmentName  *string `db:"department_name" json:"department_name,omitempty"`
}
