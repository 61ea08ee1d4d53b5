package model

import (
	"time"

	"medibook/shared/model"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID              = "id"
	FieldDoctorID        = "doctor_id"
	FieldPatientName     = "patient_name"
	FieldPatientEmail    = "patient_email"
	FieldPatientPhone    = "patient_phone"
	FieldAppointmentDate = "appointment_date"
	FieldAppointmentTime = "appointment_time"
	FieldNotes           = "notes"
	FieldStatus          = "status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	// PageSize is the fixed admin listing page size.
	PageSize = 20
	// PastVisibleLimit caps how many past appointments the patient view shows.
	PastVisibleLimit = 5
)

type Appointment struct {
	ID              string    `db:"id"`
	DoctorID        string    `db:"doctor_id"`
	PatientName     string    `db:"patient_name"`
	PatientEmail    string    `db:"patient_email"`
	PatientPhone    string    `db:"patient_phone"`
	AppointmentDate time.Time `db:"appointment_date"`
	AppointmentTime time.Time `db:"appointment_time"`
	Notes           string    `db:"notes"`
	Status          string    `db:"status"`
	model.Metadata
}
