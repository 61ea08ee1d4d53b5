package dto

import (
	"strings"
	"time"

	"medibook/internal/domains/appointment/model"
	doctorDto "medibook/internal/domains/doctor/model/dto"
	"medibook/shared"
	"medibook/shared/constant"
	gDto "medibook/shared/dto"
	gModel "medibook/shared/model"
	"medibook/shared/timezone"

	"github.com/google/uuid"
)

// BookAppointmentRequest is the public booking form submission. Token is the
// hidden anti-abuse field rendered into the form, not patient data.
type BookAppointmentRequest struct {
	Token        string `json:"token"         validate:"required"`
	DoctorID     string `json:"doctor_id"     validate:"required"`
	PatientName  string `json:"patient_name"  validate:"required,max=100"`
	PatientEmail string `json:"patient_email" validate:"required,email,max=100"`
	PatientPhone string `json:"patient_phone" validate:"required,max=20"`
	Date         string `json:"date"          validate:"required"`
	Time         string `json:"time"          validate:"required"`
	Notes        string `json:"notes"         validate:"omitempty,max=1000"`
}

// Normalize trims surrounding whitespace and lowercases the email so the
// stored record matches later self-service lookups.
func (b *BookAppointmentRequest) Normalize() {
	b.DoctorID = strings.TrimSpace(b.DoctorID)
	b.PatientName = strings.TrimSpace(b.PatientName)
	b.PatientEmail = strings.ToLower(strings.TrimSpace(b.PatientEmail))
	b.PatientPhone = strings.TrimSpace(b.PatientPhone)
	b.Date = strings.TrimSpace(b.Date)
	b.Time = strings.TrimSpace(b.Time)
	b.Notes = strings.TrimSpace(b.Notes)
}

// ToModel builds the pending appointment record. The caller passes the
// request time so the metadata stamps and the past-date check observe the
// same clock.
func (b *BookAppointmentRequest) ToModel(now time.Time) (model.Appointment, error) {
	date, err := timezone.Parse(constant.CalendarFormat, b.Date)
	if err != nil {
		return model.Appointment{}, err
	}

	clock, err := timezone.Parse(constant.ClockFormat, b.Time)
	if err != nil {
		return model.Appointment{}, err
	}

	return model.Appointment{
		ID:              uuid.NewString(),
		DoctorID:        b.DoctorID,
		PatientName:     b.PatientName,
		PatientEmail:    b.PatientEmail,
		PatientPhone:    b.PatientPhone,
		AppointmentDate: date,
		AppointmentTime: clock,
		Notes:           b.Notes,
		Status:          model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  b.PatientEmail,
			ModifiedBy: b.PatientEmail,
		},
	}, nil
}

type UpdateAppointmentRequest struct {
	DoctorID     string `db:"doctor_id"     json:"doctor_id"     validate:"omitempty"`
	PatientName  string `db:"patient_name"  json:"patient_name"  validate:"omitempty,max=100"`
	PatientEmail string `db:"patient_email" json:"patient_email" validate:"omitempty,email,max=100"`
	PatientPhone string `db:"patient_phone" json:"patient_phone" validate:"omitempty,max=20"`
	Date         string `json:"date"          validate:"omitempty"`
	Time         string `json:"time"          validate:"omitempty"`
	Notes        string `db:"notes"         json:"notes"         validate:"omitempty,max=1000"`
	Status       string `db:"status"        json:"status"        validate:"omitempty,oneof=pending confirmed completed cancelled"`
}

type AppointmentResponse struct {
	ID           string `json:"id"`
	DoctorID     string `json:"doctor_id"`
	DoctorName   string `json:"doctor_name"`
	PatientName  string `json:"patient_name"`
	PatientEmail string `json:"patient_email"`
	PatientPhone string `json:"patient_phone"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Notes        string `json:"notes"`
	Status       string `json:"status"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(mod model.Appointment, doctorName string) {
	r.ID = mod.ID
	r.DoctorID = mod.DoctorID
	r.DoctorName = doctorName
	r.PatientName = mod.PatientName
	r.PatientEmail = mod.PatientEmail
	r.PatientPhone = mod.PatientPhone
	r.Date = formatOrPlaceholder(mod.AppointmentDate, constant.CalendarFormat)
	r.Time = formatOrPlaceholder(mod.AppointmentTime, constant.ClockFormat)
	r.Notes = mod.Notes
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)

	if r.DoctorName == constant.Empty {
		r.DoctorName = constant.Placeholder
	}
}

func formatOrPlaceholder(t time.Time, layout string) string {
	if t.IsZero() {
		return constant.Placeholder
	}

	return t.Format(layout)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

// FromModels maps the listing page, resolving each doctor id through the
// given name index. Unknown doctors fall back to the placeholder.
func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, doctorNames map[string]string, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Appointments = make([]AppointmentResponse, len(models))
	for i, mod := range models {
		r.Appointments[i].FromModel(mod, doctorNames[mod.DoctorID])
	}
}

// BookingFormResponse carries what the public booking form needs to render:
// the anti-abuse token and the doctors offered in the select box.
type BookingFormResponse struct {
	Token   string                     `json:"token"`
	Doctors []doctorDto.DoctorResponse `json:"doctors"`
}

// MyAppointmentsResponse is the self-service view, split into upcoming
// appointments (today or later) and a bounded tail of past ones.
type MyAppointmentsResponse struct {
	Upcoming []AppointmentResponse `json:"upcoming"`
	Past     []AppointmentResponse `json:"past"`
}
