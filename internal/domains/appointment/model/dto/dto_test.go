package dto_test

import (
	"testing"
	"time"

	"medibook/internal/domains/appointment/model"
	"medibook/internal/domains/appointment/model/dto"
	"medibook/shared/constant"
	gModel "medibook/shared/model"
	"medibook/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookAppointmentRequest_Normalize(t *testing.T) {
	req := dto.BookAppointmentRequest{
		DoctorID:     " doctor-id ",
		PatientName:  "  Jane Patient ",
		PatientEmail: " Jane.Patient@Example.COM ",
		PatientPhone: " 555-0100 ",
		Date:         " 2026-03-20 ",
		Time:         " 14:30 ",
		Notes:        "  back pain  ",
	}

	req.Normalize()

	assert.Equal(t, "doctor-id", req.DoctorID)
	assert.Equal(t, "Jane Patient", req.PatientName)
	assert.Equal(t, "jane.patient@example.com", req.PatientEmail)
	assert.Equal(t, "555-0100", req.PatientPhone)
	assert.Equal(t, "2026-03-20", req.Date)
	assert.Equal(t, "14:30", req.Time)
	assert.Equal(t, "back pain", req.Notes)
}

func TestBookAppointmentRequest_ToModel(t *testing.T) {
	req := dto.BookAppointmentRequest{
		DoctorID:     "doctor-id",
		PatientName:  "Jane Patient",
		PatientEmail: "jane@example.com",
		PatientPhone: "555-0100",
		Date:         "2026-03-20",
		Time:         "14:30",
		Notes:        "back pain",
	}

	now := time.Date(2026, 3, 15, 10, 30, 0, 0, timezone.GetLocation())

	appointment, err := req.ToModel(now)
	require.NoError(t, err)

	assert.NotEmpty(t, appointment.ID, "expected ID to be generated")
	assert.Equal(t, req.DoctorID, appointment.DoctorID)
	assert.Equal(t, req.PatientName, appointment.PatientName)
	assert.Equal(t, req.PatientEmail, appointment.PatientEmail)
	assert.Equal(t, model.StatusPending, appointment.Status)
	assert.Equal(t, "2026-03-20", appointment.AppointmentDate.Format(constant.CalendarFormat))
	assert.Equal(t, "14:30", appointment.AppointmentTime.Format(constant.ClockFormat))
	assert.Equal(t, req.PatientEmail, appointment.CreatedBy)
	assert.Equal(t, req.PatientEmail, appointment.ModifiedBy)
	assert.Equal(t, now, appointment.CreatedAt, "metadata must carry the caller's clock")
	assert.Equal(t, now, appointment.ModifiedAt, "metadata must carry the caller's clock")
}

func TestBookAppointmentRequest_ToModel_InvalidDate(t *testing.T) {
	req := dto.BookAppointmentRequest{
		Date: "20/03/2026",
		Time: "14:30",
	}

	_, err := req.ToModel(timezone.Now())

	assert.Error(t, err)
}

func TestBookAppointmentRequest_ToModel_InvalidTime(t *testing.T) {
	req := dto.BookAppointmentRequest{
		Date: "2026-03-20",
		Time: "2:30 PM",
	}

	_, err := req.ToModel(timezone.Now())

	assert.Error(t, err)
}

func TestAppointmentResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	appointment := model.Appointment{
		ID:              "appointment-1",
		DoctorID:        "doctor-id",
		PatientName:     "Jane Patient",
		PatientEmail:    "jane@example.com",
		PatientPhone:    "555-0100",
		AppointmentDate: time.Date(2026, 3, 20, 0, 0, 0, 0, timezone.GetLocation()),
		AppointmentTime: time.Date(0, 1, 1, 14, 30, 0, 0, timezone.GetLocation()),
		Notes:           "back pain",
		Status:          model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "jane@example.com",
			ModifiedBy: "admin",
		},
	}

	var response dto.AppointmentResponse
	response.FromModel(appointment, "Dr. Strange")

	assert.Equal(t, appointment.ID, response.ID)
	assert.Equal(t, "Dr. Strange", response.DoctorName)
	assert.Equal(t, "2026-03-20", response.Date)
	assert.Equal(t, "14:30", response.Time)
	assert.Equal(t, model.StatusConfirmed, response.Status)
	assert.Equal(t, appointment.CreatedBy, response.CreatedBy)
}

func TestAppointmentResponse_FromModel_Placeholders(t *testing.T) {
	var response dto.AppointmentResponse
	response.FromModel(model.Appointment{ID: "appointment-1"}, "")

	assert.Equal(t, constant.Placeholder, response.DoctorName)
	assert.Equal(t, constant.Placeholder, response.Date)
	assert.Equal(t, constant.Placeholder, response.Time)
}

func TestGetAppointmentsResponse_FromModels(t *testing.T) {
	appointments := []model.Appointment{
		{ID: "appointment-1", DoctorID: "doctor-1"},
		{ID: "appointment-2", DoctorID: "doctor-2"},
		{ID: "appointment-3", DoctorID: "doctor-missing"},
	}
	doctorNames := map[string]string{
		"doctor-1": "Dr. Strange",
		"doctor-2": "Dr. Who",
	}

	var response dto.GetAppointmentsResponse
	response.FromModels(appointments, doctorNames, 41, model.PageSize)

	assert.Equal(t, 41, response.TotalData)
	assert.Equal(t, 3, response.TotalPage)
	assert.Len(t, response.Appointments, 3)
	assert.Equal(t, "Dr. Strange", response.Appointments[0].DoctorName)
	assert.Equal(t, "Dr. Who", response.Appointments[1].DoctorName)
	assert.Equal(t, constant.Placeholder, response.Appointments[2].DoctorName)
}

func TestGetAppointmentsResponse_FromModels_EmptyList(t *testing.T) {
	var response dto.GetAppointmentsResponse
	response.FromModels(nil, nil, 0, model.PageSize)

	assert.Equal(t, 0, response.TotalData)
	assert.Equal(t, 1, response.TotalPage)
	assert.Len(t, response.Appointments, 0)
}
