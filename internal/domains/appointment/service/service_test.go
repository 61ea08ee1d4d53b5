package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"medibook/config"
	"medibook/infras/jwt"
	mailerMocks "medibook/infras/mailer/mocks"
	"medibook/infras/otel/mocks"
	appointmentMocks "medibook/internal/domains/appointment/mocks"
	"medibook/internal/domains/appointment/model"
	"medibook/internal/domains/appointment/model/dto"
	"medibook/internal/domains/appointment/service"
	doctorMocks "medibook/internal/domains/doctor/mocks"
	doctorModel "medibook/internal/domains/doctor/model"
	cacheMocks "medibook/shared/cache/mocks"
	"medibook/shared/constant"
	gDto "medibook/shared/dto"
	gModel "medibook/shared/model"
	"medibook/shared/timezone"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.JWT.BookingSecret = "test-booking-secret"
	cfg.JWT.BookingExpireMin = 30

	return cfg
}

// fixedClock pins "today" so date checks are deterministic.
func fixedClock() service.NowFunc {
	return func() time.Time {
		return time.Date(2026, 3, 15, 10, 30, 0, 0, timezone.GetLocation())
	}
}

func validBookingRequest(token string) dto.BookAppointmentRequest {
	return dto.BookAppointmentRequest{
		Token:        token,
		DoctorID:     "doctor-id",
		PatientName:  "Jane Patient",
		PatientEmail: "jane@example.com",
		PatientPhone: "555-0100",
		Date:         "2026-03-20",
		Time:         "14:30",
	}
}

func TestAppointmentService_Book(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := appointmentMocks.NewMockAppointment(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := testConfig()
	jwtService := jwt.New(cfg)

	token, err := jwtService.GenerateBookingToken()
	require.NoError(t, err)

	svc := service.New(mockRepo, mockDoctorRepo, cfg, mockCache, mockOtel, jwtService, mockMailer, fixedClock())

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	tests := []struct {
		name      string
		req       func() dto.BookAppointmentRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful booking",
			req: func() dto.BookAppointmentRequest {
				return validBookingRequest(token)
			},
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, appointment model.Appointment) error {
						assert.Equal(t, model.StatusPending, appointment.Status)
						assert.Equal(t, "jane@example.com", appointment.PatientEmail)
						assert.Equal(t, fixedClock()(), appointment.CreatedAt, "metadata must use the service clock")
						assert.Equal(t, fixedClock()(), appointment.ModifiedAt, "metadata must use the service clock")

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "missing booking token",
			req: func() dto.BookAppointmentRequest {
				return validBookingRequest("")
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "garbage booking token",
			req: func() dto.BookAppointmentRequest {
				return validBookingRequest("not-a-token")
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "missing patient name",
			req: func() dto.BookAppointmentRequest {
				req := validBookingRequest(token)
				req.PatientName = ""

				return req
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "invalid patient email",
			req: func() dto.BookAppointmentRequest {
				req := validBookingRequest(token)
				req.PatientEmail = "not-an-email"

				return req
			},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "doctor does not exist",
			req: func() dto.BookAppointmentRequest {
				return validBookingRequest(token)
			},
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "doctor check error",
			req: func() dto.BookAppointmentRequest {
				return validBookingRequest(token)
			},
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "unparseable date",
			req: func() dto.BookAppointmentRequest {
				req := validBookingRequest(token)
				req.Date = "20/03/2026"

				return req
			},
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "date in the past",
			req: func() dto.BookAppointmentRequest {
				req := validBookingRequest(token)
				req.Date = "2026-03-14"

				return req
			},
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "today is not in the past",
			req: func() dto.BookAppointmentRequest {
				req := validBookingRequest(token)
				req.Date = "2026-03-15"

				return req
			},
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "insert error",
			req: func() dto.BookAppointmentRequest {
				return validBookingRequest(token)
			},
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("insert error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Book(context.Background(), tt.req())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentService_BookNotifiesAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := appointmentMocks.NewMockAppointment(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := testConfig()
	cfg.Mail.AdminAddress = "admin@clinic.example"
	jwtService := jwt.New(cfg)

	token, err := jwtService.GenerateBookingToken()
	require.NoError(t, err)

	svc := service.New(mockRepo, mockDoctorRepo, cfg, mockCache, mockOtel, jwtService, mockMailer, fixedClock())

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	tests := []struct {
		name      string
		setupMock func()
	}{
		{
			name: "notification sent",
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockDoctorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(doctorModel.Doctor{ID: "doctor-id", Name: "Dr. Strange"}, nil)

				mockMailer.EXPECT().
					Send(gomock.Any(), "admin@clinic.example", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _, subject, body string) error {
						assert.Contains(t, subject, "Jane Patient")
						assert.Contains(t, body, "Dr. Strange")
						assert.Contains(t, body, "2026-03-20")

						return nil
					})
			},
		},
		{
			name: "mail failure keeps the booking",
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockDoctorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(doctorModel.Doctor{ID: "doctor-id", Name: "Dr. Strange"}, nil)

				mockMailer.EXPECT().
					Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("smtp down"))
			},
		},
		{
			name: "doctor lookup failure still notifies",
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockDoctorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(doctorModel.Doctor{}, errors.New("database error"))

				mockMailer.EXPECT().
					Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _, body string) error {
						assert.Contains(t, body, constant.Placeholder)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Book(context.Background(), validBookingRequest(token))

			assert.NoError(t, err)
		})
	}
}

func TestAppointmentService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := appointmentMocks.NewMockAppointment(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := testConfig()
	jwtService := jwt.New(cfg)

	svc := service.New(mockRepo, mockDoctorRepo, cfg, mockCache, mockOtel, jwtService, mockMailer, fixedClock())

	appointments := []model.Appointment{
		{
			ID:              "appointment-1",
			DoctorID:        "doctor-id",
			PatientName:     "Jane Patient",
			PatientEmail:    "jane@example.com",
			PatientPhone:    "555-0100",
			AppointmentDate: time.Date(2026, 3, 20, 0, 0, 0, 0, timezone.GetLocation()),
			AppointmentTime: time.Date(0, 1, 1, 14, 30, 0, 0, timezone.GetLocation()),
			Status:          model.StatusPending,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
			},
		},
	}

	tests := []struct {
		name      string
		params    gDto.QueryParams
		setupMock func()
		wantErr   bool
		check     func(t *testing.T, res dto.GetAppointmentsResponse)
	}{
		{
			name:   "successful listing with doctor names",
			params: gDto.QueryParams{Page: 1, Limit: model.PageSize},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(21, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(appointments, nil)

				mockDoctorRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]doctorModel.Doctor{{ID: "doctor-id", Name: "Dr. Strange"}}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			check: func(t *testing.T, res dto.GetAppointmentsResponse) {
				assert.Equal(t, 21, res.TotalData)
				assert.Equal(t, 2, res.TotalPage)
				require.Len(t, res.Appointments, 1)
				assert.Equal(t, "Dr. Strange", res.Appointments[0].DoctorName)
				assert.Equal(t, "2026-03-20", res.Appointments[0].Date)
				assert.Equal(t, "14:30", res.Appointments[0].Time)
			},
		},
		{
			name:   "cache hit",
			params: gDto.QueryParams{Page: 1, Limit: model.PageSize},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, res dto.GetAppointmentsResponse) {},
		},
		{
			name:   "count error",
			params: gDto.QueryParams{Page: 1, Limit: model.PageSize},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
		{
			name:   "get all error",
			params: gDto.QueryParams{Page: 1, Limit: model.PageSize},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("get all error"))

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetAll(context.Background(), tt.params, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				tt.check(t, res)
			}
		})
	}
}

func TestAppointmentService_GetMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := appointmentMocks.NewMockAppointment(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := testConfig()
	jwtService := jwt.New(cfg)

	svc := service.New(mockRepo, mockDoctorRepo, cfg, mockCache, mockOtel, jwtService, mockMailer, fixedClock())

	today := timezone.Today(fixedClock()())

	upcoming := []model.Appointment{
		{ID: "appointment-today", DoctorID: "doctor-id", PatientEmail: "jane@example.com", AppointmentDate: today},
		{ID: "appointment-later", DoctorID: "doctor-id", PatientEmail: "jane@example.com", AppointmentDate: today.AddDate(0, 0, 5)},
	}
	past := []model.Appointment{
		{ID: "appointment-past", DoctorID: "doctor-id", PatientEmail: "jane@example.com", AppointmentDate: today.AddDate(0, 0, -1)},
	}

	t.Run("splits upcoming and past", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Appointment, error) {
				assert.Equal(t, gDto.SortDirAsc, params.SortDir)
				assert.Zero(t, params.Limit)

				return upcoming, nil
			})

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Appointment, error) {
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)
				assert.Equal(t, model.PastVisibleLimit, params.Limit)

				return past, nil
			})

		mockDoctorRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]doctorModel.Doctor{{ID: "doctor-id", Name: "Dr. Strange"}}, nil)

		res, err := svc.GetMine(context.Background(), "jane@example.com")

		assert.NoError(t, err)
		require.Len(t, res.Upcoming, 2)
		require.Len(t, res.Past, 1)
		assert.Equal(t, "appointment-today", res.Upcoming[0].ID)
		assert.Equal(t, "appointment-past", res.Past[0].ID)
		assert.Equal(t, "Dr. Strange", res.Past[0].DoctorName)
	})

	t.Run("no appointments", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Appointment{}, nil).
			Times(2)

		res, err := svc.GetMine(context.Background(), "nobody@example.com")

		assert.NoError(t, err)
		assert.Empty(t, res.Upcoming)
		assert.Empty(t, res.Past)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.GetMine(context.Background(), "jane@example.com")

		assert.Error(t, err)
	})
}

func TestAppointmentService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := appointmentMocks.NewMockAppointment(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := testConfig()
	jwtService := jwt.New(cfg)

	svc := service.New(mockRepo, mockDoctorRepo, cfg, mockCache, mockOtel, jwtService, mockMailer, fixedClock())

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	tests := []struct {
		name      string
		req       dto.UpdateAppointmentRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful status update",
			req:  dto.UpdateAppointmentRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "reschedule parses date and time",
			req:  dto.UpdateAppointmentRequest{Date: "2026-04-01", Time: "09:00"},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						date, ok := fields[model.FieldAppointmentDate].(time.Time)
						require.True(t, ok)
						assert.Equal(t, "2026-04-01", date.Format(constant.CalendarFormat))

						clock, ok := fields[model.FieldAppointmentTime].(time.Time)
						require.True(t, ok)
						assert.Equal(t, "09:00", clock.Format(constant.ClockFormat))

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:      "empty update request",
			req:       dto.UpdateAppointmentRequest{},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "invalid date format",
			req:  dto.UpdateAppointmentRequest{Date: "01-04-2026"},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "appointment not found",
			req:  dto.UpdateAppointmentRequest{Status: model.StatusCancelled},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "update error",
			req:  dto.UpdateAppointmentRequest{Status: model.StatusCancelled},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
			err := svc.Update(ctx, tt.req, "appointment-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := appointmentMocks.NewMockAppointment(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockMailer := mailerMocks.NewMockMailer(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := testConfig()
	jwtService := jwt.New(cfg)

	svc := service.New(mockRepo, mockDoctorRepo, cfg, mockCache, mockOtel, jwtService, mockMailer, fixedClock())

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful deletion",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "appointment not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "delete error",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("delete error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), "appointment-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
