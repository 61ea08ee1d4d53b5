package service

import (
	"context"
	"fmt"
	"time"

	"medibook/config"
	"medibook/infras/jwt"
	"medibook/infras/mailer"
	"medibook/infras/otel"
	"medibook/internal/domains/appointment/model"
	"medibook/internal/domains/appointment/model/dto"
	"medibook/internal/domains/appointment/repository"
	doctorModel "medibook/internal/domains/doctor/model"
	doctorRepo "medibook/internal/domains/doctor/repository"
	"medibook/shared"
	"medibook/shared/cache"
	"medibook/shared/constant"
	gDto "medibook/shared/dto"
	"medibook/shared/failure"
	"medibook/shared/timezone"
	"medibook/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
	cacheCountAppointment  = "appointment:count"
)

// NowFunc supplies the current time so date checks stay testable.
type NowFunc func() time.Time

// Clock is the production NowFunc.
func Clock() NowFunc {
	return timezone.Now
}

type Appointment interface {
	Book(ctx context.Context, req dto.BookAppointmentRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	GetMine(ctx context.Context, email string) (dto.MyAppointmentsResponse, error)
	Update(ctx context.Context, req dto.UpdateAppointmentRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Appointment
	doctorRepo doctorRepo.Doctor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwt        jwt.JWT
	mailer     mailer.Mailer
	now        NowFunc
}

func New(
	repo repository.Appointment,
	doctorRepo doctorRepo.Doctor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	jwtService jwt.JWT,
	mailer mailer.Mailer,
	now NowFunc,
) Appointment {
	return &serviceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwt:        jwtService,
		mailer:     mailer,
		now:        now,
	}
}

// Book runs the full booking workflow for a public form submission. Checks
// run in a fixed order and the first failure rejects the request with no
// database write. Admin notification is best effort: a mail error never
// fails a booking that already persisted.
func (s *serviceImpl) Book(ctx context.Context, req dto.BookAppointmentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Book")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.jwt.ValidateToken(req.Token, jwt.BookingToken); err != nil {
		log.Warn().Err(err).Msg("booking rejected: invalid booking token")

		return failure.BadRequestFromString("invalid booking token") // nolint:wrapcheck
	}

	req.Normalize()

	if err = validator.ValidateStruct(&req); err != nil {
		return err // nolint:wrapcheck
	}

	doctorExists, err := s.doctorRepo.Exist(ctx, shared.FilterByID(req.DoctorID, doctorModel.FieldID, doctorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if doctor exists")

		return fmt.Errorf("failed to check if doctor exists: %w", err)
	}

	if !doctorExists {
		return failure.BadRequestFromString("doctor does not exist") // nolint:wrapcheck
	}

	appointment, err := req.ToModel(s.now())
	if err != nil {
		log.Error().Err(err).Msg("failed to parse appointment request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if appointment.AppointmentDate.Before(timezone.Today(s.now())) {
		return failure.BadRequestFromString("appointment date cannot be in the past") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, appointment); err != nil {
		log.Error().Err(err).Msg("failed to create appointment")

		return fmt.Errorf("failed to create appointment: %w", err)
	}

	s.notifyAdmin(ctx, appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()

	return nil
}

// notifyAdmin sends the new-request mail to the configured admin address and
// only logs failures.
func (s *serviceImpl) notifyAdmin(ctx context.Context, appointment model.Appointment) {
	if s.cfg.Mail.AdminAddress == constant.Empty {
		return
	}

	doctorName := constant.Placeholder

	doctor, err := s.doctorRepo.Get(ctx, shared.FilterByID(appointment.DoctorID, doctorModel.FieldID, doctorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve doctor for notification")
	} else if doctor.Name != constant.Empty {
		doctorName = doctor.Name
	}

	notes := appointment.Notes
	if notes == constant.Empty {
		notes = "None"
	}

	subject := fmt.Sprintf("New appointment request from %s", appointment.PatientName)
	body := fmt.Sprintf(
		"Patient: %s\nEmail: %s\nPhone: %s\nDoctor: %s\nDate: %s\nTime: %s\nNotes: %s\n",
		appointment.PatientName,
		appointment.PatientEmail,
		appointment.PatientPhone,
		doctorName,
		appointment.AppointmentDate.Format(constant.CalendarFormat),
		appointment.AppointmentTime.Format(constant.ClockFormat),
		notes,
	)

	if err := s.mailer.Send(ctx, s.cfg.Mail.AdminAddress, subject, body); err != nil {
		log.Error().Err(err).Msg("failed to send admin notification, booking kept")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	doctorNames, err := s.resolveDoctorNames(ctx, models)
	if err != nil {
		return res, err
	}

	res.FromModels(models, doctorNames, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	doctorNames, err := s.resolveDoctorNames(ctx, []model.Appointment{appointment})
	if err != nil {
		return res, err
	}

	res.FromModel(appointment, doctorNames[appointment.DoctorID])

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

// GetMine lists a patient's appointments by their email, split into upcoming
// (today or later, soonest first) and the most recent past ones.
func (s *serviceImpl) GetMine(ctx context.Context, email string) (res dto.MyAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	today := timezone.Today(s.now())

	upcoming, err := s.repo.GetAll(ctx,
		gDto.QueryParams{SortBy: model.FieldAppointmentDate, SortDir: gDto.SortDirAsc},
		patientDateFilter(email, today, gDto.FilterOperatorGreaterEq),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get upcoming appointments")

		return res, fmt.Errorf("failed to get upcoming appointments: %w", err)
	}

	past, err := s.repo.GetAll(ctx,
		gDto.QueryParams{Limit: model.PastVisibleLimit, SortBy: model.FieldAppointmentDate, SortDir: gDto.SortDirDesc},
		patientDateFilter(email, today, gDto.FilterOperatorLess),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get past appointments")

		return res, fmt.Errorf("failed to get past appointments: %w", err)
	}

	doctorNames, err := s.resolveDoctorNames(ctx, append(append([]model.Appointment{}, upcoming...), past...))
	if err != nil {
		return res, err
	}

	res.Upcoming = make([]dto.AppointmentResponse, len(upcoming))
	for i, mod := range upcoming {
		res.Upcoming[i].FromModel(mod, doctorNames[mod.DoctorID])
	}

	res.Past = make([]dto.AppointmentResponse, len(past))
	for i, mod := range past {
		res.Past[i].FromModel(mod, doctorNames[mod.DoctorID])
	}

	return res, nil
}

func patientDateFilter(email string, date time.Time, dateOperator string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPatientEmail,
				Value:    email,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldAppointmentDate,
				Value:    date,
				Operator: dateOperator,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAppointmentRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if req == (dto.UpdateAppointmentRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if appointment exists")

		return fmt.Errorf("failed to check if appointment exists: %w", err)
	}

	if !exist {
		log.Error().Msg("appointment not found")

		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if req.Date != constant.Empty {
		date, err := timezone.Parse(constant.CalendarFormat, req.Date)
		if err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
		}

		updatedFields[model.FieldAppointmentDate] = date
	}

	if req.Time != constant.Empty {
		clock, err := timezone.Parse(constant.ClockFormat, req.Time)
		if err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid time format: %v", err)) // nolint:wrapcheck
		}

		updatedFields[model.FieldAppointmentTime] = clock
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update appointment")

		return fmt.Errorf("failed to update appointment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if appointment exists")

		return fmt.Errorf("failed to check if appointment exists: %w", err)
	}

	if !exist {
		log.Error().Msg("appointment not found")

		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete appointment")

		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
	}()

	return nil
}

// resolveDoctorNames fetches the names for every distinct doctor id in the
// given appointments.
func (s *serviceImpl) resolveDoctorNames(ctx context.Context, models []model.Appointment) (map[string]string, error) {
	names := map[string]string{}

	ids := []string{}
	for _, mod := range models {
		if mod.DoctorID == constant.Empty {
			continue
		}

		if _, seen := names[mod.DoctorID]; !seen {
			names[mod.DoctorID] = constant.Empty
			ids = append(ids, mod.DoctorID)
		}
	}

	if len(ids) == 0 {
		return names, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    doctorModel.FieldID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    doctorModel.TableName,
			},
		},
	}

	doctors, err := s.doctorRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve doctor names")

		return names, fmt.Errorf("failed to resolve doctor names: %w", err)
	}

	for _, doctor := range doctors {
		names[doctor.ID] = doctor.Name
	}

	return names, nil
}
