package appointment

import (
	"net/http"
	"net/url"

	"medibook/config"
	"medibook/infras/jwt"
	"medibook/infras/otel"
	"medibook/internal/domains/appointment/model"
	"medibook/internal/domains/appointment/model/dto"
	"medibook/internal/domains/appointment/service"
	doctorService "medibook/internal/domains/doctor/service"
	"medibook/shared/constant"
	gDto "medibook/shared/dto"
	"medibook/shared/failure"
	"medibook/shared/validator"
	"medibook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service       service.Appointment
	doctorService doctorService.Doctor
	jwt           jwt.JWT
	cfg           *config.Config
	otel          otel.Otel
}

func New(service service.Appointment, doctorService doctorService.Doctor, jwtService jwt.JWT, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service:       service,
		doctorService: doctorService,
		jwt:           jwtService,
		cfg:           cfg,
		otel:          otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.BookAppointment)
		routerGroup.Get("/form", handler.GetBookingForm)
		routerGroup.Get("/mine", handler.GetMyAppointments)
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Patch("/{id}", handler.UpdateAppointment)
		routerGroup.Delete("/{id}", handler.DeleteAppointment)
	})
}

// GetBookingForm returns everything the public booking form needs to render:
// a fresh booking token and the published doctors for the select box.
// @Summary Get booking form data
// @Description Issue a booking token and list the bookable doctors.
// @Tags Appointment
// @Produce json
// @Success 200 {object} response.Data[dto.BookingFormResponse] "Booking form data"
// @Failure 500 {object} response.Error
// @Router /v1/appointments/form [get]
func (handler *Handler) GetBookingForm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingForm")
	defer scope.End()

	token, err := handler.jwt.GenerateBookingToken()
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate booking token")

		response.WithError(w, failure.InternalError(err))

		return
	}

	doctors, err := handler.doctorService.GetPublished(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get published doctors")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.BookingFormResponse{
		Token:   token,
		Doctors: doctors.Doctors,
	})
}

// BookAppointment handles a public booking form submission. The submission is
// form encoded and the browser is redirected back to the referring page with
// only an opaque success/error outcome, never the reason a request was
// rejected.
// @Summary Book an appointment
// @Description Submit the public booking form.
// @Tags Appointment
// @Accept x-www-form-urlencoded
// @Success 303 "Redirect back with booking=success or booking=error"
// @Router /v1/appointments [post]
func (handler *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookAppointment")
	defer scope.End()

	if err := r.ParseForm(); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse booking form")

		handler.redirectWithOutcome(w, r, constant.BookingOutcomeError)

		return
	}

	req := dto.BookAppointmentRequest{
		Token:        r.FormValue("token"),
		DoctorID:     r.FormValue("doctor_id"),
		PatientName:  r.FormValue("patient_name"),
		PatientEmail: r.FormValue("patient_email"),
		PatientPhone: r.FormValue("patient_phone"),
		Date:         r.FormValue("date"),
		Time:         r.FormValue("time"),
		Notes:        r.FormValue("notes"),
	}

	if err := handler.service.Book(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("booking rejected")

		handler.redirectWithOutcome(w, r, constant.BookingOutcomeError)

		return
	}

	scope.AddEvent("Appointment booked successfully")

	handler.redirectWithOutcome(w, r, constant.BookingOutcomeSuccess)
}

// redirectWithOutcome sends the browser back to the referring page with the
// booking outcome as a query parameter. Without a usable referer the
// configured public URL is the fallback target.
func (handler *Handler) redirectWithOutcome(w http.ResponseWriter, r *http.Request, outcome string) {
	target := r.Header.Get(constant.RequestHeaderReferer)
	if target == constant.Empty {
		target = handler.cfg.App.PublicURL
	}

	parsed, err := url.Parse(target)
	if err != nil || parsed.String() == constant.Empty {
		parsed = &url.URL{Path: "/"}
	}

	query := parsed.Query()
	query.Set(constant.BookingParam, outcome)
	parsed.RawQuery = query.Encode()

	http.Redirect(w, r, parsed.String(), http.StatusSeeOther)
}

// GetMyAppointments lists the authenticated patient's appointments, split
// into upcoming and past.
// @Summary Get my appointments
// @Description Retrieve the caller's appointments matched by their email.
// @Tags Appointment
// @Produce json
// @Success 200 {object} response.Data[dto.MyAppointmentsResponse] "The caller's appointments"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyAppointments")
	defer scope.End()

	email, ok := ctx.Value(constant.ContextKeyUserEmail).(string)
	if !ok || email == constant.Empty {
		scope.TraceError(nil)
		log.Error().Msg("failed to get user email from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	appointments, err := handler.service.GetMine(ctx, email)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user appointments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetAppointments retrieves the admin listing. The page size is fixed and
// ordering is always newest request first.
// @Summary Get all appointments
// @Description Retrieve all appointments with optional status filter. Fixed page size, newest first.
// @Tags Appointment
// @Produce json
// @Param page query int false "Page number"
// @Param status query string false "Filter by status (pending, confirmed, completed, cancelled)"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of appointments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [get]
// @Security BearerAuth
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	// The listing contract is fixed: page size and newest-first ordering are
	// not client tunable.
	queryParams.Limit = model.PageSize
	queryParams.SortBy = constant.FieldCreatedAt
	queryParams.SortDir = gDto.SortDirDesc

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	appointments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetAppointmentByID retrieves an appointment by its ID.
// @Summary Get an appointment by ID
// @Description Retrieve an appointment by its unique identifier.
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	appointment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointment)
}

// UpdateAppointment updates an existing appointment by its ID.
// @Summary Update an appointment by ID
// @Description Update appointment fields, including its status.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentRequest true "Update Appointment Request"
// @Success 200 {object} response.Message "Appointment updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAppointmentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update appointment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Appointment updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Appointment updated successfully")
}

// DeleteAppointment deletes an appointment by its ID.
// @Summary Delete an appointment by ID
// @Description Permanently remove an appointment.
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete appointment")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Appointment deleted successfully")
}
