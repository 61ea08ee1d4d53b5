package doctor

import (
	"net/http"

	"medibook/infras/otel"
	"medibook/internal/domains/doctor/model"
	"medibook/internal/domains/doctor/model/dto"
	"medibook/internal/domains/doctor/service"
	"medibook/shared"
	"medibook/shared/constant"
	gDto "medibook/shared/dto"
	"medibook/shared/validator"
	"medibook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Doctor
	otel    otel.Otel
}

func New(service service.Doctor, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/doctors", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetDoctors)
		routerGroup.Get("/manage", handler.GetAllDoctors)
		routerGroup.Get("/{id}", handler.GetDoctorByID)
		routerGroup.Post("/", handler.CreateDoctor)
		routerGroup.Patch("/{id}", handler.UpdateDoctor)
		routerGroup.Delete("/{id}", handler.DeleteDoctor)
	})
}

// GetDoctors lists the publicly visible doctors ordered by name.
// @Summary Get published doctors
// @Description Retrieve the published doctors for the public directory.
// @Tags Doctor
// @Produce json
// @Success 200 {object} response.Data[dto.GetDoctorsResponse] "List of published doctors"
// @Failure 500 {object} response.Error
// @Router /v1/doctors [get]
func (handler *Handler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctors")
	defer scope.End()

	doctors, err := handler.service.GetPublished(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get published doctors")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, doctors)
}

// GetAllDoctors retrieves every doctor, published or not, with pagination.
// @Summary Get all doctors
// @Description Retrieve all doctors for administration, with optional filtering and pagination.
// @Tags Doctor
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name (substring match)"
// @Success 200 {object} response.Data[dto.GetDoctorsResponse] "List of doctors"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/manage [get]
// @Security BearerAuth
func (handler *Handler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllDoctors")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	doctors, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctors")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, doctors)
}

// GetDoctorByID retrieves a doctor profile by its ID.
// @Summary Get a doctor by ID
// @Description Retrieve a doctor profile by its unique identifier.
// @Tags Doctor
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Data[dto.DoctorResponse] "Doctor profile"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [get]
func (handler *Handler) GetDoctorByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctorByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	doctor, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctor by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, doctor)
}

// CreateDoctor creates a new doctor profile from a multipart form.
// @Summary Create a doctor
// @Description Create a new doctor profile, optionally with a photo upload.
// @Tags Doctor
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Message "Doctor created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors [post]
// @Security BearerAuth
func (handler *Handler) CreateDoctor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDoctor")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateDoctorRequest{
		Name:      request.FormValue("name"),
		Specialty: request.FormValue("specialty"),
		Bio:       request.FormValue("bio"),
		Phone:     request.FormValue("phone"),
		Email:     request.FormValue("email"),
	}

	if publishedStr := request.FormValue("published"); publishedStr != "" {
		req.Published = shared.ConvertStringToBool(publishedStr)
	}

	file, fileHeader, err := request.FormFile("photo")
	if err == nil {
		req.Photo = fileHeader
		req.PhotoFile = file
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create doctor")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Doctor created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Doctor created successfully")
}

// UpdateDoctor updates an existing doctor profile by its ID.
// @Summary Update a doctor by ID
// @Description Update a doctor profile, optionally replacing the photo.
// @Tags Doctor
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Message "Doctor updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDoctor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateDoctorRequest{
		Name:      r.FormValue("name"),
		Specialty: r.FormValue("specialty"),
		Bio:       r.FormValue("bio"),
		Phone:     r.FormValue("phone"),
		Email:     r.FormValue("email"),
	}

	if publishedStr := r.FormValue("published"); publishedStr != "" {
		req.Published = shared.ConvertStringToBool(publishedStr)
	}

	file, fileHeader, err := r.FormFile("photo")
	if err == nil {
		req.Photo = fileHeader
		req.PhotoFile = file
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update doctor")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Doctor updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Doctor updated successfully")
}

// DeleteDoctor deletes a doctor by its ID.
// @Summary Delete a doctor by ID
// @Description Permanently remove a doctor profile.
// @Tags Doctor
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Message "Doctor deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDoctor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete doctor")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Doctor deleted successfully")
}
