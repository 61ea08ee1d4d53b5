package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"medibook/config"
	"medibook/infras/otel"
	"medibook/infras/s3"
	"medibook/internal/domains/doctor/model"
	"medibook/internal/domains/doctor/model/dto"
	"medibook/internal/domains/doctor/repository"
	"medibook/shared"
	"medibook/shared/cache"
	"medibook/shared/constant"
	gDto "medibook/shared/dto"
	"medibook/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetDoctor       = "doctor:get"
	cacheGetAllDoctor    = "doctor:gets"
	cacheCountDoctor     = "doctor:count"
	cachePublishedDoctor = "doctor:published"
)

type Doctor interface {
	Create(ctx context.Context, req dto.CreateDoctorRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDoctorsResponse, error)
	GetPublished(ctx context.Context) (dto.GetDoctorsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.DoctorResponse, error)
	Update(ctx context.Context, req dto.UpdateDoctorRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Doctor
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Doctor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Doctor {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDoctorRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	photoURL, uploadedObjectName, err := s.uploadPhoto(ctx, req.PhotoFile, req.Photo)
	if err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, photoURL)); err != nil {
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, uploadedObjectName)
		}

		return fmt.Errorf("failed to create doctor: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllDoctor)
		shared.InvalidateCaches(c, s.cache, cacheCountDoctor)
		shared.InvalidateCaches(c, s.cache, cachePublishedDoctor)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDoctorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDoctor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for doctors")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count doctors")

		return res, fmt.Errorf("failed to count doctors: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctors")

		return res, fmt.Errorf("failed to get doctors: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctors to cache")
		}
	}()

	return res, nil
}

// GetPublished lists the publicly visible doctors ordered by name. This feeds
// the public directory and the booking form's doctor select.
func (s *serviceImpl) GetPublished(ctx context.Context) (res dto.GetDoctorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPublished")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cachePublishedDoctor, &res)
	if err == nil {
		log.Info().Str("cacheKey", cachePublishedDoctor).Msg("cache hit for published doctors")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPublished,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldName,
		SortDir: gDto.SortDirAsc,
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get published doctors")

		return res, fmt.Errorf("failed to get published doctors: %w", err)
	}

	res.FromModels(models, len(models), 0)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cachePublishedDoctor, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save published doctors to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountDoctor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for doctor count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count doctors")

		return res, fmt.Errorf("failed to count doctors: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctor count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DoctorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetDoctor, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for doctor")

		return res, nil
	}

	doctor, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctor")

		return res, fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctor.ID == constant.Empty {
		return res, failure.NotFound("doctor not found") // nolint:wrapcheck
	}

	res.FromModel(doctor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctor to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateDoctorRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	currentDoctor, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctor")

		return fmt.Errorf("failed to get doctor: %w", err)
	}

	if currentDoctor.ID == constant.Empty {
		log.Error().Msg("doctor not found")

		return failure.NotFound("doctor not found") // nolint:wrapcheck
	}

	photoURL, uploadedObjectName, err := s.uploadPhoto(ctx, req.PhotoFile, req.Photo)
	if err != nil {
		return err
	}

	bucketName := s.cfg.External.S3.BucketName

	updatedFields := shared.TransformFields(req, user)
	if photoURL != constant.Empty {
		updatedFields[model.FieldPhoto] = photoURL
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update doctor")

		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		return fmt.Errorf("failed to update doctor: %w", err)
	}

	// Delete the old photo once the replacement is live
	if photoURL != constant.Empty && currentDoctor.Photo != constant.Empty {
		oldObjectName := s.s3.GetObjectNameFromURL(bucketName, currentDoctor.Photo)
		if oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, oldObjectName)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDoctor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete doctor from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDoctor)
		shared.InvalidateCaches(c, s.cache, cacheCountDoctor)
		shared.InvalidateCaches(c, s.cache, cachePublishedDoctor)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if doctor exists")

		return fmt.Errorf("failed to check if doctor exists: %w", err)
	}

	if !exist {
		log.Error().Msg("doctor not found")

		return failure.NotFound("doctor not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete doctor")

		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDoctor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete doctor from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDoctor)
		shared.InvalidateCaches(c, s.cache, cacheCountDoctor)
		shared.InvalidateCaches(c, s.cache, cachePublishedDoctor)
	}()

	return nil
}

func (s *serviceImpl) uploadPhoto(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url, objectName string, err error) {
	if header == nil {
		return constant.Empty, constant.Empty, nil
	}

	bucketName := s.cfg.External.S3.BucketName
	filename := uuid.NewString()

	// Keep the original extension
	parts := strings.Split(header.Filename, ".")
	if len(parts) > 1 {
		filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
	}

	url, err = s.s3.UploadFile(ctx, bucketName, model.EntityName, file, header, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload photo to S3")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload photo: %w", err)
	}

	return url, filename, nil
}
