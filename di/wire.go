//go:build wireinject
// +build wireinject

package di

import (
	"medibook/config"
	"medibook/infras/jwt"
	"medibook/infras/mailer"
	"medibook/infras/otel"
	"medibook/infras/postgres"
	"medibook/infras/redis"
	"medibook/infras/s3"
	"medibook/permissions"
	"medibook/shared/cache"
	"medibook/transport/http"
	"medibook/transport/http/middleware"
	"medibook/transport/http/router"

	appointmentRepository "medibook/internal/domains/appointment/repository"
	appointmentService "medibook/internal/domains/appointment/service"
	authService "medibook/internal/domains/auth/service"
	doctorRepository "medibook/internal/domains/doctor/repository"
	doctorService "medibook/internal/domains/doctor/service"
	appointmentHandler "medibook/internal/handlers/appointment"
	authHandler "medibook/internal/handlers/auth"
	doctorHandler "medibook/internal/handlers/doctor"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	mailer.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var doctorDomain = wire.NewSet(
	doctorRepository.New,
	doctorService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.Clock,
	appointmentService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	doctorDomain,
	appointmentDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	doctorHandler.New,
	appointmentHandler.New,
	authHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
