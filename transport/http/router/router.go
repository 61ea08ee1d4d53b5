package router

import (
	"medibook/internal/handlers/appointment"
	"medibook/internal/handlers/auth"
	"medibook/internal/handlers/doctor"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Doctor      doctor.Handler
	Appointment appointment.Handler
	Auth        auth.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Doctor.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
