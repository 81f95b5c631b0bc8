package router

import (
	"hotelier/internal/handlers/billing"
	"hotelier/internal/handlers/customer"
	"hotelier/internal/handlers/report"
	"hotelier/internal/handlers/reservation"
	"hotelier/internal/handlers/room"
	"hotelier/internal/handlers/travelcompany"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Room          room.Handler
	Customer      customer.Handler
	TravelCompany travelcompany.Handler
	Reservation   reservation.Handler
	Billing       billing.Handler
	Report        report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.TravelCompany.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Billing.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
