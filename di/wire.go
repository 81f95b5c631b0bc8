//go:build wireinject
// +build wireinject

package di

import (
	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/infras/redis"
	"hotelier/infras/s3"
	"hotelier/shared/cache"
	"hotelier/shared/clock"
	"hotelier/transport/http"
	"hotelier/transport/http/middleware"
	"hotelier/transport/http/router"

	billingRepository "hotelier/internal/domains/billing/repository"
	billingService "hotelier/internal/domains/billing/service"
	customerRepository "hotelier/internal/domains/customer/repository"
	customerService "hotelier/internal/domains/customer/service"
	reconciliationService "hotelier/internal/domains/reconciliation/service"
	reportService "hotelier/internal/domains/report/service"
	reservationRepository "hotelier/internal/domains/reservation/repository"
	reservationService "hotelier/internal/domains/reservation/service"
	roomRepository "hotelier/internal/domains/room/repository"
	roomService "hotelier/internal/domains/room/service"
	travelCompanyRepository "hotelier/internal/domains/travelcompany/repository"
	travelCompanyService "hotelier/internal/domains/travelcompany/service"

	"hotelier/internal/domains/reconciliation/scheduler"

	billingHandler "hotelier/internal/handlers/billing"
	customerHandler "hotelier/internal/handlers/customer"
	reportHandler "hotelier/internal/handlers/report"
	reservationHandler "hotelier/internal/handlers/reservation"
	roomHandler "hotelier/internal/handlers/room"
	travelCompanyHandler "hotelier/internal/handlers/travelcompany"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var travelCompanyDomain = wire.NewSet(
	travelCompanyRepository.New,
	travelCompanyService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var billingDomain = wire.NewSet(
	billingRepository.New,
	billingService.New,
)

var reportDomain = wire.NewSet(
	reportService.New,
)

var reconciliationDomain = wire.NewSet(
	reconciliationService.New,
	scheduler.New,
)

var domains = wire.NewSet(
	roomDomain,
	customerDomain,
	travelCompanyDomain,
	reservationDomain,
	billingDomain,
	reportDomain,
	reconciliationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	customerHandler.New,
	travelCompanyHandler.New,
	reservationHandler.New,
	billingHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
