package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	billingModel "hotelier/internal/domains/billing/model"
	billingRepo "hotelier/internal/domains/billing/repository"
	customerRepo "hotelier/internal/domains/customer/repository"
	"hotelier/internal/domains/reservation/model"
	"hotelier/internal/domains/reservation/model/dto"
	"hotelier/internal/domains/reservation/repository"
	roomModel "hotelier/internal/domains/room/model"
	roomRepo "hotelier/internal/domains/room/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/clock"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.CreateReservationResponse, error)
	CheckIn(ctx context.Context, req dto.CheckInRequest) (dto.CheckInResponse, error)
	Cancel(ctx context.Context, id string) error
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) error
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo         repository.Reservation
	customerRepo customerRepo.Customer
	roomRepo     roomRepo.Room
	billingRepo  billingRepo.Billing
	db           postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	producer     kafka.Producer
	clock        clock.Clock
	otel         otel.Otel
}

func New(
	repo repository.Reservation,
	customerRepo customerRepo.Customer,
	roomRepo roomRepo.Room,
	billingRepo billingRepo.Billing,
	db postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	producer kafka.Producer,
	clk clock.Clock,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:         repo,
		customerRepo: customerRepo,
		roomRepo:     roomRepo,
		billingRepo:  billingRepo,
		db:           db,
		cfg:          cfg,
		cache:        cache,
		producer:     producer,
		clock:        clk,
		otel:         otel,
	}
}

// Create books a stay. The guest record and the reservation land in
// one transaction, and a stay guaranteed with a card is confirmed
// immediately.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.CreateReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	operator, _ := ctx.Value(constant.ContextKeyOperator).(string)

	arrival, err := timezone.Parse(constant.DateOnlyFormat, req.ArrivalDate)
	if err != nil {
		return res, failure.BadRequest(fmt.Errorf("invalid arrival date: %w", err)) // nolint:wrapcheck
	}

	departure, err := timezone.Parse(constant.DateOnlyFormat, req.DepartureDate)
	if err != nil {
		return res, failure.BadRequest(fmt.Errorf("invalid departure date: %w", err)) // nolint:wrapcheck
	}

	if !departure.After(arrival) {
		return res, failure.BadRequestFromString("departure date must be after arrival date") // nolint:wrapcheck
	}

	if req.HasCreditCard && req.CardNumber == constant.Empty {
		return res, failure.BadRequestFromString("card number is required to guarantee a reservation") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.IsAvailable {
		return res, failure.Conflict(fmt.Sprintf("room %s is not available", room.RoomNumber)) // nolint:wrapcheck
	}

	now := s.clock.Now()
	customer := req.ToCustomerModel(operator, now)
	reservation := req.ToModel(customer.ID, operator, arrival, departure, now)

	err = s.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.customerRepo.InsertTx(ctx, tx, customer); err != nil {
			return err
		}

		return s.repo.InsertTx(ctx, tx, reservation)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	log.Info().
		Str("reservationNumber", reservation.ReservationNumber).
		Str("room", room.RoomNumber).
		Bool("confirmed", reservation.IsConfirmed).
		Msg("reservation created")

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	return dto.CreateReservationResponse{
		ReservationNumber: reservation.ReservationNumber,
		IsConfirmed:       reservation.IsConfirmed,
	}, nil
}

// CheckIn marks a reserved guest as arrived, or registers a walk-in
// guest who has no reservation to mutate.
func (s *serviceImpl) CheckIn(ctx context.Context, req dto.CheckInRequest) (res dto.CheckInResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	operator, _ := ctx.Value(constant.ContextKeyOperator).(string)
	now := s.clock.Now()

	if req.ReservationNumber == constant.Empty {
		return s.walkIn(ctx, req, operator, now)
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(req.ReservationNumber, model.FieldReservationNumber, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	switch {
	case reservation.CheckedOutAt != nil:
		return res, failure.Conflict("reservation is already checked out") // nolint:wrapcheck
	case reservation.IsNoShow:
		return res, failure.Conflict("reservation was marked as a no-show") // nolint:wrapcheck
	case reservation.IsCheckedIn:
		return res, failure.Conflict("reservation is already checked in") // nolint:wrapcheck
	}

	claimed, err := s.repo.ClaimCheckIn(ctx, reservation.ID, now, operator)
	if err != nil {
		log.Error().Err(err).Msg("failed to check in reservation")

		return res, fmt.Errorf("failed to check in reservation: %w", err)
	}

	if !claimed {
		return res, failure.Conflict("reservation changed while checking in") // nolint:wrapcheck
	}

	log.Info().
		Str("reservationNumber", reservation.ReservationNumber).
		Str("room", reservation.RoomNumber).
		Msg("guest checked in")

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, reservation.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
	}()

	return dto.CheckInResponse{
		ReservationNumber: reservation.ReservationNumber,
		GuestName:         reservation.GuestName,
		RoomNumber:        reservation.RoomNumber,
		CheckedInAt:       timezone.Format(now, constant.DateFormat),
	}, nil
}

func (s *serviceImpl) walkIn(ctx context.Context, req dto.CheckInRequest, operator string, now time.Time) (dto.CheckInResponse, error) {
	customer := req.ToCustomerModel(operator, now)

	if err := s.customerRepo.Insert(ctx, customer); err != nil {
		log.Error().Err(err).Msg("failed to register walk-in guest")

		return dto.CheckInResponse{}, fmt.Errorf("failed to register walk-in guest: %w", err)
	}

	log.Info().Str("guest", req.FullName).Msg("walk-in guest registered")

	return dto.CheckInResponse{
		GuestName:   customer.FullName,
		CheckedInAt: timezone.Format(now, constant.DateFormat),
		WalkIn:      true,
	}, nil
}

// Cancel removes a reservation outright. A stay that already produced
// a settled bill can not be cancelled; unpaid statements are discarded
// together with the reservation.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	paid, err := s.billingRepo.HasPaidBill(ctx, reservation.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check billing records")

		return fmt.Errorf("failed to check billing records: %w", err)
	}

	if paid {
		return failure.Conflict("reservation has a settled bill and can not be cancelled") // nolint:wrapcheck
	}

	err = s.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.billingRepo.DeleteTx(ctx, tx, shared.FilterByID(reservation.ID, billingModel.FieldReservationID, billingModel.TableName)); err != nil {
			return err
		}

		return s.repo.DeleteTx(ctx, tx, shared.FilterByID(reservation.ID, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel reservation")

		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	log.Info().Str("reservationNumber", reservation.ReservationNumber).Msg("reservation cancelled")

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.producer.SendMessages(c, s.cfg.Kafka.Topics.ReservationEvents, kafka.Message{
			Key: constant.EventKeyReservationCancelled,
			Value: map[string]any{
				"reservation_number": reservation.ReservationNumber,
				"guest_name":         reservation.GuestName,
				"room_number":        reservation.RoomNumber,
			},
		}); err != nil {
			log.Error().Err(err).Msg("failed to publish cancellation event")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, reservation.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	return nil
}

// Update amends the stay dates or party size before arrival. The date
// ordering rule holds against the stored values when only one side
// changes.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	operator, _ := ctx.Value(constant.ContextKeyOperator).(string)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if reservation.IsCheckedIn {
		return failure.Conflict("reservation can not be amended after check-in") // nolint:wrapcheck
	}

	arrival := reservation.ArrivalDate
	departure := reservation.DepartureDate

	updated := map[string]any{
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: operator,
	}

	if req.ArrivalDate != constant.Empty {
		arrival, err = timezone.Parse(constant.DateOnlyFormat, req.ArrivalDate)
		if err != nil {
			return failure.BadRequest(fmt.Errorf("invalid arrival date: %w", err)) // nolint:wrapcheck
		}

		updated[model.FieldArrivalDate] = arrival
	}

	if req.DepartureDate != constant.Empty {
		departure, err = timezone.Parse(constant.DateOnlyFormat, req.DepartureDate)
		if err != nil {
			return failure.BadRequest(fmt.Errorf("invalid departure date: %w", err)) // nolint:wrapcheck
		}

		updated[model.FieldDepartureDate] = departure
	}

	if !departure.After(arrival) {
		return failure.BadRequestFromString("departure date must be after arrival date") // nolint:wrapcheck
	}

	if req.Occupants != nil {
		updated[model.FieldOccupants] = *req.Occupants
	}

	if err := s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update reservation")

		return fmt.Errorf("failed to update reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
	}()

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}
