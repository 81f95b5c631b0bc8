package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/billing/model"
	"hotelier/internal/domains/billing/model/dto"
	"hotelier/internal/domains/billing/repository"
	reservationModel "hotelier/internal/domains/reservation/model"
	reservationRepo "hotelier/internal/domains/reservation/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/clock"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

const (
	cacheGetAllReservation = "reservation:gets"
	cacheGetReservation    = "reservation:get"
)

type Billing interface {
	ProcessCheckout(ctx context.Context, req dto.CheckoutRequest) (dto.BillingStatementResponse, error)
	GetByReservation(ctx context.Context, reservationID string) ([]dto.BillingRecordResponse, error)
}

type serviceImpl struct {
	repo            repository.Billing
	reservationRepo reservationRepo.Reservation
	db              postgres.Transactor
	cfg             *config.Config
	cache           cache.RedisCache
	producer        kafka.Producer
	clock           clock.Clock
	otel            otel.Otel
}

func New(
	repo repository.Billing,
	reservationRepo reservationRepo.Reservation,
	db postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	producer kafka.Producer,
	clk clock.Clock,
	otel otel.Otel,
) Billing {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		db:              db,
		cfg:             cfg,
		cache:           cache,
		producer:        producer,
		clock:           clk,
		otel:            otel,
	}
}

// ProcessCheckout settles the active stay matching the request. The
// room charge covers every night since arrival, at least one, and an
// overstay past the departure date adds one flat extra night.
func (s *serviceImpl) ProcessCheckout(ctx context.Context, req dto.CheckoutRequest) (res dto.BillingStatementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ProcessCheckout")
	defer scope.End()
	defer scope.TraceIfError(err)

	operator, _ := ctx.Value(constant.ContextKeyOperator).(string)

	stay, err := s.reservationRepo.GetActiveStay(ctx, req.GuestName, req.RoomNumber)
	if err != nil {
		log.Error().Err(err).Msg("failed to search active stay")

		return res, fmt.Errorf("failed to search active stay: %w", err)
	}

	if stay.ID == constant.Empty {
		return res, failure.NotFound("no active stay matches the request") // nolint:wrapcheck
	}

	now := s.clock.Now()

	nights := clock.DaysBetween(stay.ArrivalDate, now)
	if nights < 1 {
		nights = 1
	}

	overstayCharge := 0.0
	if clock.StartOfDay(now).After(clock.StartOfDay(stay.DepartureDate.In(now.Location()))) {
		overstayCharge = stay.NightlyRate
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == constant.Empty {
		paymentMethod = constant.PaymentMethodCash
	}

	bill := model.BillingRecord{
		ID:            uuid.NewString(),
		ReservationID: stay.ID,
		RoomCharge:    stay.NightlyRate * float64(nights),
		PaymentMethod: paymentMethod,
		IsPaid:        true,
		BilledAt:      now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  operator,
			ModifiedBy: operator,
		},
	}

	if req.Restaurant {
		bill.RestaurantCharge = s.cfg.Hotel.RestaurantPrice
	}

	if req.RoomService {
		bill.RoomServiceCharge = s.cfg.Hotel.RoomServicePrice
	}

	if req.Laundry {
		bill.LaundryCharge = s.cfg.Hotel.LaundryPrice
	}

	bill.TelephoneCharge = req.TelephoneCharge
	bill.ClubFacilityCharge = req.ClubFacilityCharge
	bill.OverstayCharge = overstayCharge

	err = s.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, bill); err != nil {
			return err
		}

		updated := map[string]any{
			reservationModel.FieldCheckedOutAt: now,
			constant.FieldModifiedAt:           now,
			constant.FieldModifiedBy:           operator,
		}

		return s.reservationRepo.UpdateTx(ctx, tx, updated, shared.FilterByID(stay.ID, reservationModel.FieldID, reservationModel.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("reservation", stay.ReservationNumber).Msg("failed to settle checkout")

		return res, fmt.Errorf("failed to settle checkout: %w", err)
	}

	res = dto.BillingStatementResponse{
		ReservationNumber:  stay.ReservationNumber,
		GuestName:          stay.GuestName,
		RoomNumber:         stay.RoomNumber,
		ArrivalDate:        timezone.Format(stay.ArrivalDate, constant.DateOnlyFormat),
		DepartureDate:      timezone.Format(stay.DepartureDate, constant.DateOnlyFormat),
		CheckedOutAt:       timezone.Format(now, constant.DateFormat),
		Nights:             nights,
		RoomCharge:         bill.RoomCharge,
		RestaurantCharge:   bill.RestaurantCharge,
		RoomServiceCharge:  bill.RoomServiceCharge,
		LaundryCharge:      bill.LaundryCharge,
		TelephoneCharge:    bill.TelephoneCharge,
		ClubFacilityCharge: bill.ClubFacilityCharge,
		OverstayCharge:     bill.OverstayCharge,
		TotalAmount:        bill.TotalAmount(),
		PaymentMethod:      bill.PaymentMethod,
	}

	log.Info().
		Str("reservation", stay.ReservationNumber).
		Int("nights", nights).
		Float64("total", res.TotalAmount).
		Msg("checkout settled")

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.producer.SendMessages(c, s.cfg.Kafka.Topics.BillingEvents, kafka.Message{
			Key:   constant.EventKeyCheckout,
			Value: res,
		}); err != nil {
			log.Error().Err(err).Msg("failed to publish checkout event")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, stay.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
	}()

	return res, nil
}

func (s *serviceImpl) GetByReservation(ctx context.Context, reservationID string) (res []dto.BillingRecordResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	bills, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(reservationID, model.FieldReservationID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get billing records")

		return res, fmt.Errorf("failed to get billing records: %w", err)
	}

	res = make([]dto.BillingRecordResponse, len(bills))
	for i, bill := range bills {
		res[i].FromModel(bill)
	}

	return res, nil
}
