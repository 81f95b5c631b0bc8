package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	kafkaMocks "hotelier/infras/kafka/mocks"
	"hotelier/infras/otel/mocks"
	postgresMocks "hotelier/infras/postgres/mocks"
	billingMocks "hotelier/internal/domains/billing/mocks"
	customerMocks "hotelier/internal/domains/customer/mocks"
	customerModel "hotelier/internal/domains/customer/model"
	reservationMocks "hotelier/internal/domains/reservation/mocks"
	"hotelier/internal/domains/reservation/model"
	"hotelier/internal/domains/reservation/model/dto"
	"hotelier/internal/domains/reservation/service"
	roomMocks "hotelier/internal/domains/room/mocks"
	roomModel "hotelier/internal/domains/room/model"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/clock"
	"hotelier/shared/failure"
)

type reservationFixture struct {
	svc          service.Reservation
	repo         *reservationMocks.MockReservation
	customerRepo *customerMocks.MockCustomer
	roomRepo     *roomMocks.MockRoom
	billingRepo  *billingMocks.MockBilling
	tx           *postgresMocks.MockTransactor
	producer     *kafkaMocks.MockProducer
	cache        *cacheMocks.MockRedisCache
}

func newReservationFixture(t *testing.T, now time.Time) *reservationFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &reservationFixture{
		repo:         reservationMocks.NewMockReservation(ctrl),
		customerRepo: customerMocks.NewMockCustomer(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		billingRepo:  billingMocks.NewMockBilling(ctrl),
		tx:           postgresMocks.NewMockTransactor(ctrl),
		producer:     kafkaMocks.NewMockProducer(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.ReservationEvents = "hotelier.reservations"

	f.svc = service.New(f.repo, f.customerRepo, f.roomRepo, f.billingRepo, f.tx, cfg, f.cache, f.producer, clock.Fixed(now), mocks.NewOtel())

	return f
}

func (f *reservationFixture) passthroughTx() {
	f.tx.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func (f *reservationFixture) allowCacheInvalidation() {
	f.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	f.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func validCreateRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		GuestFullName: "Alice Smith",
		GuestIDNumber: "ID-123456",
		RoomID:        "0fcb1958-0c43-4b21-9b77-0f9b9a2b7a10",
		ArrivalDate:   "2025-03-11",
		DepartureDate: "2025-03-14",
		Occupants:     2,
	}
}

func TestReservationService_Create(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 15, 0, time.UTC)

	availableRoom := roomModel.Room{
		ID:          "0fcb1958-0c43-4b21-9b77-0f9b9a2b7a10",
		RoomNumber:  "101",
		NightlyRate: 85,
		IsAvailable: true,
	}

	t.Run("guaranteed reservation stores a masked card", func(t *testing.T) {
		f := newReservationFixture(t, now)

		req := validCreateRequest()
		req.HasCreditCard = true
		req.CardNumber = "4111 1111 1111 1111"
		req.CardExpiry = "12/27"

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableRoom, nil)

		f.passthroughTx()

		var guest customerModel.Customer
		f.customerRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, c customerModel.Customer) error {
				guest = c
				return nil
			})

		var inserted model.Reservation
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
				inserted = r
				return nil
			})

		f.allowCacheInvalidation()

		res, err := f.svc.Create(context.Background(), req)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.True(t, res.IsConfirmed)
		assert.True(t, strings.HasPrefix(res.ReservationNumber, "RES-"))
		assert.Equal(t, "************1111", inserted.CardNumber)
		assert.True(t, inserted.HasCreditCard)
		assert.True(t, inserted.IsConfirmed)
		assert.True(t, guest.CreatedAt.Equal(now))
		assert.True(t, inserted.CreatedAt.Equal(now))
	})

	t.Run("unguaranteed reservation is unconfirmed", func(t *testing.T) {
		f := newReservationFixture(t, now)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableRoom, nil)

		f.passthroughTx()

		f.customerRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.allowCacheInvalidation()

		res, err := f.svc.Create(context.Background(), validCreateRequest())

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.False(t, res.IsConfirmed)
	})

	t.Run("departure must follow arrival", func(t *testing.T) {
		f := newReservationFixture(t, now)

		req := validCreateRequest()
		req.DepartureDate = "2025-03-11"

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("guarantee requires a card number", func(t *testing.T) {
		f := newReservationFixture(t, now)

		req := validCreateRequest()
		req.HasCreditCard = true

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("room not found", func(t *testing.T) {
		f := newReservationFixture(t, now)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)

		_, err := f.svc.Create(context.Background(), validCreateRequest())

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("unavailable room conflicts", func(t *testing.T) {
		f := newReservationFixture(t, now)

		occupied := availableRoom
		occupied.IsAvailable = false

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(occupied, nil)

		_, err := f.svc.Create(context.Background(), validCreateRequest())

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestReservationService_CheckIn(t *testing.T) {
	now := time.Date(2025, 3, 11, 15, 0, 0, 0, time.UTC)

	pending := model.Reservation{
		ID:                "res-1",
		ReservationNumber: "RES-11112222143015",
		GuestName:         "Alice Smith",
		RoomNumber:        "101",
	}

	t.Run("existing reservation checked in", func(t *testing.T) {
		f := newReservationFixture(t, now)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pending, nil)

		f.repo.EXPECT().
			ClaimCheckIn(gomock.Any(), pending.ID, now, gomock.Any()).
			Return(true, nil)

		f.allowCacheInvalidation()

		res, err := f.svc.CheckIn(context.Background(), dto.CheckInRequest{ReservationNumber: pending.ReservationNumber})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, pending.ReservationNumber, res.ReservationNumber)
		assert.False(t, res.WalkIn)
	})

	t.Run("conflict when the reservation changes mid check-in", func(t *testing.T) {
		f := newReservationFixture(t, now)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pending, nil)

		f.repo.EXPECT().
			ClaimCheckIn(gomock.Any(), pending.ID, now, gomock.Any()).
			Return(false, nil)

		_, err := f.svc.CheckIn(context.Background(), dto.CheckInRequest{ReservationNumber: pending.ReservationNumber})

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("walk-in registers a guest", func(t *testing.T) {
		f := newReservationFixture(t, now)

		var guest customerModel.Customer
		f.customerRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c customerModel.Customer) error {
				guest = c
				return nil
			})

		res, err := f.svc.CheckIn(context.Background(), dto.CheckInRequest{
			FullName: "Dave Walker",
			IDNumber: "ID-998877",
		})

		assert.NoError(t, err)
		assert.True(t, res.WalkIn)
		assert.Equal(t, "Dave Walker", res.GuestName)
		assert.True(t, guest.CreatedAt.Equal(now))
	})

	t.Run("missing reservation", func(t *testing.T) {
		f := newReservationFixture(t, now)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Reservation{}, nil)

		_, err := f.svc.CheckIn(context.Background(), dto.CheckInRequest{ReservationNumber: "RES-missing"})

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("lifecycle guards conflict", func(t *testing.T) {
		checkedOut := now.Add(-time.Hour)

		cases := []struct {
			name        string
			reservation model.Reservation
		}{
			{
				name: "already checked out",
				reservation: model.Reservation{
					ID:           "res-1",
					CheckedOutAt: &checkedOut,
				},
			},
			{
				name: "marked no-show",
				reservation: model.Reservation{
					ID:       "res-1",
					IsNoShow: true,
				},
			},
			{
				name: "already checked in",
				reservation: model.Reservation{
					ID:          "res-1",
					IsCheckedIn: true,
				},
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newReservationFixture(t, now)

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tc.reservation, nil)

				_, err := f.svc.CheckIn(context.Background(), dto.CheckInRequest{ReservationNumber: "RES-11112222143015"})

				assert.Error(t, err)
				assert.Equal(t, 409, failure.GetCode(err))
			})
		}
	})
}

func TestReservationService_Cancel(t *testing.T) {
	now := time.Date(2025, 3, 11, 15, 0, 0, 0, time.UTC)

	reservation := model.Reservation{
		ID:                "res-1",
		ReservationNumber: "RES-11112222143015",
		GuestName:         "Alice Smith",
		RoomNumber:        "101",
	}

	t.Run("successful cancellation discards unpaid bills", func(t *testing.T) {
		f := newReservationFixture(t, now)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(reservation, nil)

		f.billingRepo.EXPECT().
			HasPaidBill(gomock.Any(), reservation.ID).
			Return(false, nil)

		f.passthroughTx()

		f.billingRepo.EXPECT().
			DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.repo.EXPECT().
			DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.producer.EXPECT().
			SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		f.allowCacheInvalidation()

		err := f.svc.Cancel(context.Background(), reservation.ID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("settled bill blocks cancellation", func(t *testing.T) {
		f := newReservationFixture(t, now)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(reservation, nil)

		f.billingRepo.EXPECT().
			HasPaidBill(gomock.Any(), reservation.ID).
			Return(true, nil)

		err := f.svc.Cancel(context.Background(), reservation.ID)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("missing reservation", func(t *testing.T) {
		f := newReservationFixture(t, now)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Reservation{}, nil)

		err := f.svc.Cancel(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("transaction failure", func(t *testing.T) {
		f := newReservationFixture(t, now)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(reservation, nil)

		f.billingRepo.EXPECT().
			HasPaidBill(gomock.Any(), reservation.ID).
			Return(false, nil)

		f.tx.EXPECT().
			WithinTx(gomock.Any(), gomock.Any()).
			Return(errors.New("deadlock"))

		err := f.svc.Cancel(context.Background(), reservation.ID)

		assert.Error(t, err)
	})
}
