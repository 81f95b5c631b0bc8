package service_test

import (
	"context"
	"errors"
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
	billingModel "hotelier/internal/domains/billing/model"
	"hotelier/internal/domains/billing/model/dto"
	"hotelier/internal/domains/billing/service"
	reservationMocks "hotelier/internal/domains/reservation/mocks"
	reservationModel "hotelier/internal/domains/reservation/model"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/clock"
	"hotelier/shared/failure"
)

func checkoutFixtures(t *testing.T, now time.Time) (
	service.Billing,
	*billingMocks.MockBilling,
	*reservationMocks.MockReservation,
	*postgresMocks.MockTransactor,
	*kafkaMocks.MockProducer,
	*cacheMocks.MockRedisCache,
) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := billingMocks.NewMockBilling(ctrl)
	mockResRepo := reservationMocks.NewMockReservation(ctrl)
	mockTx := postgresMocks.NewMockTransactor(ctrl)
	mockProducer := kafkaMocks.NewMockProducer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Hotel.RestaurantPrice = 45
	cfg.Hotel.RoomServicePrice = 30
	cfg.Hotel.LaundryPrice = 20
	cfg.Kafka.Topics.BillingEvents = "hotelier.billing"

	svc := service.New(mockRepo, mockResRepo, mockTx, cfg, mockCache, mockProducer, clock.Fixed(now), mockOtel)

	return svc, mockRepo, mockResRepo, mockTx, mockProducer, mockCache
}

func passthroughTx(mockTx *postgresMocks.MockTransactor) {
	mockTx.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func allowAsyncPublish(mockProducer *kafkaMocks.MockProducer, mockCache *cacheMocks.MockRedisCache) {
	mockProducer.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func TestBillingService_ProcessCheckout(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)

	stay := reservationModel.Reservation{
		ID:                "res-1",
		ReservationNumber: "RES-11112222103000",
		GuestName:         "Alice Smith",
		RoomNumber:        "101",
		NightlyRate:       85,
		ArrivalDate:       time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		DepartureDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		IsCheckedIn:       true,
	}

	t.Run("three nights with incidentals", func(t *testing.T) {
		svc, mockRepo, mockResRepo, mockTx, mockProducer, mockCache := checkoutFixtures(t, now)

		mockResRepo.EXPECT().
			GetActiveStay(gomock.Any(), "Alice", "").
			Return(stay, nil)

		passthroughTx(mockTx)

		var inserted billingModel.BillingRecord
		mockRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, bill billingModel.BillingRecord) error {
				inserted = bill
				return nil
			})

		mockResRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		allowAsyncPublish(mockProducer, mockCache)

		res, err := svc.ProcessCheckout(context.Background(), dto.CheckoutRequest{
			GuestName:       "Alice",
			Restaurant:      true,
			Laundry:         true,
			TelephoneCharge: 12.5,
			PaymentMethod:   "Card",
		})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 3, res.Nights)
		assert.Equal(t, 255.0, res.RoomCharge)
		assert.Equal(t, 45.0, res.RestaurantCharge)
		assert.Equal(t, 0.0, res.RoomServiceCharge)
		assert.Equal(t, 20.0, res.LaundryCharge)
		assert.Equal(t, 12.5, res.TelephoneCharge)
		assert.Equal(t, 0.0, res.OverstayCharge)
		assert.Equal(t, 332.5, res.TotalAmount)
		assert.Equal(t, "Card", res.PaymentMethod)
		assert.True(t, inserted.IsPaid)
		assert.False(t, inserted.IsNoShowBill)
		assert.Equal(t, res.TotalAmount, inserted.TotalAmount())
	})

	t.Run("same day stay bills one night", func(t *testing.T) {
		svc, mockRepo, mockResRepo, mockTx, mockProducer, mockCache := checkoutFixtures(t, now)

		sameDay := stay
		sameDay.ArrivalDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		sameDay.DepartureDate = time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

		mockResRepo.EXPECT().
			GetActiveStay(gomock.Any(), "", "101").
			Return(sameDay, nil)

		passthroughTx(mockTx)

		mockRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		mockResRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		allowAsyncPublish(mockProducer, mockCache)

		res, err := svc.ProcessCheckout(context.Background(), dto.CheckoutRequest{RoomNumber: "101"})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Nights)
		assert.Equal(t, 85.0, res.RoomCharge)
		assert.Equal(t, "Cash", res.PaymentMethod)
	})

	t.Run("overstay adds one flat night", func(t *testing.T) {
		svc, mockRepo, mockResRepo, mockTx, mockProducer, mockCache := checkoutFixtures(t, now)

		overstayed := stay
		overstayed.DepartureDate = time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

		mockResRepo.EXPECT().
			GetActiveStay(gomock.Any(), "Alice", "").
			Return(overstayed, nil)

		passthroughTx(mockTx)

		mockRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		mockResRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		allowAsyncPublish(mockProducer, mockCache)

		res, err := svc.ProcessCheckout(context.Background(), dto.CheckoutRequest{GuestName: "Alice"})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 3, res.Nights)
		assert.Equal(t, 85.0, res.OverstayCharge)
		assert.Equal(t, 340.0, res.TotalAmount)
	})

	t.Run("no active stay", func(t *testing.T) {
		svc, _, mockResRepo, _, _, _ := checkoutFixtures(t, now)

		mockResRepo.EXPECT().
			GetActiveStay(gomock.Any(), "Nobody", "").
			Return(reservationModel.Reservation{}, nil)

		_, err := svc.ProcessCheckout(context.Background(), dto.CheckoutRequest{GuestName: "Nobody"})

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("transaction failure", func(t *testing.T) {
		svc, mockRepo, mockResRepo, mockTx, _, _ := checkoutFixtures(t, now)

		mockResRepo.EXPECT().
			GetActiveStay(gomock.Any(), "Alice", "").
			Return(stay, nil)

		mockTx.EXPECT().
			WithinTx(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
				return fn(nil)
			})

		mockRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		_, err := svc.ProcessCheckout(context.Background(), dto.CheckoutRequest{GuestName: "Alice"})

		assert.Error(t, err)
	})
}

func TestBillingService_GetByReservation(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)

	t.Run("returns records", func(t *testing.T) {
		svc, mockRepo, _, _, _, _ := checkoutFixtures(t, now)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]billingModel.BillingRecord{
				{ID: "bill-1", ReservationID: "res-1", RoomCharge: 85, PaymentMethod: "Cash", IsPaid: true},
			}, nil)

		records, err := svc.GetByReservation(context.Background(), "res-1")

		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, 85.0, records[0].TotalAmount)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockRepo, _, _, _, _ := checkoutFixtures(t, now)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.GetByReservation(context.Background(), "res-1")

		assert.Error(t, err)
	})
}
