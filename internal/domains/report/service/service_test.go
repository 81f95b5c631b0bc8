package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	billingMocks "hotelier/internal/domains/billing/mocks"
	billingModel "hotelier/internal/domains/billing/model"
	"hotelier/internal/domains/report/service"
	reservationMocks "hotelier/internal/domains/reservation/mocks"
	reservationModel "hotelier/internal/domains/reservation/model"
	cacheMocks "hotelier/shared/cache/mocks"
)

func reportFixtures(t *testing.T) (service.Report, *reservationMocks.MockReservation, *billingMocks.MockBilling, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockResRepo := reservationMocks.NewMockReservation(ctrl)
	mockBillingRepo := billingMocks.NewMockBilling(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Hotel.TotalRoomCapacity = 50
	cfg.Cache.TTL = 3600

	svc := service.New(mockResRepo, mockBillingRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockResRepo, mockBillingRepo, mockCache
}

func TestReportService_GetDaily(t *testing.T) {
	date := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	t.Run("occupancy and revenue figures", func(t *testing.T) {
		svc, mockResRepo, mockBillingRepo, mockCache := reportFixtures(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockResRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(10, nil)

		mockBillingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]billingModel.BillingRecord{
				{RoomCharge: 255, RestaurantCharge: 45, TelephoneCharge: 12.5},
				{RoomCharge: 120, OverstayCharge: 120},
			}, nil)

		mockResRepo.EXPECT().
			GetArrivalsNotCheckedIn(gomock.Any(), date).
			Return(nil, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetDaily(context.Background(), date)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "2025-03-09", res.Date)
		assert.Equal(t, 10, res.OccupiedRooms)
		assert.Equal(t, 50, res.RoomCapacity)
		assert.Equal(t, 20.0, res.OccupancyRate)
		assert.Equal(t, 2, res.BillCount)
		assert.Equal(t, 375.0, res.RoomRevenue)
		assert.Equal(t, 552.5, res.TotalRevenue)
		assert.False(t, res.PendingReconciliation)
	})

	t.Run("unbilled no-show raises the pending flag", func(t *testing.T) {
		svc, mockResRepo, mockBillingRepo, mockCache := reportFixtures(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockResRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, nil)

		mockBillingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		mockResRepo.EXPECT().
			GetArrivalsNotCheckedIn(gomock.Any(), date).
			Return([]reservationModel.Reservation{
				{ID: "res-1", ReservationNumber: "RES-aaaa1111190000", GuestName: "Bob", NightlyRate: 120, HasCreditCard: true},
				{ID: "res-2", ReservationNumber: "RES-bbbb2222190000", GuestName: "Carol", NightlyRate: 95},
			}, nil)

		mockBillingRepo.EXPECT().
			HasNoShowBill(gomock.Any(), "res-1").
			Return(true, nil)

		mockBillingRepo.EXPECT().
			HasNoShowBill(gomock.Any(), "res-2").
			Return(false, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetDaily(context.Background(), date)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Len(t, res.NoShows, 2)
		assert.True(t, res.NoShows[0].Billed)
		assert.False(t, res.NoShows[1].Billed)
		assert.True(t, res.PendingReconciliation)
	})

	t.Run("occupancy rate in percent", func(t *testing.T) {
		svc, mockResRepo, mockBillingRepo, mockCache := reportFixtures(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockResRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(3, nil)

		mockBillingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		mockResRepo.EXPECT().
			GetArrivalsNotCheckedIn(gomock.Any(), date).
			Return(nil, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetDaily(context.Background(), date)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 6.0, res.OccupancyRate)
	})

	t.Run("cache hit skips the repositories", func(t *testing.T) {
		svc, _, _, mockCache := reportFixtures(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.GetDaily(context.Background(), date)

		assert.NoError(t, err)
	})

	t.Run("count error", func(t *testing.T) {
		svc, mockResRepo, _, mockCache := reportFixtures(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockResRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("count error"))

		_, err := svc.GetDaily(context.Background(), date)

		assert.Error(t, err)
	})
}
