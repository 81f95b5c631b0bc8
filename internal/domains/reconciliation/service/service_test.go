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
	s3Mocks "hotelier/infras/s3/mocks"
	billingMocks "hotelier/internal/domains/billing/mocks"
	billingModel "hotelier/internal/domains/billing/model"
	"hotelier/internal/domains/reconciliation/service"
	reportMocks "hotelier/internal/domains/report/mocks"
	reportDto "hotelier/internal/domains/report/model/dto"
	reservationMocks "hotelier/internal/domains/reservation/mocks"
	reservationModel "hotelier/internal/domains/reservation/model"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
)

type reconciliationFixture struct {
	svc         service.Reconciliation
	resRepo     *reservationMocks.MockReservation
	billingRepo *billingMocks.MockBilling
	report      *reportMocks.MockReport
	tx          *postgresMocks.MockTransactor
	producer    *kafkaMocks.MockProducer
	s3          *s3Mocks.MockS3
	cache       *cacheMocks.MockRedisCache
}

func newReconciliationFixture(t *testing.T) *reconciliationFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &reconciliationFixture{
		resRepo:     reservationMocks.NewMockReservation(ctrl),
		billingRepo: billingMocks.NewMockBilling(ctrl),
		report:      reportMocks.NewMockReport(ctrl),
		tx:          postgresMocks.NewMockTransactor(ctrl),
		producer:    kafkaMocks.NewMockProducer(ctrl),
		s3:          s3Mocks.NewMockS3(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Hotel.Reconciliation.AnchorHour = 19
	cfg.Kafka.Topics.BillingEvents = "hotelier.billing"
	cfg.Kafka.Topics.ReservationEvents = "hotelier.reservations"
	cfg.External.S3.BucketName = "hotelier"
	cfg.External.S3.ReportDirectory = "reports"

	f.svc = service.New(f.resRepo, f.billingRepo, f.report, f.tx, cfg, f.cache, f.producer, f.s3, mocks.NewOtel())

	return f
}

func (f *reconciliationFixture) passthroughTx() {
	f.tx.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func (f *reconciliationFixture) allowAsyncWork() {
	f.producer.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	f.producer.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	f.report.EXPECT().
		GetDaily(gomock.Any(), gomock.Any()).
		Return(reportDto.DailyReportResponse{}, nil).
		AnyTimes()

	f.s3.EXPECT().
		UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("https://storage/reports/file.json", nil).
		AnyTimes()

	f.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func TestReconciliationService_Run(t *testing.T) {
	now := time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	guaranteed := reservationModel.Reservation{
		ID:                "res-guaranteed",
		ReservationNumber: "RES-aaaa1111190000",
		GuestName:         "Bob Jones",
		RoomNumber:        "204",
		NightlyRate:       120,
		ArrivalDate:       yesterday,
		HasCreditCard:     true,
	}

	unguaranteed := reservationModel.Reservation{
		ID:                "res-unguaranteed",
		ReservationNumber: "RES-bbbb2222190000",
		GuestName:         "Carol White",
		RoomNumber:        "310",
		NightlyRate:       95,
		ArrivalDate:       yesterday,
	}

	t.Run("guaranteed no-show billed once at the anchor", func(t *testing.T) {
		f := newReconciliationFixture(t)

		f.resRepo.EXPECT().
			GetStaleUnguaranteed(gomock.Any(), now).
			Return(nil, nil)

		f.resRepo.EXPECT().
			GetArrivalsNotCheckedIn(gomock.Any(), yesterday).
			Return([]reservationModel.Reservation{guaranteed}, nil)

		f.billingRepo.EXPECT().
			HasNoShowBill(gomock.Any(), guaranteed.ID).
			Return(false, nil)

		f.passthroughTx()

		f.resRepo.EXPECT().
			MarkNoShowTx(gomock.Any(), gomock.Any(), guaranteed.ID, now).
			Return(true, nil)

		var inserted billingModel.BillingRecord
		f.billingRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, bill billingModel.BillingRecord) error {
				inserted = bill
				return nil
			})

		f.allowAsyncWork()

		result, err := f.svc.Run(context.Background(), now)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Cancelled)
		assert.Equal(t, 1, result.NoShowBilled)
		assert.Equal(t, 120.0, inserted.TotalAmount())
		assert.True(t, inserted.IsPaid)
		assert.True(t, inserted.IsNoShowBill)
		assert.Equal(t, constant.PaymentMethodNoShow, inserted.PaymentMethod)
		assert.Equal(t, 19, inserted.BilledAt.Hour())
		assert.True(t, inserted.CreatedAt.Equal(inserted.BilledAt))
	})

	t.Run("already billed no-show is skipped", func(t *testing.T) {
		f := newReconciliationFixture(t)

		f.resRepo.EXPECT().
			GetStaleUnguaranteed(gomock.Any(), now).
			Return(nil, nil)

		f.resRepo.EXPECT().
			GetArrivalsNotCheckedIn(gomock.Any(), yesterday).
			Return([]reservationModel.Reservation{guaranteed}, nil)

		f.billingRepo.EXPECT().
			HasNoShowBill(gomock.Any(), guaranteed.ID).
			Return(true, nil)

		result, err := f.svc.Run(context.Background(), now)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Cancelled)
		assert.Equal(t, 0, result.NoShowBilled)
	})

	t.Run("pass one cancellations never reach pass two", func(t *testing.T) {
		f := newReconciliationFixture(t)

		f.resRepo.EXPECT().
			GetStaleUnguaranteed(gomock.Any(), now).
			Return([]reservationModel.Reservation{unguaranteed}, nil)

		f.resRepo.EXPECT().
			GetArrivalsNotCheckedIn(gomock.Any(), yesterday).
			Return([]reservationModel.Reservation{unguaranteed, guaranteed}, nil)

		f.billingRepo.EXPECT().
			HasNoShowBill(gomock.Any(), guaranteed.ID).
			Return(false, nil)

		f.passthroughTx()

		f.resRepo.EXPECT().
			ReleaseStaleTx(gomock.Any(), gomock.Any(), unguaranteed.ID).
			Return(true, nil)

		f.billingRepo.EXPECT().
			DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.resRepo.EXPECT().
			MarkNoShowTx(gomock.Any(), gomock.Any(), guaranteed.ID, now).
			Return(true, nil)

		f.billingRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.allowAsyncWork()

		result, err := f.svc.Run(context.Background(), now)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Cancelled)
		assert.Equal(t, 1, result.NoShowBilled)
	})

	t.Run("nothing to do is a normal run", func(t *testing.T) {
		f := newReconciliationFixture(t)

		f.resRepo.EXPECT().
			GetStaleUnguaranteed(gomock.Any(), now).
			Return(nil, nil)

		f.resRepo.EXPECT().
			GetArrivalsNotCheckedIn(gomock.Any(), yesterday).
			Return(nil, nil)

		result, err := f.svc.Run(context.Background(), now)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Cancelled)
		assert.Equal(t, 0, result.NoShowBilled)
	})

	t.Run("transaction failure leaves the books untouched", func(t *testing.T) {
		f := newReconciliationFixture(t)

		f.resRepo.EXPECT().
			GetStaleUnguaranteed(gomock.Any(), now).
			Return(nil, nil)

		f.resRepo.EXPECT().
			GetArrivalsNotCheckedIn(gomock.Any(), yesterday).
			Return([]reservationModel.Reservation{guaranteed}, nil)

		f.billingRepo.EXPECT().
			HasNoShowBill(gomock.Any(), guaranteed.ID).
			Return(false, nil)

		f.passthroughTx()

		f.resRepo.EXPECT().
			MarkNoShowTx(gomock.Any(), gomock.Any(), guaranteed.ID, now).
			Return(true, nil)

		f.billingRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		_, err := f.svc.Run(context.Background(), now)

		assert.Error(t, err)
	})

	t.Run("check-in landing after the scan stops the release", func(t *testing.T) {
		f := newReconciliationFixture(t)

		f.resRepo.EXPECT().
			GetStaleUnguaranteed(gomock.Any(), now).
			Return([]reservationModel.Reservation{unguaranteed}, nil)

		f.resRepo.EXPECT().
			GetArrivalsNotCheckedIn(gomock.Any(), yesterday).
			Return(nil, nil)

		f.passthroughTx()

		f.resRepo.EXPECT().
			ReleaseStaleTx(gomock.Any(), gomock.Any(), unguaranteed.ID).
			Return(false, nil)

		f.allowAsyncWork()

		result, err := f.svc.Run(context.Background(), now)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Cancelled)
		assert.Equal(t, 0, result.NoShowBilled)
	})

	t.Run("check-in landing after the scan withholds the no-show bill", func(t *testing.T) {
		f := newReconciliationFixture(t)

		f.resRepo.EXPECT().
			GetStaleUnguaranteed(gomock.Any(), now).
			Return(nil, nil)

		f.resRepo.EXPECT().
			GetArrivalsNotCheckedIn(gomock.Any(), yesterday).
			Return([]reservationModel.Reservation{guaranteed}, nil)

		f.billingRepo.EXPECT().
			HasNoShowBill(gomock.Any(), guaranteed.ID).
			Return(false, nil)

		f.passthroughTx()

		f.resRepo.EXPECT().
			MarkNoShowTx(gomock.Any(), gomock.Any(), guaranteed.ID, now).
			Return(false, nil)

		f.allowAsyncWork()

		result, err := f.svc.Run(context.Background(), now)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Cancelled)
		assert.Equal(t, 0, result.NoShowBilled)
	})
}
