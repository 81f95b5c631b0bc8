package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/infras/s3"
	billingModel "hotelier/internal/domains/billing/model"
	billingDto "hotelier/internal/domains/billing/model/dto"
	billingRepo "hotelier/internal/domains/billing/repository"
	reportService "hotelier/internal/domains/report/service"
	reservationModel "hotelier/internal/domains/reservation/model"
	reservationRepo "hotelier/internal/domains/reservation/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/clock"
	"hotelier/shared/constant"
	"hotelier/shared/timezone"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
	cacheDailyReport       = "report:daily"
)

// RunResult summarizes one nightly run.
type RunResult struct {
	Cancelled    int `json:"cancelled"`
	NoShowBilled int `json:"no_show_billed"`
}

type Reconciliation interface {
	Run(ctx context.Context, now time.Time) (RunResult, error)
}

type serviceImpl struct {
	reservationRepo reservationRepo.Reservation
	billingRepo     billingRepo.Billing
	reportSvc       reportService.Report
	db              postgres.Transactor
	cfg             *config.Config
	cache           cache.RedisCache
	producer        kafka.Producer
	s3              s3.S3
	otel            otel.Otel
}

func New(
	reservationRepo reservationRepo.Reservation,
	billingRepo billingRepo.Billing,
	reportSvc reportService.Report,
	db postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	producer kafka.Producer,
	s3 s3.S3,
	otel otel.Otel,
) Reconciliation {
	return &serviceImpl{
		reservationRepo: reservationRepo,
		billingRepo:     billingRepo,
		reportSvc:       reportSvc,
		db:              db,
		cfg:             cfg,
		cache:           cache,
		producer:        producer,
		s3:              s3,
		otel:            otel,
	}
}

// Run executes the nightly reconciliation for the business day ending
// at now. Pass one releases unguaranteed reservations whose arrival
// day has lapsed; pass two posts the automatic one-night bill for
// yesterday's guaranteed no-shows. Both passes land in one
// transaction, so a failed run leaves the books untouched and the next
// tick retries the whole day.
func (s *serviceImpl) Run(ctx context.Context, now time.Time) (result RunResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".Run")
	defer scope.End()
	defer scope.TraceIfError(err)

	yesterday := clock.StartOfDay(now).AddDate(0, 0, -1)
	anchor := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.Hotel.Reconciliation.AnchorHour, 0, 0, 0, now.Location())

	stale, err := s.reservationRepo.GetStaleUnguaranteed(ctx, now)
	if err != nil {
		return result, fmt.Errorf("failed to collect stale reservations: %w", err)
	}

	arrivals, err := s.reservationRepo.GetArrivalsNotCheckedIn(ctx, yesterday)
	if err != nil {
		return result, fmt.Errorf("failed to collect missed arrivals: %w", err)
	}

	cancelled := make(map[string]bool, len(stale))
	for _, r := range stale {
		cancelled[r.ID] = true
	}

	// Reservations released by pass one never reach pass two, matching
	// the sequential order the passes commit in.
	noShows := make([]reservationModel.Reservation, 0, len(arrivals))

	for _, arrival := range arrivals {
		if cancelled[arrival.ID] {
			continue
		}

		billed, err := s.billingRepo.HasNoShowBill(ctx, arrival.ID)
		if err != nil {
			return result, fmt.Errorf("failed to check no-show bill: %w", err)
		}

		if billed {
			log.Info().Str("reservationNumber", arrival.ReservationNumber).Msg("no-show already billed, skipping")

			continue
		}

		noShows = append(noShows, arrival)
	}

	if len(stale) == 0 && len(noShows) == 0 {
		log.Info().Time("runAt", now).Msg("reconciliation found nothing to do")

		return result, nil
	}

	released := make([]reservationModel.Reservation, 0, len(stale))
	bills := make([]billingModel.BillingRecord, 0, len(noShows))

	// Each transition re-checks the lifecycle flags inside the
	// transaction. A check-in committed between the scan and this point
	// makes the row stop matching, and the run leaves it alone.
	err = s.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		released = released[:0]
		bills = bills[:0]

		for _, r := range stale {
			ok, err := s.reservationRepo.ReleaseStaleTx(ctx, tx, r.ID)
			if err != nil {
				return err
			}

			if !ok {
				log.Info().Str("reservationNumber", r.ReservationNumber).Msg("reservation changed since the scan, left in place")

				continue
			}

			if err := s.billingRepo.DeleteTx(ctx, tx, shared.FilterByID(r.ID, billingModel.FieldReservationID, billingModel.TableName)); err != nil {
				return err
			}

			released = append(released, r)

			log.Info().
				Str("reservationNumber", r.ReservationNumber).
				Str("guest", r.GuestName).
				Msg("released unguaranteed reservation")
		}

		for _, r := range noShows {
			claimed, err := s.reservationRepo.MarkNoShowTx(ctx, tx, r.ID, now)
			if err != nil {
				return err
			}

			if !claimed {
				log.Info().Str("reservationNumber", r.ReservationNumber).Msg("reservation changed since the scan, no-show bill withheld")

				continue
			}

			bill := billingDto.NewNoShowBill(r.ID, r.NightlyRate, anchor)

			if err := s.billingRepo.InsertTx(ctx, tx, bill); err != nil {
				return err
			}

			bills = append(bills, bill)

			log.Info().
				Str("reservationNumber", r.ReservationNumber).
				Float64("amount", bill.TotalAmount()).
				Msg("billed no-show")
		}

		return nil
	})
	if err != nil {
		return result, fmt.Errorf("reconciliation run failed: %w", err)
	}

	result.Cancelled = len(released)
	result.NoShowBilled = len(bills)

	log.Info().
		Int("cancelled", result.Cancelled).
		Int("noShowBilled", result.NoShowBilled).
		Time("runAt", now).
		Msg("reconciliation run committed")

	s.publish(ctx, released, bills, result)
	s.archiveReport(ctx, yesterday)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetReservation)
		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
		shared.InvalidateCaches(c, s.cache, cacheDailyReport)
	}()

	return result, nil
}

func (s *serviceImpl) publish(ctx context.Context, released []reservationModel.Reservation, bills []billingModel.BillingRecord, result RunResult) {
	go func() {
		c := context.WithoutCancel(ctx)

		messages := make([]kafka.Message, 0, len(released))
		for _, r := range released {
			messages = append(messages, kafka.Message{
				Key: constant.EventKeyReservationCancelled,
				Value: map[string]any{
					"reservation_number": r.ReservationNumber,
					"guest_name":         r.GuestName,
					"room_number":        r.RoomNumber,
					"auto_cancelled":     true,
				},
			})
		}

		if len(messages) > 0 {
			if err := s.producer.SendMessages(c, s.cfg.Kafka.Topics.ReservationEvents, messages...); err != nil {
				log.Error().Err(err).Msg("failed to publish auto-cancel events")
			}
		}

		messages = make([]kafka.Message, 0, len(bills)+1)
		for _, bill := range bills {
			messages = append(messages, kafka.Message{
				Key:   constant.EventKeyNoShowBill,
				Value: bill,
			})
		}

		messages = append(messages, kafka.Message{
			Key:   constant.EventKeyReconciliationComplete,
			Value: result,
		})

		if err := s.producer.SendMessages(c, s.cfg.Kafka.Topics.BillingEvents, messages...); err != nil {
			log.Error().Err(err).Msg("failed to publish billing events")
		}
	}()
}

// archiveReport snapshots the reconciled day's report to object
// storage. Archive failures are logged only; the run has already
// committed.
func (s *serviceImpl) archiveReport(ctx context.Context, day time.Time) {
	go func() {
		c := context.WithoutCancel(ctx)

		report, err := s.reportSvc.GetDaily(c, day)
		if err != nil {
			log.Error().Err(err).Msg("failed to build report for archive")

			return
		}

		data, err := json.Marshal(report)
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal report for archive")

			return
		}

		fileName := timezone.Format(day, constant.DateOnlyFormat) + ".json"

		url, err := s.s3.UploadFileBytes(c, s.cfg.External.S3.BucketName, s.cfg.External.S3.ReportDirectory, fileName, constant.ContentTypeJSON, data)
		if err != nil {
			log.Error().Err(err).Msg("failed to archive daily report")

			return
		}

		log.Info().Str("url", url).Msg("daily report archived")
	}()
}
