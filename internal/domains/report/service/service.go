package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/otel"
	billingModel "hotelier/internal/domains/billing/model"
	billingRepo "hotelier/internal/domains/billing/repository"
	"hotelier/internal/domains/report/model/dto"
	reservationModel "hotelier/internal/domains/reservation/model"
	reservationRepo "hotelier/internal/domains/reservation/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
)

const cacheDailyReport = "report:daily"

// Report aggregates the day's numbers. It never writes; detected
// no-shows that still lack their bill are surfaced through the
// pending_reconciliation flag instead of being billed here.
type Report interface {
	GetDaily(ctx context.Context, date time.Time) (dto.DailyReportResponse, error)
}

type serviceImpl struct {
	reservationRepo reservationRepo.Reservation
	billingRepo     billingRepo.Billing
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	reservationRepo reservationRepo.Reservation,
	billingRepo billingRepo.Billing,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Report {
	return &serviceImpl{
		reservationRepo: reservationRepo,
		billingRepo:     billingRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) GetDaily(ctx context.Context, date time.Time) (res dto.DailyReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDaily")
	defer scope.End()
	defer scope.TraceIfError(err)

	day := timezone.Format(date, constant.DateOnlyFormat)
	cacheKey := shared.BuildCacheKey(cacheDailyReport, day)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for daily report")

		return res, nil
	}

	occupied, err := s.reservationRepo.Count(ctx, occupiedFilter())
	if err != nil {
		return res, fmt.Errorf("failed to count occupied rooms: %w", err)
	}

	bills, err := s.billingRepo.GetAll(ctx, gDto.QueryParams{}, billedOnFilter(date))
	if err != nil {
		return res, fmt.Errorf("failed to get billing records: %w", err)
	}

	noShows, err := s.reservationRepo.GetArrivalsNotCheckedIn(ctx, date)
	if err != nil {
		return res, fmt.Errorf("failed to detect no-shows: %w", err)
	}

	res = dto.DailyReportResponse{
		Date:          day,
		OccupiedRooms: occupied,
		RoomCapacity:  s.cfg.Hotel.TotalRoomCapacity,
		OccupancyRate: occupancyRate(occupied, s.cfg.Hotel.TotalRoomCapacity),
		BillCount:     len(bills),
		NoShows:       make([]dto.NoShowEntry, 0, len(noShows)),
	}

	for _, bill := range bills {
		res.RoomRevenue += bill.RoomCharge
		res.TotalRevenue += bill.TotalAmount()
	}

	for _, r := range noShows {
		billed, err := s.billingRepo.HasNoShowBill(ctx, r.ID)
		if err != nil {
			return res, fmt.Errorf("failed to check no-show bill: %w", err)
		}

		if !billed {
			res.PendingReconciliation = true
		}

		res.NoShows = append(res.NoShows, dto.NoShowEntry{
			ReservationNumber: r.ReservationNumber,
			GuestName:         r.GuestName,
			RoomNumber:        r.RoomNumber,
			NightlyRate:       r.NightlyRate,
			HasCreditCard:     r.HasCreditCard,
			Billed:            billed,
		})
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save daily report to cache")
		}
	}()

	return res, nil
}

// occupancyRate is the occupied share of capacity in percent, rounded
// to two decimals. Zero capacity reports zero rather than dividing.
func occupancyRate(occupied, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}

	return math.Round(float64(occupied)/float64(capacity)*100*100) / 100
}

func occupiedFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    reservationModel.FieldIsCheckedIn,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    reservationModel.TableName,
			},
			gDto.Filter{
				Field:    reservationModel.FieldCheckedOutAt,
				Operator: gDto.FilterIsNull,
				Table:    reservationModel.TableName,
			},
		},
	}
}

func billedOnFilter(date time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    billingModel.FieldBilledAt,
				Value:    date,
				Operator: gDto.FilterOperatorDateEq,
				Table:    billingModel.TableName,
			},
		},
	}
}
