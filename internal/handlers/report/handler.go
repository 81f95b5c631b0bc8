package report

import (
	"net/http"

	"hotelier/infras/otel"
	"hotelier/internal/domains/report/service"
	"hotelier/shared/clock"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
	"hotelier/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	clock   clock.Clock
	otel    otel.Otel
}

func New(service service.Report, clock clock.Clock, otel otel.Otel) Handler {
	return Handler{
		service: service,
		clock:   clock,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/daily", handler.GetDailyReport)
	})
}

// GetDailyReport builds the daily operations report for the requested date.
// @Summary Get the daily report
// @Description Retrieve occupancy, revenue, and no-show figures for a business day. Defaults to yesterday, the last fully reconciled day.
// @Tags Report
// @Accept json
// @Produce json
// @Param date query string false "Report date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.DailyReportResponse] "Daily report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/daily [get]
func (handler *Handler) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDailyReport")
	defer scope.End()

	date := handler.clock.Now().AddDate(0, 0, -1)

	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, raw)
		if err != nil {
			err = failure.BadRequestFromString("date must be formatted as YYYY-MM-DD")
			scope.TraceError(err)
			log.Error().Err(err).Str("date", raw).Msg("failed to parse report date")

			response.WithError(w, err)

			return
		}

		date = parsed
	}

	report, err := handler.service.GetDaily(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get daily report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Daily report retrieved successfully")

	response.WithJSON(w, http.StatusOK, report)
}
