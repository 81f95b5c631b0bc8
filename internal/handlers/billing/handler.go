package billing

import (
	"net/http"

	"hotelier/infras/otel"
	"hotelier/internal/domains/billing/model/dto"
	"hotelier/internal/domains/billing/service"
	"hotelier/shared/constant"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Billing
	otel    otel.Otel
}

func New(service service.Billing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/checkouts", handler.Checkout)
	router.Route("/billing-records", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetBillingRecordsByReservation)
	})
}

// Checkout settles the bill for an active stay and checks the guest out.
// @Summary Check a guest out
// @Description Locate the active stay by guest name or room number, compute the bill, and mark the guest checked out.
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Checkout Request"
// @Success 200 {object} response.Data[dto.BillingStatementResponse] "Itemized billing statement"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/checkouts [post]
func (handler *Handler) Checkout(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	req := dto.CheckoutRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	statement, err := handler.service.ProcessCheckout(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to process checkout")

		response.WithError(writer, err)

		return
	}

	operator, _ := ctx.Value(constant.ContextKeyOperator).(string)
	scope.AddEvent("Checkout processed successfully by operator " + operator)

	response.WithJSON(writer, http.StatusOK, statement)
}

// GetBillingRecordsByReservation retrieves the bills recorded against a reservation.
// @Summary Get billing records for a reservation
// @Description Retrieve every billing record tied to the given reservation.
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[[]dto.BillingRecordResponse] "Billing records"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/billing-records/{id} [get]
func (handler *Handler) GetBillingRecordsByReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBillingRecordsByReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	records, err := handler.service.GetByReservation(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get billing records by reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Billing records retrieved successfully")

	response.WithJSON(w, http.StatusOK, records)
}
