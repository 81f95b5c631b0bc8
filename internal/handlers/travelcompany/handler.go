package travelcompany

import (
	"net/http"

	"hotelier/infras/otel"
	"hotelier/internal/domains/travelcompany/model"
	"hotelier/internal/domains/travelcompany/model/dto"
	"hotelier/internal/domains/travelcompany/service"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/validator"
	"hotelier/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.TravelCompany
	otel    otel.Otel
}

func New(service service.TravelCompany, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/travel-companies", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTravelCompany)
		routerGroup.Get("/", handler.GetTravelCompanies)
		routerGroup.Get("/{id}", handler.GetTravelCompanyByID)
		routerGroup.Patch("/{id}", handler.UpdateTravelCompany)
		routerGroup.Delete("/{id}", handler.DeleteTravelCompany)
	})
}

// CreateTravelCompany registers a partner agency.
// @Summary Create a new travel company
// @Description Register a travel company with the provided details.
// @Tags TravelCompany
// @Accept json
// @Produce json
// @Param request body dto.CreateTravelCompanyRequest true "Create Travel Company Request"
// @Success 201 {object} response.Message "Travel company created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/travel-companies [post]
func (handler *Handler) CreateTravelCompany(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTravelCompany")
	defer scope.End()

	req := dto.CreateTravelCompanyRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create travel company")

		response.WithError(writer, err)

		return
	}

	operator, _ := ctx.Value(constant.ContextKeyOperator).(string)
	scope.AddEvent("Travel company created successfully by operator " + operator)

	response.WithMessage(writer, http.StatusCreated, "Travel company created successfully")
}

// GetTravelCompanies retrieves travel companies based on query parameters.
// @Summary Get all travel companies
// @Description Retrieve all travel companies with optional filtering and pagination.
// @Tags TravelCompany
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param company_name query string false "Filter by company name"
// @Param is_active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetTravelCompaniesResponse] "List of travel companies"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/travel-companies [get]
func (handler *Handler) GetTravelCompanies(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTravelCompanies")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	companyName := r.URL.Query().Get(model.FieldCompanyName)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCompanyName,
				Operator: gDto.FilterOperatorLike,
				Value:    companyName,
				Table:    model.TableName,
			},
		},
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	companies, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get travel companies")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Travel companies retrieved successfully")

	response.WithJSON(w, http.StatusOK, companies)
}

// GetTravelCompanyByID retrieves a travel company by its ID.
// @Summary Get a travel company by ID
// @Description Retrieve a travel company by its unique identifier.
// @Tags TravelCompany
// @Accept json
// @Produce json
// @Param id path string true "Travel Company ID"
// @Success 200 {object} response.Data[dto.TravelCompanyResponse] "Travel company details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/travel-companies/{id} [get]
func (handler *Handler) GetTravelCompanyByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTravelCompanyByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	company, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get travel company by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Travel company retrieved successfully")

	response.WithJSON(w, http.StatusOK, company)
}

// UpdateTravelCompany updates an existing travel company by its ID.
// @Summary Update a travel company by ID
// @Description Update the details of an existing travel company.
// @Tags TravelCompany
// @Accept json
// @Produce json
// @Param id path string true "Travel Company ID"
// @Param request body dto.UpdateTravelCompanyRequest true "Update Travel Company Request"
// @Success 200 {object} response.Message "Travel company updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/travel-companies/{id} [patch]
func (handler *Handler) UpdateTravelCompany(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTravelCompany")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTravelCompanyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update travel company")

		response.WithError(w, err)

		return
	}

	operator, _ := ctx.Value(constant.ContextKeyOperator).(string)
	scope.AddEvent("Travel company updated successfully by operator " + operator)

	response.WithMessage(w, http.StatusOK, "Travel company updated successfully")
}

// DeleteTravelCompany deletes a travel company by its ID.
// @Summary Delete a travel company by ID
// @Description Delete a travel company using its unique identifier.
// @Tags TravelCompany
// @Accept json
// @Produce json
// @Param id path string true "Travel Company ID"
// @Success 200 {object} response.Message "Travel company deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/travel-companies/{id} [delete]
func (handler *Handler) DeleteTravelCompany(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTravelCompany")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete travel company")

		response.WithError(w, err)

		return
	}

	operator, _ := ctx.Value(constant.ContextKeyOperator).(string)
	scope.AddEvent("Travel company deleted successfully by operator " + operator)

	response.WithMessage(w, http.StatusOK, "Travel company deleted successfully")
}
