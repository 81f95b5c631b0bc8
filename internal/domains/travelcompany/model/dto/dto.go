package dto

import (
	"github.com/google/uuid"

	"hotelier/internal/domains/travelcompany/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

const defaultDiscountRate = 0.15

type CreateTravelCompanyRequest struct {
	CompanyName  string   `json:"company_name"  validate:"required,max=100"`
	ContactEmail string   `json:"contact_email" validate:"omitempty,email,max=100"`
	ContactPhone string   `json:"contact_phone" validate:"omitempty,max=20"`
	DiscountRate *float64 `json:"discount_rate" validate:"omitempty,gte=0,lte=1"`
	IsActive     *bool    `json:"is_active"     validate:"omitempty"`
}

func (c *CreateTravelCompanyRequest) ToModel(operator string) model.TravelCompany {
	rate := defaultDiscountRate
	if c.DiscountRate != nil {
		rate = *c.DiscountRate
	}

	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.TravelCompany{
		ID:           uuid.NewString(),
		CompanyName:  c.CompanyName,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		DiscountRate: rate,
		IsActive:     active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  operator,
			ModifiedBy: operator,
		},
	}
}

type UpdateTravelCompanyRequest struct {
	CompanyName  string   `db:"company_name"  json:"company_name"  validate:"omitempty,max=100"`
	ContactEmail string   `db:"contact_email" json:"contact_email" validate:"omitempty,email,max=100"`
	ContactPhone string   `db:"contact_phone" json:"contact_phone" validate:"omitempty,max=20"`
	DiscountRate *float64 `db:"discount_rate" json:"discount_rate" validate:"omitempty,gte=0,lte=1"`
	IsActive     *bool    `db:"is_active"     json:"is_active"     validate:"omitempty"`
}

type TravelCompanyResponse struct {
	ID           string  `json:"id"`
	CompanyName  string  `json:"company_name"`
	ContactEmail string  `json:"contact_email"`
	ContactPhone string  `json:"contact_phone"`
	DiscountRate float64 `json:"discount_rate"`
	IsActive     bool    `json:"is_active"`
	gDto.Metadata
}

func (r *TravelCompanyResponse) FromModel(model model.TravelCompany) {
	r.ID = model.ID
	r.CompanyName = model.CompanyName
	r.ContactEmail = model.ContactEmail
	r.ContactPhone = model.ContactPhone
	r.DiscountRate = model.DiscountRate
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetTravelCompaniesResponse struct {
	TravelCompanies []TravelCompanyResponse `json:"travel_companies"`
	TotalPage       int                     `json:"total_page"`
	TotalData       int                     `json:"total_data"`
}

func (r *GetTravelCompaniesResponse) FromModels(models []model.TravelCompany, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.TravelCompanies = make([]TravelCompanyResponse, len(models))
	for i, mod := range models {
		r.TravelCompanies[i].FromModel(mod)
	}
}
