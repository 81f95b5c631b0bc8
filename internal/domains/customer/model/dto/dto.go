package dto

import (
	"github.com/google/uuid"

	"hotelier/internal/domains/customer/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateCustomerRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email"     validate:"omitempty,email,max=100"`
	IDNumber string `json:"id_number" validate:"required,max=50"`
	Phone    string `json:"phone"     validate:"omitempty,max=20"`
}

func (c *CreateCustomerRequest) ToModel(operator string) model.Customer {
	return model.Customer{
		ID:       uuid.NewString(),
		FullName: c.FullName,
		Email:    c.Email,
		IDNumber: c.IDNumber,
		Phone:    c.Phone,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  operator,
			ModifiedBy: operator,
		},
	}
}

type CustomerResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	IDNumber string `json:"id_number"`
	Phone    string `json:"phone"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.FullName = model.FullName
	r.Email = model.Email
	r.IDNumber = model.IDNumber
	r.Phone = model.Phone
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
