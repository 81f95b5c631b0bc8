package model

import "hotelier/shared/model"

const (
	TableName  = "travel_companies"
	EntityName = "travel_company"

	FieldID           = "id"
	FieldCompanyName  = "company_name"
	FieldContactEmail = "contact_email"
	FieldContactPhone = "contact_phone"
	FieldDiscountRate = "discount_rate"
	FieldIsActive     = "is_active"
)

// TravelCompany is a partner agency. The discount rate is recorded for
// contract reporting; billing does not apply it.
type TravelCompany struct {
	ID           string  `db:"id"`
	CompanyName  string  `db:"company_name"`
	ContactEmail string  `db:"contact_email"`
	ContactPhone string  `db:"contact_phone"`
	DiscountRate float64 `db:"discount_rate"`
	IsActive     bool    `db:"is_active"`
	model.Metadata
}
