package model

import "hotelier/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID       = "id"
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldIDNumber = "id_number"
	FieldPhone    = "phone"
)

type Customer struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	Email    string `db:"email"`
	IDNumber string `db:"id_number"`
	Phone    string `db:"phone"`
	model.Metadata
}
