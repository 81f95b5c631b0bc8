package model

import (
	"fmt"
	"time"

	"hotelier/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID                = "id"
	FieldCustomerID        = "customer_id"
	FieldRoomID            = "room_id"
	FieldTravelCompanyID   = "travel_company_id"
	FieldReservationNumber = "reservation_number"
	FieldArrivalDate       = "arrival_date"
	FieldDepartureDate     = "departure_date"
	FieldOccupants         = "occupants"
	FieldHasCreditCard     = "has_credit_card"
	FieldCardNumber        = "card_number"
	FieldCardExpiry        = "card_expiry"
	FieldIsConfirmed       = "is_confirmed"
	FieldIsCheckedIn       = "is_checked_in"
	FieldIsNoShow          = "is_no_show"
	FieldCheckedInAt       = "checked_in_at"
	FieldCheckedOutAt      = "checked_out_at"
)

// Joined column aliases. Reads always join the guest and the room so
// the front desk never needs a second lookup.
const (
	CustomersTable = "customers"
	RoomsTable     = "rooms"

	FieldGuestName     = "full_name"
	FieldGuestIDNumber = "id_number"
	FieldRoomNumber    = "room_number"
	FieldNightlyRate   = "nightly_rate"
)

// Reservation is a stay booked against a room. The card number, when
// the guest guarantees the stay, is stored masked.
type Reservation struct {
	ID                string     `db:"id"`
	CustomerID        string     `db:"customer_id"`
	RoomID            string     `db:"room_id"`
	TravelCompanyID   *string    `db:"travel_company_id"`
	ReservationNumber string     `db:"reservation_number"`
	ArrivalDate       time.Time  `db:"arrival_date"`
	DepartureDate     time.Time  `db:"departure_date"`
	Occupants         int        `db:"occupants"`
	HasCreditCard     bool       `db:"has_credit_card"`
	CardNumber        string     `db:"card_number"`
	CardExpiry        string     `db:"card_expiry"`
	IsConfirmed       bool       `db:"is_confirmed"`
	IsCheckedIn       bool       `db:"is_checked_in"`
	IsNoShow          bool       `db:"is_no_show"`
	CheckedInAt       *time.Time `db:"checked_in_at"`
	CheckedOutAt      *time.Time `db:"checked_out_at"`

	GuestName   string  `db:"guest_name"   table:"customers" column:"full_name"`
	RoomNumber  string  `db:"room_number"  table:"rooms"     column:"room_number"`
	NightlyRate float64 `db:"nightly_rate" table:"rooms"     column:"nightly_rate"`

	model.Metadata
}

func (r Reservation) GetJoinQuery() string {
	return fmt.Sprintf(
		"JOIN %s ON %s.%s = %s.id JOIN %s ON %s.%s = %s.id",
		CustomersTable, TableName, FieldCustomerID, CustomersTable,
		RoomsTable, TableName, FieldRoomID, RoomsTable,
	)
}
