package model

import (
	"time"

	"hotelier/shared/model"
)

const (
	TableName  = "billing_records"
	EntityName = "billing_record"

	FieldID                 = "id"
	FieldReservationID      = "reservation_id"
	FieldRoomCharge         = "room_charge"
	FieldRestaurantCharge   = "restaurant_charge"
	FieldRoomServiceCharge  = "room_service_charge"
	FieldLaundryCharge      = "laundry_charge"
	FieldTelephoneCharge    = "telephone_charge"
	FieldClubFacilityCharge = "club_facility_charge"
	FieldOverstayCharge     = "overstay_charge"
	FieldPaymentMethod      = "payment_method"
	FieldIsPaid             = "is_paid"
	FieldBilledAt           = "billed_at"
	FieldIsNoShowBill       = "is_no_show_bill"
)

// BillingRecord is one settled or pending statement for a stay. The
// total is never stored; it is always derived from the itemized
// charges.
type BillingRecord struct {
	ID                 string    `db:"id"`
	ReservationID      string    `db:"reservation_id"`
	RoomCharge         float64   `db:"room_charge"`
	RestaurantCharge   float64   `db:"restaurant_charge"`
	RoomServiceCharge  float64   `db:"room_service_charge"`
	LaundryCharge      float64   `db:"laundry_charge"`
	TelephoneCharge    float64   `db:"telephone_charge"`
	ClubFacilityCharge float64   `db:"club_facility_charge"`
	OverstayCharge     float64   `db:"overstay_charge"`
	PaymentMethod      string    `db:"payment_method"`
	IsPaid             bool      `db:"is_paid"`
	BilledAt           time.Time `db:"billed_at"`
	IsNoShowBill       bool      `db:"is_no_show_bill"`
	model.Metadata
}

func (b *BillingRecord) TotalAmount() float64 {
	return b.RoomCharge + b.RestaurantCharge + b.RoomServiceCharge +
		b.LaundryCharge + b.TelephoneCharge + b.ClubFacilityCharge + b.OverstayCharge
}
