package dto

import (
	"time"

	"github.com/google/uuid"

	"hotelier/internal/domains/billing/model"
	"hotelier/shared/constant"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

// CheckoutRequest settles an active stay found either by guest name
// (substring) or exact room number.
type CheckoutRequest struct {
	GuestName          string  `json:"guest_name"           validate:"required_without=RoomNumber,omitempty,max=100"`
	RoomNumber         string  `json:"room_number"          validate:"required_without=GuestName,omitempty,max=10"`
	Restaurant         bool    `json:"restaurant"`
	RoomService        bool    `json:"room_service"`
	Laundry            bool    `json:"laundry"`
	TelephoneCharge    float64 `json:"telephone_charge"     validate:"omitempty,gte=0"`
	ClubFacilityCharge float64 `json:"club_facility_charge" validate:"omitempty,gte=0"`
	PaymentMethod      string  `json:"payment_method"       validate:"omitempty,oneof=Cash Card"`
}

type BillingStatementResponse struct {
	ReservationNumber  string  `json:"reservation_number"`
	GuestName          string  `json:"guest_name"`
	RoomNumber         string  `json:"room_number"`
	ArrivalDate        string  `json:"arrival_date"`
	DepartureDate      string  `json:"departure_date"`
	CheckedOutAt       string  `json:"checked_out_at"`
	Nights             int     `json:"nights"`
	RoomCharge         float64 `json:"room_charge"`
	RestaurantCharge   float64 `json:"restaurant_charge"`
	RoomServiceCharge  float64 `json:"room_service_charge"`
	LaundryCharge      float64 `json:"laundry_charge"`
	TelephoneCharge    float64 `json:"telephone_charge"`
	ClubFacilityCharge float64 `json:"club_facility_charge"`
	OverstayCharge     float64 `json:"overstay_charge"`
	TotalAmount        float64 `json:"total_amount"`
	PaymentMethod      string  `json:"payment_method"`
}

// NewNoShowBill builds the automatic one-night statement the nightly
// run posts for a guest that never arrived. It is marked paid so it
// can not be settled again at the desk.
func NewNoShowBill(reservationID string, nightlyRate float64, billedAt time.Time) model.BillingRecord {
	return model.BillingRecord{
		ID:            uuid.NewString(),
		ReservationID: reservationID,
		RoomCharge:    nightlyRate,
		PaymentMethod: constant.PaymentMethodNoShow,
		IsPaid:        true,
		BilledAt:      billedAt,
		IsNoShowBill:  true,
		Metadata: gModel.Metadata{
			CreatedAt:  billedAt,
			ModifiedAt: billedAt,
			CreatedBy:  constant.OperatorSystem,
			ModifiedBy: constant.OperatorSystem,
		},
	}
}

type BillingRecordResponse struct {
	ID                 string  `json:"id"`
	ReservationID      string  `json:"reservation_id"`
	RoomCharge         float64 `json:"room_charge"`
	RestaurantCharge   float64 `json:"restaurant_charge"`
	RoomServiceCharge  float64 `json:"room_service_charge"`
	LaundryCharge      float64 `json:"laundry_charge"`
	TelephoneCharge    float64 `json:"telephone_charge"`
	ClubFacilityCharge float64 `json:"club_facility_charge"`
	OverstayCharge     float64 `json:"overstay_charge"`
	TotalAmount        float64 `json:"total_amount"`
	PaymentMethod      string  `json:"payment_method"`
	IsPaid             bool    `json:"is_paid"`
	BilledAt           string  `json:"billed_at"`
	IsNoShowBill       bool    `json:"is_no_show_bill"`
}

func (r *BillingRecordResponse) FromModel(mod model.BillingRecord) {
	r.ID = mod.ID
	r.ReservationID = mod.ReservationID
	r.RoomCharge = mod.RoomCharge
	r.RestaurantCharge = mod.RestaurantCharge
	r.RoomServiceCharge = mod.RoomServiceCharge
	r.LaundryCharge = mod.LaundryCharge
	r.TelephoneCharge = mod.TelephoneCharge
	r.ClubFacilityCharge = mod.ClubFacilityCharge
	r.OverstayCharge = mod.OverstayCharge
	r.TotalAmount = mod.TotalAmount()
	r.PaymentMethod = mod.PaymentMethod
	r.IsPaid = mod.IsPaid
	r.BilledAt = timezone.Format(mod.BilledAt, constant.DateFormat)
	r.IsNoShowBill = mod.IsNoShowBill
}
