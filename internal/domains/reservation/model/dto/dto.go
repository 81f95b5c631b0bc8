package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	customerModel "hotelier/internal/domains/customer/model"
	"hotelier/internal/domains/reservation/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateReservationRequest struct {
	GuestFullName   string  `json:"guest_full_name"   validate:"required,max=100"`
	GuestEmail      string  `json:"guest_email"       validate:"omitempty,email,max=100"`
	GuestIDNumber   string  `json:"guest_id_number"   validate:"required,max=50"`
	GuestPhone      string  `json:"guest_phone"       validate:"omitempty,max=20"`
	RoomID          string  `json:"room_id"           validate:"required,uuid4"`
	TravelCompanyID *string `json:"travel_company_id" validate:"omitempty,uuid4"`
	ArrivalDate     string  `json:"arrival_date"      validate:"required,dateonly"`
	DepartureDate   string  `json:"departure_date"    validate:"required,dateonly"`
	Occupants       int     `json:"occupants"         validate:"required,min=1,max=10"`
	HasCreditCard   bool    `json:"has_credit_card"`
	CardNumber      string  `json:"card_number"       validate:"omitempty,min=12,max=23"`
	CardExpiry      string  `json:"card_expiry"       validate:"omitempty,max=7"`
}

func (c *CreateReservationRequest) ToCustomerModel(operator string, now time.Time) customerModel.Customer {
	return customerModel.Customer{
		ID:       uuid.NewString(),
		FullName: c.GuestFullName,
		Email:    c.GuestEmail,
		IDNumber: c.GuestIDNumber,
		Phone:    c.GuestPhone,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  operator,
			ModifiedBy: operator,
		},
	}
}

// ToModel builds the reservation. A stay guaranteed with a credit card
// is confirmed on the spot; the card number is stored masked and the
// CVV is never accepted.
func (c *CreateReservationRequest) ToModel(customerID, operator string, arrival, departure, now time.Time) model.Reservation {
	id := uuid.NewString()

	cardNumber := constant.Empty
	if c.HasCreditCard {
		cardNumber = shared.MaskCardNumber(c.CardNumber)
	}

	return model.Reservation{
		ID:                id,
		CustomerID:        customerID,
		RoomID:            c.RoomID,
		TravelCompanyID:   c.TravelCompanyID,
		ReservationNumber: BuildReservationNumber(id, now),
		ArrivalDate:       arrival,
		DepartureDate:     departure,
		Occupants:         c.Occupants,
		HasCreditCard:     c.HasCreditCard,
		CardNumber:        cardNumber,
		CardExpiry:        c.CardExpiry,
		IsConfirmed:       c.HasCreditCard,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  operator,
			ModifiedBy: operator,
		},
	}
}

// BuildReservationNumber derives the front-desk reference from the
// reservation id and the booking clock time.
func BuildReservationNumber(id string, now time.Time) string {
	return fmt.Sprintf("RES-%s%s", id[:8], now.Format("150405"))
}

type CreateReservationResponse struct {
	ReservationNumber string `json:"reservation_number"`
	IsConfirmed       bool   `json:"is_confirmed"`
}

type UpdateReservationRequest struct {
	ArrivalDate   string `json:"arrival_date"   validate:"omitempty,dateonly"`
	DepartureDate string `json:"departure_date" validate:"omitempty,dateonly"`
	Occupants     *int   `json:"occupants"      validate:"omitempty,min=1,max=10"`
}

type CheckInRequest struct {
	ReservationNumber string `json:"reservation_number" validate:"omitempty,max=20"`
	FullName          string `json:"full_name"          validate:"required_without=ReservationNumber,omitempty,max=100"`
	IDNumber          string `json:"id_number"          validate:"required_without=ReservationNumber,omitempty,max=50"`
	Email             string `json:"email"              validate:"omitempty,email,max=100"`
	Phone             string `json:"phone"              validate:"omitempty,max=20"`
}

// ToCustomerModel registers the walk-in guest; there is no
// reservation to attach them to.
func (c *CheckInRequest) ToCustomerModel(operator string, now time.Time) customerModel.Customer {
	return customerModel.Customer{
		ID:       uuid.NewString(),
		FullName: c.FullName,
		Email:    c.Email,
		IDNumber: c.IDNumber,
		Phone:    c.Phone,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  operator,
			ModifiedBy: operator,
		},
	}
}

type CheckInResponse struct {
	ReservationNumber string `json:"reservation_number,omitempty"`
	GuestName         string `json:"guest_name"`
	RoomNumber        string `json:"room_number,omitempty"`
	CheckedInAt       string `json:"checked_in_at"`
	WalkIn            bool   `json:"walk_in"`
}

type ReservationResponse struct {
	ID                string  `json:"id"`
	ReservationNumber string  `json:"reservation_number"`
	CustomerID        string  `json:"customer_id"`
	GuestName         string  `json:"guest_name"`
	RoomID            string  `json:"room_id"`
	RoomNumber        string  `json:"room_number"`
	NightlyRate       float64 `json:"nightly_rate"`
	TravelCompanyID   *string `json:"travel_company_id,omitempty"`
	ArrivalDate       string  `json:"arrival_date"`
	DepartureDate     string  `json:"departure_date"`
	Occupants         int     `json:"occupants"`
	HasCreditCard     bool    `json:"has_credit_card"`
	CardNumber        string  `json:"card_number,omitempty"`
	IsConfirmed       bool    `json:"is_confirmed"`
	IsCheckedIn       bool    `json:"is_checked_in"`
	IsNoShow          bool    `json:"is_no_show"`
	CheckedInAt       string  `json:"checked_in_at,omitempty"`
	CheckedOutAt      string  `json:"checked_out_at,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.ReservationNumber = model.ReservationNumber
	r.CustomerID = model.CustomerID
	r.GuestName = model.GuestName
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.NightlyRate = model.NightlyRate
	r.TravelCompanyID = model.TravelCompanyID
	r.ArrivalDate = timezone.Format(model.ArrivalDate, constant.DateOnlyFormat)
	r.DepartureDate = timezone.Format(model.DepartureDate, constant.DateOnlyFormat)
	r.Occupants = model.Occupants
	r.HasCreditCard = model.HasCreditCard
	r.CardNumber = model.CardNumber
	r.IsConfirmed = model.IsConfirmed
	r.IsCheckedIn = model.IsCheckedIn
	r.IsNoShow = model.IsNoShow

	if model.CheckedInAt != nil {
		r.CheckedInAt = timezone.Format(*model.CheckedInAt, constant.DateFormat)
	}

	if model.CheckedOutAt != nil {
		r.CheckedOutAt = timezone.Format(*model.CheckedOutAt, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
