package model

import "hotelier/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldRoomNumber  = "room_number"
	FieldType        = "type"
	FieldNightlyRate = "nightly_rate"
	FieldWeeklyRate  = "weekly_rate"
	FieldMonthlyRate = "monthly_rate"
	FieldIsAvailable = "is_available"
	FieldDescription = "description"
)

type RoomType string

const (
	RoomTypeStandard         RoomType = "Standard"
	RoomTypeDeluxe           RoomType = "Deluxe"
	RoomTypeSuite            RoomType = "Suite"
	RoomTypeResidentialSuite RoomType = "ResidentialSuite"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypeResidentialSuite:
		return true
	}

	return false
}

// Room is a physical room. Weekly and monthly rates only carry meaning
// for residential suites; other types are billed nightly.
type Room struct {
	ID          string   `db:"id"`
	RoomNumber  string   `db:"room_number"`
	Type        RoomType `db:"type"`
	NightlyRate float64  `db:"nightly_rate"`
	WeeklyRate  float64  `db:"weekly_rate"`
	MonthlyRate float64  `db:"monthly_rate"`
	IsAvailable bool     `db:"is_available"`
	Description string   `db:"description"`
	model.Metadata
}
