package dto

import (
	"github.com/google/uuid"

	"hotelier/internal/domains/room/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateRoomRequest struct {
	RoomNumber  string  `json:"room_number"  validate:"required,max=10"`
	Type        string  `json:"type"         validate:"required,oneof=Standard Deluxe Suite ResidentialSuite"`
	NightlyRate float64 `json:"nightly_rate" validate:"required,gt=0"`
	WeeklyRate  float64 `json:"weekly_rate"  validate:"omitempty,gte=0"`
	MonthlyRate float64 `json:"monthly_rate" validate:"omitempty,gte=0"`
	IsAvailable *bool   `json:"is_available" validate:"omitempty"`
	Description string  `json:"description"  validate:"omitempty,max=500"`
}

func (c *CreateRoomRequest) ToModel(operator string) model.Room {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	return model.Room{
		ID:          uuid.NewString(),
		RoomNumber:  c.RoomNumber,
		Type:        model.RoomType(c.Type),
		NightlyRate: c.NightlyRate,
		WeeklyRate:  c.WeeklyRate,
		MonthlyRate: c.MonthlyRate,
		IsAvailable: available,
		Description: c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  operator,
			ModifiedBy: operator,
		},
	}
}

type UpdateRoomRequest struct {
	Type        string   `db:"type"         json:"type"         validate:"omitempty,oneof=Standard Deluxe Suite ResidentialSuite"`
	NightlyRate *float64 `db:"nightly_rate" json:"nightly_rate" validate:"omitempty,gt=0"`
	WeeklyRate  *float64 `db:"weekly_rate"  json:"weekly_rate"  validate:"omitempty,gte=0"`
	MonthlyRate *float64 `db:"monthly_rate" json:"monthly_rate" validate:"omitempty,gte=0"`
	IsAvailable *bool    `db:"is_available" json:"is_available" validate:"omitempty"`
	Description string   `db:"description"  json:"description"  validate:"omitempty,max=500"`
}

type RoomResponse struct {
	ID          string  `json:"id"`
	RoomNumber  string  `json:"room_number"`
	Type        string  `json:"type"`
	NightlyRate float64 `json:"nightly_rate"`
	WeeklyRate  float64 `json:"weekly_rate"`
	MonthlyRate float64 `json:"monthly_rate"`
	IsAvailable bool    `json:"is_available"`
	Description string  `json:"description"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Type = string(model.Type)
	r.NightlyRate = model.NightlyRate
	r.WeeklyRate = model.WeeklyRate
	r.MonthlyRate = model.MonthlyRate
	r.IsAvailable = model.IsAvailable
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
