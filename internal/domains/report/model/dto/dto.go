package dto

// NoShowEntry is one guest who was due to arrive on the report day and
// never checked in.
type NoShowEntry struct {
	ReservationNumber string  `json:"reservation_number"`
	GuestName         string  `json:"guest_name"`
	RoomNumber        string  `json:"room_number"`
	NightlyRate       float64 `json:"nightly_rate"`
	HasCreditCard     bool    `json:"has_credit_card"`
	Billed            bool    `json:"billed"`
}

type DailyReportResponse struct {
	Date          string  `json:"date"`
	OccupiedRooms int     `json:"occupied_rooms"`
	RoomCapacity  int     `json:"room_capacity"`
	OccupancyRate float64 `json:"occupancy_rate"`
	RoomRevenue   float64 `json:"room_revenue"`
	TotalRevenue  float64 `json:"total_revenue"`
	BillCount     int     `json:"bill_count"`

	NoShows []NoShowEntry `json:"no_shows"`

	// PendingReconciliation is raised when a detected no-show has not
	// received its automatic bill yet; the nightly run for this day has
	// not completed.
	PendingReconciliation bool `json:"pending_reconciliation"`
}
