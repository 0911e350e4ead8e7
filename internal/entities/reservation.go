package entities

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Reservation struct {
	ID              string  `json:"id"`
	CourtID         int     `json:"court_id"`
	UserID          string  `json:"user_id"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Attendees       int     `json:"attendees"`
	Status          string  `json:"status"`
	TotalCost       float64 `json:"total_cost"`
	PaymentIntentID string  `json:"payment_intent_id,omitempty"`
}

type ReservationsList struct {
	Reservations []Reservation `json:"reservations"`
}

type ReservationRequest struct {
	CourtID   int    `json:"court_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Attendees int    `json:"attendees"`
}

type ReservationCreated struct {
	ReservationID string  `json:"reservation_id"`
	ClientSecret  string  `json:"client_secret"`
	TotalCost     float64 `json:"total_cost"`
}
