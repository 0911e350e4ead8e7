package entities

import "math"

type Analytics struct {
	TotalReservations     int     `json:"total_reservations"`
	ConfirmedReservations int     `json:"confirmed_reservations"`
	TotalRevenue          float64 `json:"total_revenue"`
	TotalUsers            int     `json:"total_users"`
}

func (a Analytics) AverageBookingValue() float64 {
	if a.ConfirmedReservations <= 0 {
		return 0
	}
	return math.Round(a.TotalRevenue/float64(a.ConfirmedReservations)*100) / 100
}

// ConversionRate is the confirmed share of all reservations, as a whole percent.
func (a Analytics) ConversionRate() int {
	if a.TotalReservations <= 0 {
		return 0
	}
	return int(math.Round(float64(a.ConfirmedReservations) / float64(a.TotalReservations) * 100))
}

// AdminDashboard is what the staff screen renders. Each part defaults to its
// zero value when the corresponding fetch failed.
type AdminDashboard struct {
	Reservations []Reservation
	Users        []UserProfile
	Analytics    Analytics
}
