package entities

// SlotsPerDay is the number of bookable slots a court offers in one day.
const SlotsPerDay = 8

const (
	CourtFree          = "Available"
	CourtPartialBooked = "Partially Booked"
	CourtFullyBooked   = "Fully Booked"
)

type Availability struct {
	Date         string        `json:"date"`
	Courts       []Court       `json:"courts"`
	Reservations []Reservation `json:"reservations"`
}

type CourtAvailability struct {
	Court        Court
	Reservations []Reservation
	Remaining    int
	State        string
}

// SummarizeAvailability groups the day's reservations per available court.
func SummarizeAvailability(courts []Court, reservations []Reservation) []CourtAvailability {
	available := AvailableCourts(courts)
	out := make([]CourtAvailability, 0, len(available))
	for _, c := range available {
		ca := CourtAvailability{Court: c}
		for _, r := range reservations {
			if r.CourtID == c.ID {
				ca.Reservations = append(ca.Reservations, r)
			}
		}
		booked := len(ca.Reservations)
		ca.Remaining = SlotsPerDay - booked
		if ca.Remaining < 0 {
			ca.Remaining = 0
		}
		switch {
		case booked >= SlotsPerDay:
			ca.State = CourtFullyBooked
		case booked > 0:
			ca.State = CourtPartialBooked
		default:
			ca.State = CourtFree
		}
		out = append(out, ca)
	}
	return out
}
