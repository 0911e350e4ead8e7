package entities

type Court struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

type CourtsList struct {
	Courts []Court `json:"courts"`
}

// AvailableCourts drops courts closed for reservation, preserving order.
func AvailableCourts(courts []Court) []Court {
	out := make([]Court, 0, len(courts))
	for _, c := range courts {
		if c.Available {
			out = append(out, c)
		}
	}
	return out
}
