package entities

// BookingDraft is the unsaved booking form. Fields hold raw form input.
type BookingDraft struct {
	CourtID   string
	Date      string
	StartTime string
	EndTime   string
	Attendees string
}

func (d BookingDraft) Complete() bool {
	return d.CourtID != "" && d.Date != "" && d.StartTime != "" && d.EndTime != "" && d.Attendees != ""
}
