package api

import (
	"html/template"

	"willspark/internal/entities"
	"willspark/internal/service"
)

// Page is the data every template receives.
type Page struct {
	Title         string
	Screen        string
	Tab           string
	Tabs          []string
	User          *entities.UserProfile
	Success       string
	Error         string
	CSRFField     template.HTML
	Notifications []entities.Notification

	Login  *LoginData
	Member *MemberData
	Admin  *AdminData
}

type LoginData struct {
	Staff bool
}

type MemberData struct {
	View      service.MemberView
	Draft     entities.BookingDraft
	Price     float64
	RateLabel string
	CanSubmit bool
	Today     string
}

type AdminData struct {
	Dashboard entities.AdminDashboard
	Courts    []entities.Court
	Exports   []ExportLink
}

type ExportLink struct {
	Kind  string
	Label string
}

var exportLinks = []ExportLink{
	{entities.ExportRevenue, "Monthly Revenue Report"},
	{entities.ExportUsage, "Usage Analytics"},
	{entities.ExportUsers, "User Activity Report"},
	{entities.ExportCourtUsage, "Court Usage Report"},
}

// PriceEstimate is the JSON answer of the price endpoint.
type PriceEstimate struct {
	Price     float64 `json:"price"`
	Rate      float64 `json:"rate"`
	RateLabel string  `json:"rate_label"`
	CanSubmit bool    `json:"can_submit"`
}
