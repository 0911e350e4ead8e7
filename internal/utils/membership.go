package utils

import "willspark/internal/entities"

// Hourly court rates in dollars.
const (
	MemberRate    = 4.0
	NonMemberRate = 6.0
)

// HourlyRate returns the rate tier for u. Residents, ALTA and USTA members share
// the member rate; everyone else, including an unknown user, pays the non-member rate.
func HourlyRate(u *entities.UserProfile) float64 {
	if u.IsMember() {
		return MemberRate
	}
	return NonMemberRate
}

// RateLabel is the tier name shown next to the estimate.
func RateLabel(u *entities.UserProfile) string {
	if u.IsMember() {
		return "Resident / member rate"
	}
	return "Non-resident rate"
}
