package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"willspark/internal/entities"
	apperrors "willspark/internal/errors"
	"willspark/internal/repository"
	"willspark/internal/utils"
)

// BookingService owns the booking form draft and turns it into reservations.
type BookingService struct {
	backend  *repository.BackendRepository
	payments *PaymentService
	now      func() time.Time

	mu    sync.Mutex
	draft entities.BookingDraft
}

func NewBookingService(backend *repository.BackendRepository, payments *PaymentService) *BookingService {
	s := &BookingService{backend: backend, payments: payments, now: time.Now}
	s.draft = s.blankDraft()
	return s
}

func (s *BookingService) blankDraft() entities.BookingDraft {
	return entities.BookingDraft{Date: utils.Today(s.now()), Attendees: "1"}
}

func (s *BookingService) Draft() entities.BookingDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *BookingService) update(fn func(*entities.BookingDraft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.draft)
}

func (s *BookingService) SetCourt(v string)     { s.update(func(d *entities.BookingDraft) { d.CourtID = v }) }
func (s *BookingService) SetDate(v string)      { s.update(func(d *entities.BookingDraft) { d.Date = v }) }
func (s *BookingService) SetStartTime(v string) { s.update(func(d *entities.BookingDraft) { d.StartTime = v }) }
func (s *BookingService) SetEndTime(v string)   { s.update(func(d *entities.BookingDraft) { d.EndTime = v }) }
func (s *BookingService) SetAttendees(v string) { s.update(func(d *entities.BookingDraft) { d.Attendees = v }) }

// Replace swaps the whole draft, as when a form is posted.
func (s *BookingService) Replace(d entities.BookingDraft) {
	s.update(func(cur *entities.BookingDraft) { *cur = d })
}

func (s *BookingService) Reset() {
	blank := s.blankDraft()
	s.update(func(d *entities.BookingDraft) { *d = blank })
}

// ComputePrice estimates the cost of draft for user. It returns 0 for empty,
// unparseable or non-positive time ranges so submission stays disabled.
func ComputePrice(draft entities.BookingDraft, user *entities.UserProfile) float64 {
	if draft.StartTime == "" || draft.EndTime == "" {
		return 0
	}
	date := draft.Date
	if date == "" {
		date = "2000-01-01"
	}
	hours, err := utils.HoursBetween(date, draft.StartTime, draft.EndTime)
	if err != nil || hours <= 0 {
		return 0
	}
	return math.Round(hours*utils.HourlyRate(user)*100) / 100
}

func CanSubmit(draft entities.BookingDraft, user *entities.UserProfile) bool {
	return draft.Complete() && ComputePrice(draft, user) > 0
}

// Submit sends draft as a reservation request on behalf of token's user.
// The draft is reset only when the reservation and its payment succeed.
// Duration, advance window and attendee limits are left to the backend.
func (s *BookingService) Submit(ctx context.Context, token string, draft entities.BookingDraft) (string, error) {
	if !draft.Complete() {
		return "", apperrors.NewValidationError("booking", "Please fill in every field")
	}
	courtID, err := strconv.Atoi(strings.TrimSpace(draft.CourtID))
	if err != nil {
		return "", apperrors.NewValidationError("court_id", "Please select a court")
	}
	attendees, err := strconv.Atoi(strings.TrimSpace(draft.Attendees))
	if err != nil {
		return "", apperrors.NewValidationError("attendees", "Number of attendees must be a whole number")
	}

	req := entities.ReservationRequest{
		CourtID:   courtID,
		StartTime: utils.CombineDateTime(draft.Date, draft.StartTime),
		EndTime:   utils.CombineDateTime(draft.Date, draft.EndTime),
		Attendees: attendees,
	}
	created, err := s.backend.CreateReservation(ctx, token, req)
	if err != nil {
		return "", fmt.Errorf("create reservation: %w", err)
	}

	msg, err := s.payments.Confirm(created)
	if err != nil {
		return "", err
	}
	s.Reset()
	return msg, nil
}
