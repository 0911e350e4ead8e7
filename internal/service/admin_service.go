package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"willspark/internal/entities"
	apperrors "willspark/internal/errors"
	"willspark/internal/repository"
)

// AdminService backs the staff dashboard. The dashboard is fetched once when
// the staff screen is entered and reused by its tabs until a write invalidates it.
type AdminService struct {
	backend *repository.BackendRepository
	sms     SMSSender
	smsTo   []string

	mu        sync.Mutex
	dashboard *entities.AdminDashboard
}

// NewAdminService accepts a nil sms sender; broadcasts then stay in-app only.
func NewAdminService(backend *repository.BackendRepository, sms SMSSender, smsTo []string) *AdminService {
	return &AdminService{backend: backend, sms: sms, smsTo: smsTo}
}

// Load fetches reservations, users and analytics concurrently. A failed part
// is left empty and reported in the joined error; the rest is still returned.
// Only a complete dashboard is kept for later visits.
func (s *AdminService) Load(ctx context.Context, token string) (entities.AdminDashboard, error) {
	var wg sync.WaitGroup
	var d entities.AdminDashboard
	var resErr, usersErr, analyticsErr error
	wg.Add(3)
	go func() {
		defer wg.Done()
		d.Reservations, resErr = s.backend.AdminReservations(ctx, token)
	}()
	go func() {
		defer wg.Done()
		d.Users, usersErr = s.backend.AdminUsers(ctx, token)
	}()
	go func() {
		defer wg.Done()
		a, err := s.backend.AdminAnalytics(ctx, token)
		if err != nil {
			analyticsErr = err
			return
		}
		d.Analytics = *a
	}()
	wg.Wait()

	if resErr != nil {
		d.Reservations = nil
		log.Printf("admin: loading reservations failed: %v", resErr)
	}
	if usersErr != nil {
		d.Users = nil
		log.Printf("admin: loading users failed: %v", usersErr)
	}
	if analyticsErr != nil {
		log.Printf("admin: loading analytics failed: %v", analyticsErr)
	}

	err := errors.Join(resErr, usersErr, analyticsErr)
	if err == nil {
		s.mu.Lock()
		s.dashboard = &d
		s.mu.Unlock()
	}
	return d, err
}

// Dashboard returns the loaded dashboard, loading it when none is kept.
func (s *AdminService) Dashboard(ctx context.Context, token string) (entities.AdminDashboard, error) {
	s.mu.Lock()
	cached := s.dashboard
	s.mu.Unlock()
	if cached != nil {
		return *cached, nil
	}
	return s.Load(ctx, token)
}

// Invalidate drops the loaded dashboard so the next visit refetches it.
func (s *AdminService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboard = nil
}

// SetUserAttribute changes one membership flag of a user and reloads the dashboard.
func (s *AdminService) SetUserAttribute(ctx context.Context, token, userID, field string, value bool) (entities.AdminDashboard, error) {
	update := entities.UserAttributeUpdate{Field: field, Value: value}
	if !update.Valid() {
		return entities.AdminDashboard{}, apperrors.NewValidationError("field", fmt.Sprintf("Unknown user attribute %q", field))
	}
	if userID == "" {
		return entities.AdminDashboard{}, apperrors.NewValidationError("user", "No user selected")
	}
	if _, err := s.backend.UpdateUser(ctx, token, userID, update); err != nil {
		return entities.AdminDashboard{}, fmt.Errorf("update user %s: %w", userID, err)
	}
	d, err := s.Load(ctx, token)
	if err != nil {
		log.Printf("admin: reload after user update: %v", err)
	}
	return d, nil
}

// Broadcast posts a system notification to every member. When SMS recipients
// are configured the message is mirrored to them; SMS failures are only logged.
func (s *AdminService) Broadcast(ctx context.Context, token, message string) (*entities.BroadcastResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError("message", "Notification message cannot be empty")
	}
	resp, err := s.backend.BroadcastNotification(ctx, token, message)
	if err != nil {
		return nil, fmt.Errorf("broadcast notification: %w", err)
	}

	if s.sms != nil {
		for _, to := range s.smsTo {
			if err := s.sms.SendSMS(ctx, to, "Wills Park Tennis: "+message); err != nil {
				log.Printf("admin: SMS mirror to %s failed: %v", to, err)
			}
		}
	}
	return resp, nil
}

// Courts lists every court, including those under maintenance.
func (s *AdminService) Courts(ctx context.Context, token string) ([]entities.Court, error) {
	courts, err := s.backend.Courts(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load courts: %w", err)
	}
	return courts, nil
}

// ToggleCourt flips a court between available and under maintenance.
func (s *AdminService) ToggleCourt(ctx context.Context, token string, courtID int) (string, error) {
	resp, err := s.backend.ToggleCourtMaintenance(ctx, token, courtID)
	if err != nil {
		return "", fmt.Errorf("toggle court %d: %w", courtID, err)
	}
	return resp.Message, nil
}
