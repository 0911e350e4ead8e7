package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"willspark/internal/entities"
	apperrors "willspark/internal/errors"
	"willspark/internal/repository"
)

// SessionListener is notified after every login, logout or invalidation.
type SessionListener func(entities.Session)

type SessionService struct {
	backend *repository.BackendRepository
	store   repository.LocalStore
	now     func() time.Time

	mu        sync.RWMutex
	session   entities.Session
	listeners []SessionListener
}

func NewSessionService(backend *repository.BackendRepository, store repository.LocalStore) *SessionService {
	return &SessionService{backend: backend, store: store, now: time.Now}
}

func (s *SessionService) OnChange(fn SessionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Restore picks up a token left in the local store by a previous run. The
// token is kept only if it has not expired and the backend still accepts it.
// The profile is not reconstructed; a login is still needed for role routing.
func (s *SessionService) Restore(ctx context.Context) error {
	token, ok, err := s.store.Get(ctx, repository.TokenKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok || token == "" {
		return nil
	}

	if tokenExpired(token, s.now()) {
		log.Printf("session: stored token has expired, clearing it")
		return s.clear(ctx)
	}

	if _, err := s.backend.Courts(ctx, token); err != nil {
		log.Printf("session: stored token rejected by backend: %v", err)
		return s.clear(ctx)
	}

	s.set(entities.Session{Token: token})
	log.Printf("session: restored stored token")
	return nil
}

func (s *SessionService) Login(ctx context.Context, username, password string) (*entities.UserProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username", "Username and password are required")
	}

	resp, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, repository.TokenKey, resp.Token); err != nil {
		return nil, fmt.Errorf("login: persist token: %w", err)
	}

	user := resp.User
	s.set(entities.Session{User: &user, Token: resp.Token})
	log.Printf("session: %s logged in (staff=%t)", user.Username, user.IsStaff)
	return &user, nil
}

// Logout forgets the session locally. Bearer tokens are stateless, so the
// backend is not told.
func (s *SessionService) Logout(ctx context.Context) error {
	return s.clear(ctx)
}

// Invalidate drops a session the backend no longer accepts.
func (s *SessionService) Invalidate(ctx context.Context, reason error) error {
	log.Printf("session: invalidated: %v", reason)
	return s.clear(ctx)
}

func (s *SessionService) Current() entities.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cur := s.session
	if cur.User != nil {
		u := *cur.User
		cur.User = &u
	}
	return cur
}

func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

func (s *SessionService) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Authenticated()
}

func (s *SessionService) clear(ctx context.Context) error {
	s.set(entities.Session{})
	if err := s.store.Remove(ctx, repository.TokenKey); err != nil {
		return fmt.Errorf("clear stored token: %w", err)
	}
	return nil
}

func (s *SessionService) set(next entities.Session) {
	s.mu.Lock()
	s.session = next
	listeners := append([]SessionListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(s.Current())
	}
}

// tokenExpired inspects the exp claim without verifying the signature; the
// backend remains the authority. Opaque tokens are never considered expired.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
