package service

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"willspark/internal/entities"
	apperrors "willspark/internal/errors"
	"willspark/internal/repository"
)

const DefaultPollSchedule = "@every 30s"

// NotificationPoller keeps the unread notifications of a logged-in member
// fresh. Staff sessions are never polled.
type NotificationPoller struct {
	backend  *repository.BackendRepository
	session  *SessionService
	schedule string
	timeout  time.Duration

	mu        sync.Mutex
	cron      *cron.Cron
	gen       uint64
	unread    []entities.Notification
	dismissed map[string]struct{}
}

func NewNotificationPoller(backend *repository.BackendRepository, session *SessionService, schedule string) *NotificationPoller {
	if schedule == "" {
		schedule = DefaultPollSchedule
	}
	return &NotificationPoller{backend: backend, session: session, schedule: schedule, timeout: 10 * time.Second}
}

// HandleSessionChange restarts polling for member sessions and stops it otherwise.
func (p *NotificationPoller) HandleSessionChange(sess entities.Session) {
	p.Stop()
	if sess.Authenticated() && !sess.User.IsStaff {
		if err := p.Start(); err != nil {
			log.Printf("notifications: %v", err)
		}
	}
}

// Start fetches once right away, then on every tick of the schedule.
func (p *NotificationPoller) Start() error {
	p.mu.Lock()
	if p.cron != nil {
		p.mu.Unlock()
		return nil
	}
	p.gen++
	gen := p.gen
	c := cron.New()
	if _, err := c.AddFunc(p.schedule, func() { p.poll(gen) }); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("invalid poll schedule %q: %w", p.schedule, err)
	}
	p.cron = c
	c.Start()
	p.mu.Unlock()

	log.Printf("notifications: polling %s", p.schedule)
	p.poll(gen)
	return nil
}

// Stop halts polling and forgets the unread set. It does not wait for an
// in-flight fetch; that fetch's result is discarded.
func (p *NotificationPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.unread = nil
	p.dismissed = nil
	if p.cron != nil {
		p.cron.Stop()
		p.cron = nil
		log.Printf("notifications: polling stopped")
	}
}

func (p *NotificationPoller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cron != nil
}

func (p *NotificationPoller) poll(gen uint64) {
	token := p.session.Token()
	if token == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	items, err := p.backend.Notifications(ctx, token)
	if err != nil {
		log.Printf("notifications: fetch failed: %v", err)
		if apperrors.IsUnauthorized(err) {
			if err := p.session.Invalidate(ctx, err); err != nil {
				log.Printf("notifications: %v", err)
			}
		}
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return
	}
	// A fetch that started before a dismissal may still carry the dismissed
	// item. Ids stay hidden until the backend stops returning them.
	seen := make(map[string]struct{}, len(items))
	unread := make([]entities.Notification, 0, len(items))
	for _, n := range items {
		seen[n.ID] = struct{}{}
		if _, gone := p.dismissed[n.ID]; !gone {
			unread = append(unread, n)
		}
	}
	for id := range p.dismissed {
		if _, ok := seen[id]; !ok {
			delete(p.dismissed, id)
		}
	}
	p.unread = unread
}

func (p *NotificationPoller) Unread() []entities.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.unread)
}

// Dismiss removes id from the unread set immediately and then acknowledges it
// to the backend exactly once. A failed acknowledgement is logged, not undone.
func (p *NotificationPoller) Dismiss(ctx context.Context, id string) {
	p.mu.Lock()
	if p.dismissed == nil {
		p.dismissed = make(map[string]struct{})
	}
	p.dismissed[id] = struct{}{}
	p.unread = slices.DeleteFunc(p.unread, func(n entities.Notification) bool { return n.ID == id })
	p.mu.Unlock()

	if err := p.backend.MarkNotificationRead(ctx, p.session.Token(), id); err != nil {
		log.Printf("notifications: acknowledging %s failed: %v", id, err)
	}
}
