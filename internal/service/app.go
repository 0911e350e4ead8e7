package service

import (
	"context"
	"log"
	"time"

	"willspark/internal/entities"
	apperrors "willspark/internal/errors"
	"willspark/internal/repository"
)

type Options struct {
	Backend      *repository.BackendRepository
	Store        repository.LocalStore
	Intents      IntentStatusReader
	Email        EmailSender
	SMS          SMSSender
	SMSTo        []string
	PollSchedule string
	FlashTTL     time.Duration
}

// App is the single owner of client state. Each part is written only through
// its own service; handlers share the App by reference.
type App struct {
	Session *SessionService
	Booking *BookingService
	Views   *ViewService
	Poller  *NotificationPoller
	Admin   *AdminService
	Exports *ExportService
	Flash   *Flash
}

func NewApp(opts Options) *App {
	session := NewSessionService(opts.Backend, opts.Store)
	a := &App{
		Session: session,
		Booking: NewBookingService(opts.Backend, NewPaymentService(opts.Intents)),
		Views:   NewViewService(opts.Backend),
		Poller:  NewNotificationPoller(opts.Backend, session, opts.PollSchedule),
		Admin:   NewAdminService(opts.Backend, opts.SMS, opts.SMSTo),
		Exports: NewExportService(opts.Email),
		Flash:   NewFlash(opts.FlashTTL),
	}
	session.OnChange(func(entities.Session) {
		a.Views.Clear()
		a.Admin.Invalidate()
		a.Booking.Reset()
	})
	session.OnChange(a.Poller.HandleSessionChange)
	return a
}

// Screen is the top-level screen for the current session.
func (a *App) Screen() string {
	return ScreenFor(a.Session.Current())
}

// Login authenticates and returns the landing screen.
func (a *App) Login(ctx context.Context, username, password string) (string, error) {
	user, err := a.Session.Login(ctx, username, password)
	if err != nil {
		return ScreenLogin, err
	}
	if user.IsStaff {
		return ScreenAdmin, nil
	}
	return ScreenDashboard, nil
}

func (a *App) Logout(ctx context.Context) error {
	a.Flash.Clear()
	return a.Session.Logout(ctx)
}

// Check invalidates the session when err says the backend rejected the token.
func (a *App) Check(ctx context.Context, err error) error {
	if err != nil && apperrors.IsUnauthorized(err) {
		if clearErr := a.Session.Invalidate(ctx, err); clearErr != nil {
			log.Printf("app: %v", clearErr)
		}
	}
	return err
}

// SubmitBooking submits draft and refreshes the member's reservations on success.
func (a *App) SubmitBooking(ctx context.Context, draft entities.BookingDraft) (string, error) {
	a.Booking.Replace(draft)
	token := a.Session.Token()
	msg, err := a.Booking.Submit(ctx, token, draft)
	if err != nil {
		return "", a.Check(ctx, err)
	}
	if _, err := a.Views.RefreshReservations(ctx, token); err != nil {
		log.Printf("app: refresh after booking: %v", err)
	}
	return msg, nil
}

// Export builds a staff report from the loaded dashboard.
func (a *App) Export(ctx context.Context, kind string) (*entities.ExportFile, error) {
	token := a.Session.Token()
	d, err := a.Admin.Dashboard(ctx, token)
	if apperrors.IsUnauthorized(err) {
		return nil, a.Check(ctx, err)
	}
	if err != nil {
		log.Printf("app: export %s with partial data: %v", kind, err)
	}
	var courts []entities.Court
	if NeedsCourts(kind) {
		if courts, err = a.Admin.Courts(ctx, token); err != nil {
			return nil, a.Check(ctx, err)
		}
	}
	return a.Exports.Build(kind, d, courts)
}

func (a *App) EmailExport(ctx context.Context, kind, to string) error {
	f, err := a.Export(ctx, kind)
	if err != nil {
		return err
	}
	return a.Exports.EmailReport(ctx, to, f)
}

// Shutdown stops background polling.
func (a *App) Shutdown() {
	a.Poller.Stop()
}
