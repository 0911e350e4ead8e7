package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"

	"willspark/internal/api"
	"willspark/internal/auth"
	"willspark/internal/config"
	"willspark/internal/db"
	"willspark/internal/repository"
	"willspark/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, closeStore, err := openLocalStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer closeStore()

	opts := service.Options{
		Backend:      repository.NewBackendRepository(cfg.BackendURL, cfg.HTTPTimeout),
		Store:        store,
		SMSTo:        cfg.BroadcastSMSTo,
		PollSchedule: cfg.PollSchedule,
		FlashTTL:     cfg.FlashTTL,
	}
	if cfg.StripePublishableKey != "" {
		opts.Intents = repository.NewStripeRepository(cfg.StripePublishableKey, nil)
	} else {
		log.Printf("STRIPE_PUBLISHABLE_KEY not set, payment status will not be checked")
	}
	if cfg.SendGridEnabled() {
		opts.Email = service.NewSendGridSender(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName)
	}
	if cfg.TwilioEnabled() {
		opts.SMS = service.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	}

	app := service.NewApp(opts)
	defer app.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	if err := app.Session.Restore(ctx); err != nil {
		log.Printf("Saved session not restored: %v", err)
	}
	cancel()

	views, err := api.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	r := api.NewRouter(app, views)

	csrfKey := []byte(cfg.CSRFKey)
	if len(csrfKey) == 0 {
		csrfKey = make([]byte, 32)
		if _, err := rand.Read(csrfKey); err != nil {
			log.Fatalf("Failed to generate CSRF key: %v", err)
		}
	}
	var h http.Handler = auth.CSRF(csrfKey, []string{cfg.ListenAddr})(r)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	h = handlers.LoggingHandler(os.Stdout, h)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on http://%s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Printf("Shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// openLocalStore picks Redis when REDIS_ADDR is set and reachable, else the
// SQL database at LOCAL_STORE_URL. A configured secret seals values at rest.
func openLocalStore(cfg config.Config) (repository.LocalStore, func(), error) {
	var store repository.LocalStore
	var closeFn func()

	if client := repository.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); client != nil {
		log.Printf("Local store ready (redis %s)", cfg.RedisAddr)
		store = repository.NewRedisLocalStore(client)
		closeFn = func() { client.Close() }
	} else {
		if cfg.RedisAddr != "" {
			log.Printf("Redis at %s unreachable, falling back to %s", cfg.RedisAddr, cfg.LocalStoreURL)
		}
		conn, dialect, err := db.Open(cfg.LocalStoreURL)
		if err != nil {
			return nil, nil, err
		}
		store = repository.NewSQLLocalStore(conn, dialect)
		closeFn = func() { conn.Close() }
	}

	if cfg.LocalStoreSecret != "" {
		store = repository.NewSealedStore(store, cfg.LocalStoreSecret)
	}
	return store, closeFn, nil
}
