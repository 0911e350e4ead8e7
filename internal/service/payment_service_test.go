package service

import (
	"errors"
	"testing"

	"github.com/stripe/stripe-go/v82"

	"willspark/internal/entities"
	apperrors "willspark/internal/errors"
)

type stubIntents struct {
	status stripe.PaymentIntentStatus
	err    error
	calls  int
}

func (s *stubIntents) PaymentIntentStatus(string) (stripe.PaymentIntentStatus, error) {
	s.calls++
	return s.status, s.err
}

func TestPaymentConfirm(t *testing.T) {
	const ok = "Reservation created successfully! Total cost: $12.00"
	tests := []struct {
		name      string
		secret    string
		intents   *stubIntents
		wantMsg   string
		wantErr   bool
		wantCalls int
	}{
		{"no client secret", "", &stubIntents{}, "", true, 0},
		{"demo secret is accepted", "demo_secret_abc", &stubIntents{}, ok, false, 0},
		{"succeeded intent", "pi_1_secret_x", &stubIntents{status: stripe.PaymentIntentStatusSucceeded}, ok, false, 1},
		{"processing intent", "pi_1_secret_x", &stubIntents{status: stripe.PaymentIntentStatusProcessing}, ok, false, 1},
		{"requires payment method", "pi_1_secret_x", &stubIntents{status: stripe.PaymentIntentStatusRequiresPaymentMethod}, "", true, 1},
		{"lookup failure keeps server result", "pi_1_secret_x", &stubIntents{err: errors.New("timeout")}, ok, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPaymentService(tt.intents)
			msg, err := s.Confirm(&entities.ReservationCreated{ReservationID: "r1", ClientSecret: tt.secret, TotalCost: 12})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Confirm() error = %v, wantErr %v", err, tt.wantErr)
			}
			if msg != tt.wantMsg {
				t.Errorf("Confirm() = %q, want %q", msg, tt.wantMsg)
			}
			if tt.intents.calls != tt.wantCalls {
				t.Errorf("status lookups = %d, want %d", tt.intents.calls, tt.wantCalls)
			}
		})
	}
}

func TestPaymentConfirmWithoutStripe(t *testing.T) {
	s := NewPaymentService(nil)
	msg, err := s.Confirm(&entities.ReservationCreated{ClientSecret: "pi_1_secret_x", TotalCost: 7.5})
	if err != nil || msg != "Reservation created successfully! Total cost: $7.50" {
		t.Errorf("Confirm() = %q, %v", msg, err)
	}
	_, err = s.Confirm(nil)
	if apperrors.UserMessage(err, "") != msgNoClientSecret {
		t.Errorf("Confirm(nil) error = %v", err)
	}
}
