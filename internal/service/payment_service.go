package service

import (
	"fmt"
	"log"

	"github.com/stripe/stripe-go/v82"

	"willspark/internal/entities"
	apperrors "willspark/internal/errors"
	"willspark/internal/repository"
)

const msgNoClientSecret = "Payment processing failed - no client secret received"

// IntentStatusReader looks up the status of a PaymentIntent by its client secret.
type IntentStatusReader interface {
	PaymentIntentStatus(secret string) (stripe.PaymentIntentStatus, error)
}

// PaymentService checks the payment the backend attached to a new reservation.
// Card details are never collected here; confirmation happens server-side.
type PaymentService struct {
	intents IntentStatusReader
}

// NewPaymentService accepts a nil reader, in which case every reservation the
// backend returns a client secret for is accepted as-is.
func NewPaymentService(intents IntentStatusReader) *PaymentService {
	return &PaymentService{intents: intents}
}

// Confirm returns the success message for created, or an error the user
// should see when the payment did not go through.
func (s *PaymentService) Confirm(created *entities.ReservationCreated) (string, error) {
	if created == nil || created.ClientSecret == "" {
		return "", apperrors.NewValidationError("payment", msgNoClientSecret)
	}
	success := fmt.Sprintf("Reservation created successfully! Total cost: $%.2f", created.TotalCost)

	if s.intents == nil || !repository.IsPaymentIntentSecret(created.ClientSecret) {
		return success, nil
	}

	status, err := s.intents.PaymentIntentStatus(created.ClientSecret)
	if err != nil {
		log.Printf("payment: could not verify reservation %s: %v", created.ReservationID, err)
		return success, nil
	}
	switch status {
	case stripe.PaymentIntentStatusSucceeded,
		stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusRequiresCapture:
		return success, nil
	}
	log.Printf("payment: reservation %s has PaymentIntent status %s", created.ReservationID, status)
	return "", apperrors.NewValidationError("payment", fmt.Sprintf("Payment failed (status: %s). Please try again.", status))
}
