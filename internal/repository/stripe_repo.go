package repository

import (
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripeRepository reads PaymentIntents with a publishable key and the
// intent's client secret. It never creates, confirms or sees card data.
type StripeRepository struct {
	client paymentintent.Client
}

func NewStripeRepository(publishableKey string, backend stripe.Backend) *StripeRepository {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &StripeRepository{client: paymentintent.Client{B: backend, Key: publishableKey}}
}

// IsPaymentIntentSecret reports whether secret has the pi_<id>_secret_<x> shape.
func IsPaymentIntentSecret(secret string) bool {
	return strings.HasPrefix(secret, "pi_") && strings.Contains(secret, "_secret_")
}

// PaymentIntentID extracts the intent ID from its client secret.
func PaymentIntentID(secret string) string {
	id, _, _ := strings.Cut(secret, "_secret_")
	return id
}

// PaymentIntentStatus retrieves the current status of the intent owning secret.
func (r *StripeRepository) PaymentIntentStatus(secret string) (stripe.PaymentIntentStatus, error) {
	if !IsPaymentIntentSecret(secret) {
		return "", fmt.Errorf("not a PaymentIntent client secret")
	}
	params := &stripe.PaymentIntentParams{ClientSecret: stripe.String(secret)}
	pi, err := r.client.Get(PaymentIntentID(secret), params)
	if err != nil {
		return "", fmt.Errorf("retrieve PaymentIntent: %w", err)
	}
	return pi.Status, nil
}
