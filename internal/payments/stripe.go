package payments

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
)

// Client is a thin wrapper around stripe-go for the trip checkout
// hold/capture/cancel flow.
type Client struct{}

// NewClient initializes the stripe client with the given API key.
func NewClient(apiKey string) *Client {
	stripe.Key = apiKey
	return &Client{}
}

// HoldTripPayment creates a PaymentIntent with capture_method=manual to hold
// funds for a trip purchase. Amounts are Chilean pesos, a zero-decimal
// currency in Stripe, so amountCLP is the full price with no cent scaling.
// It returns the PaymentIntent ID on success.
func (c *Client) HoldTripPayment(ctx context.Context, amountCLP int64, description string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCLP),
		Currency: stripe.String("clp"),
	}
	if description != "" {
		params.Description = stripe.String(description)
	}
	params.CaptureMethod = stripe.String(string(stripe.PaymentIntentCaptureMethodManual))
	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ID, nil
}

// Capture finalizes a previously-held PaymentIntent.
func (c *Client) Capture(ctx context.Context, paymentIntentID string) error {
	_, err := paymentintent.Capture(paymentIntentID, nil)
	return err
}

// Cancel releases the hold on a PaymentIntent.
func (c *Client) Cancel(ctx context.Context, paymentIntentID string) error {
	_, err := paymentintent.Cancel(paymentIntentID, nil)
	return err
}
