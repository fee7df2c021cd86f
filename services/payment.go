package services

import (
	"os"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// IntentStatusSucceeded is the only gateway status that authorizes checkout.
const IntentStatusSucceeded = "succeeded"

// PaymentIntentRef identifies a gateway-side payment attempt. The client
// secret is handed to the browser opaquely; the ID is what the server keeps.
type PaymentIntentRef struct {
	ID           string
	ClientSecret string
}

// PaymentGateway is the payment processor seen by the checkout engine.
// Amounts are always in minor currency units.
type PaymentGateway interface {
	CreateIntent(amountMinorUnits int64, currency string, metadata map[string]string) (*PaymentIntentRef, error)
	GetIntentStatus(id string) (string, error)
}

type stripeGateway struct{}

// NewStripeGateway configures the Stripe SDK from STRIPE_SECRET_KEY and
// returns the production PaymentGateway.
func NewStripeGateway() PaymentGateway {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &stripeGateway{}
}

func (g *stripeGateway) CreateIntent(amountMinorUnits int64, currency string, metadata map[string]string) (*PaymentIntentRef, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(currency),
	}
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}

	return &PaymentIntentRef{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (g *stripeGateway) GetIntentStatus(id string) (string, error) {
	intent, err := paymentintent.Get(id, nil)
	if err != nil {
		return "", err
	}
	return string(intent.Status), nil
}
