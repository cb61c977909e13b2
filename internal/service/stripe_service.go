package service

import (
	"context"
	"fmt"
	"math"

	"app/internal/config"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// PaymentIntentCreator requests a client-side charge handle from the
// payment processor.
type PaymentIntentCreator interface {
	CreatePaymentIntent(ctx context.Context, price float64) (string, error)
}

// StripeService wraps the Stripe PaymentIntents API.
type StripeService struct {
	logger zerolog.Logger
}

// NewStripeService sets the Stripe key and returns the service with a
// scoped logger.
func NewStripeService(cfg *config.Config, logger zerolog.Logger) *StripeService {
	stripe.Key = cfg.StripeSecretKey
	lg := logger.With().Str("service", "StripeService").Logger()
	return &StripeService{logger: lg}
}

// CreatePaymentIntent creates a card PaymentIntent for the given price in
// USD and returns its client secret. Stripe takes amounts in minor units.
func (s *StripeService) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	amount := int64(math.Round(price * 100))
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	pi, err := paymentintent.New(params)
	if err != nil {
		s.logger.Error().Err(err).Int64("amount", amount).Msg("Failed to create payment intent")
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
