package payments

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
)

var minorUnits = decimal.NewFromInt(100)

// Service creates card payment intents for checkout.
type Service interface {
	CreateIntent(ctx context.Context, input CreateIntentInput) (*IntentDTO, error)
}

// CreateIntentInput carries the amount in major units (e.g. lira).
type CreateIntentInput struct {
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type IntentDTO struct {
	ClientSecret string `json:"clientSecret"`
}

type intentCreator interface {
	CreatePaymentIntent(ctx context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	DefaultCurrency() string
}

type service struct {
	stripe intentCreator
}

func NewService(client intentCreator) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stripe client required")
	}
	return &service{stripe: client}, nil
}

func (s *service) CreateIntent(ctx context.Context, input CreateIntentInput) (*IntentDTO, error) {
	if input.Amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
	}
	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = s.stripe.DefaultCurrency()
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(ToMinorUnits(input.Amount)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range input.Metadata {
		params.AddMetadata(k, v)
	}

	intent, err := s.stripe.CreatePaymentIntent(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePayment, err, "payment_intent_failed")
	}
	return &IntentDTO{ClientSecret: intent.ClientSecret}, nil
}

// ToMinorUnits converts a major-unit amount to kuruş/cents, never below 1.
func ToMinorUnits(amount decimal.Decimal) int64 {
	minor := amount.Mul(minorUnits).Floor().IntPart()
	if minor < 1 {
		return 1
	}
	return minor
}
