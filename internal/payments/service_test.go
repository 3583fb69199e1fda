package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
)

type stubStripe struct {
	params *stripe.PaymentIntentParams
	err    error
}

func (s *stubStripe) CreatePaymentIntent(_ context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	s.params = params
	if s.err != nil {
		return nil, s.err
	}
	return &stripe.PaymentIntent{ClientSecret: "pi_123_secret_456"}, nil
}

func (s *stubStripe) DefaultCurrency() string { return "try" }

func TestToMinorUnits(t *testing.T) {
	cases := map[string]int64{
		"379.99": 37999,
		"0.009":  1,
		"0":      1,
		"12.345": 1234,
	}
	for in, want := range cases {
		if got := ToMinorUnits(decimal.RequireFromString(in)); got != want {
			t.Fatalf("ToMinorUnits(%s) = %d, want %d", in, got, want)
		}
	}
}

func TestCreateIntentDefaultsCurrency(t *testing.T) {
	stub := &stubStripe{}
	svc, err := NewService(stub)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	out, err := svc.CreateIntent(context.Background(), CreateIntentInput{
		Amount:   decimal.RequireFromString("150.50"),
		Metadata: map[string]string{"orderId": "abc"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ClientSecret != "pi_123_secret_456" {
		t.Fatalf("unexpected client secret %q", out.ClientSecret)
	}
	if *stub.params.Amount != 15050 || *stub.params.Currency != "try" {
		t.Fatalf("unexpected params amount=%d currency=%s", *stub.params.Amount, *stub.params.Currency)
	}
	if !*stub.params.AutomaticPaymentMethods.Enabled {
		t.Fatalf("expected automatic payment methods")
	}
}

func TestCreateIntentFailureIsPaymentError(t *testing.T) {
	svc, _ := NewService(&stubStripe{err: errors.New("card_declined")})

	_, err := svc.CreateIntent(context.Background(), CreateIntentInput{Amount: decimal.NewFromInt(10), Currency: "USD"})
	if !pkgerrors.IsCode(err, pkgerrors.CodePayment) {
		t.Fatalf("expected payment error, got %v", err)
	}
}
