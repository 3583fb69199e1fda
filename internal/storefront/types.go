package storefront

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mobishop/mobishop-backend/internal/cart"
	"github.com/mobishop/mobishop-backend/internal/orders"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
)

type RegisterInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6,max=128"`
	Name     string  `json:"name" validate:"max=120"`
	Phone    *string `json:"phone,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

type CheckoutInput struct {
	FullName       string `json:"fullName"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	BillingAddress string `json:"billingAddress,omitempty"`
}

func (in CheckoutInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.FullName) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(in.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "fullName, phone and address are required").
		WithDetails(map[string]any{"missing": missing})
}

type CheckoutResult struct {
	Order *orders.OrderDTO `json:"order"`
	Cart  cart.Cart        `json:"cart"`
}

type ToggleWishlistInput struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
}

type ToggleResult struct {
	ProductID uuid.UUID `json:"productId"`
	Saved     bool      `json:"saved"`
}
