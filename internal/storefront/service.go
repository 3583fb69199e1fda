package storefront

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mobishop/mobishop-backend/internal/cart"
	"github.com/mobishop/mobishop-backend/internal/cartsync"
	"github.com/mobishop/mobishop-backend/internal/orders"
	productsvc "github.com/mobishop/mobishop-backend/internal/products"
	"github.com/mobishop/mobishop-backend/internal/users"
	"github.com/mobishop/mobishop-backend/internal/wishlist"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"github.com/mobishop/mobishop-backend/pkg/enums"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"github.com/mobishop/mobishop-backend/pkg/logger"
)

const (
	opSalesBump      = "sales_bump"
	opWishlistToggle = "wishlist_toggle"
)

// DataAPI is the subset of the data API the storefront flows call.
type DataAPI interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*productsvc.ProductDTO, error)
	CreateUser(ctx context.Context, input users.CreateUserInput) (*users.UserDTO, error)
	Authenticate(ctx context.Context, input users.AuthenticateInput) (*users.UserDTO, error)
	CreateOrder(ctx context.Context, input orders.CreateOrderInput) (*orders.OrderDTO, error)
	BumpSales(ctx context.Context, productID uuid.UUID, delta int) error
	ListWishlist(ctx context.Context, email string) ([]wishlist.ItemDTO, error)
	AddWishlist(ctx context.Context, input wishlist.CreateItemInput) (*wishlist.ItemDTO, error)
	RemoveWishlist(ctx context.Context, id uuid.UUID) error
}

type observer interface {
	Observe(op string, duration time.Duration, err error)
}

// Service runs the storefront's account, wishlist and checkout flows.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*users.UserDTO, error)
	Login(ctx context.Context, input LoginInput) (*users.UserDTO, error)
	Snapshot(ctx context.Context, productID uuid.UUID) (cart.ProductSnapshot, error)
	Quote(c cart.Cart) Quote
	Checkout(ctx context.Context, session *cartsync.Session, email string, input CheckoutInput) (*CheckoutResult, error)
	ToggleWishlist(ctx context.Context, email string, input ToggleWishlistInput) (*ToggleResult, error)
}

type ServiceParams struct {
	API                   DataAPI
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	Logger                *logger.Logger
	Observer              observer
}

type service struct {
	api       DataAPI
	threshold decimal.Decimal
	fee       decimal.Decimal
	logg      *logger.Logger
	observer  observer
}

func NewService(params ServiceParams) (Service, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "data api client required")
	}
	return &service{
		api:       params.API,
		threshold: params.FreeShippingThreshold,
		fee:       params.ShippingFee,
		logg:      params.Logger,
		observer:  params.Observer,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*users.UserDTO, error) {
	return s.api.CreateUser(ctx, users.CreateUserInput{
		Email:    normalizeEmail(input.Email),
		Password: input.Password,
		Name:     strings.TrimSpace(input.Name),
		Phone:    input.Phone,
	})
}

func (s *service) Login(ctx context.Context, input LoginInput) (*users.UserDTO, error) {
	return s.api.Authenticate(ctx, users.AuthenticateInput{
		Email:    normalizeEmail(input.Email),
		Password: input.Password,
	})
}

// Snapshot reads the product from the data API so cart lines carry the
// catalog title and price rather than whatever the client sent.
func (s *service) Snapshot(ctx context.Context, productID uuid.UUID) (cart.ProductSnapshot, error) {
	if productID == uuid.Nil {
		return cart.ProductSnapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	p, err := s.api.GetProduct(ctx, productID)
	if err != nil {
		return cart.ProductSnapshot{}, err
	}
	if p == nil {
		return cart.ProductSnapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	image := p.Image
	if image == "" && len(p.Images) > 0 {
		image = p.Images[0]
	}
	return cart.ProductSnapshot{ID: p.ID, Title: p.Title, Price: p.Price, Image: image}, nil
}

// Quote prices a cart. Shipping is free at or above the threshold and for
// an empty cart.
func (s *service) Quote(c cart.Cart) Quote {
	subtotal := c.Total()
	shipping := s.fee
	if c.IsEmpty() || subtotal.GreaterThanOrEqual(s.threshold) {
		shipping = decimal.Zero
	}
	return Quote{Subtotal: subtotal, Shipping: shipping, Total: subtotal.Add(shipping)}
}

// Checkout places an order for the session cart, bumps product sales and
// removes the ordered lines from the cart. Only order placement can fail
// the request.
func (s *service) Checkout(ctx context.Context, session *cartsync.Session, email string, input CheckoutInput) (*CheckoutResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	snapshot := session.Cart()
	if snapshot.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	quote := s.Quote(snapshot)
	lines := snapshot.Lines()
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID: l.Product.ID,
			Title:     l.Product.Title,
			Image:     l.Product.Image,
			Qty:       l.Qty,
			Price:     l.Product.Price,
			Color:     l.Color,
			Size:      l.Size,
		})
	}

	order, err := s.api.CreateOrder(ctx, orders.CreateOrderInput{
		UserEmail:      email,
		Items:          items,
		Shipping:       quote.Shipping,
		FullName:       strings.TrimSpace(input.FullName),
		Phone:          strings.TrimSpace(input.Phone),
		Address:        strings.TrimSpace(input.Address),
		BillingAddress: strings.TrimSpace(input.BillingAddress),
		Status:         enums.OrderStatusPlaced,
	})
	if err != nil {
		return nil, err
	}

	for _, l := range lines {
		start := time.Now()
		bumpErr := s.api.BumpSales(ctx, l.Product.ID, l.Qty)
		s.observe(opSalesBump, start, bumpErr)
		if bumpErr != nil {
			s.warn(ctx, "checkout.sales_bump_failed", bumpErr)
		}
	}

	var remaining cart.Cart
	for _, l := range lines {
		res := session.Remove(ctx, l.Product.ID, cart.Options{Color: l.Color, Size: l.Size})
		if !res.OK() {
			s.warn(ctx, "checkout.cart_drain_sync_failed", res.Err)
		}
		remaining = res.Cart
	}

	return &CheckoutResult{Order: order, Cart: remaining}, nil
}

// ToggleWishlist saves the product, or removes it when already saved.
func (s *service) ToggleWishlist(ctx context.Context, email string, input ToggleWishlistInput) (*ToggleResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId is required")
	}

	start := time.Now()
	result, err := s.toggle(ctx, email, input)
	s.observe(opWishlistToggle, start, err)
	return result, err
}

func (s *service) toggle(ctx context.Context, email string, input ToggleWishlistInput) (*ToggleResult, error) {
	saved, err := s.api.ListWishlist(ctx, email)
	if err != nil {
		return nil, err
	}
	for _, item := range saved {
		if item.ProductID == input.ProductID {
			if err := s.api.RemoveWishlist(ctx, item.ID); err != nil {
				return nil, err
			}
			return &ToggleResult{ProductID: input.ProductID, Saved: false}, nil
		}
	}
	if _, err := s.api.AddWishlist(ctx, wishlist.CreateItemInput{
		UserEmail:  email,
		ProductID:  input.ProductID,
		Title:      input.Title,
		SavedPrice: input.Price,
		Image:      input.Image,
	}); err != nil {
		return nil, err
	}
	return &ToggleResult{ProductID: input.ProductID, Saved: true}, nil
}

func (s *service) observe(op string, start time.Time, err error) {
	if s.observer != nil {
		s.observer.Observe(op, time.Since(start), err)
	}
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.WarnErr(ctx, msg, err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
