package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mobishop/mobishop-backend/pkg/db/models"
	"github.com/mobishop/mobishop-backend/pkg/enums"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dashboardListSize = 5

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order placement, lookup and status changes.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, filters ListFilters) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*OrderDTO, error)
	Cancel(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	Stats(ctx context.Context) (*StatsDTO, error)
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	Repo     Repository
	Tx       txRunner
	Products ProductStats
	Users    UserCounter
	Now      func() time.Time
}

type service struct {
	repo     Repository
	tx       txRunner
	products ProductStats
	users    UserCounter
	now      func() time.Time
}

// NewService builds the orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product stats required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user counter required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		products: params.Products,
		users:    params.Users,
		now:      now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.UserEmail))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userEmail is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order has no items")
	}
	if strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Phone) == "" || strings.TrimSpace(input.Address) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fullName, phone and address are required")
	}
	if input.Shipping.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping must not be negative")
	}

	status := input.Status
	if status == "" {
		status = enums.OrderStatusPlaced
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").WithDetails(map[string]any{"status": status})
	}

	subtotal := decimal.Zero
	for i, item := range input.Items {
		if item.ProductID == uuid.Nil || item.Qty < 1 || item.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order item").WithDetails(map[string]any{"index": i})
		}
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	billing := strings.TrimSpace(input.BillingAddress)
	if billing == "" {
		billing = strings.TrimSpace(input.Address)
	}
	order := &models.Order{
		UserEmail:      email,
		Items:          input.Items,
		Subtotal:       subtotal,
		Shipping:       input.Shipping,
		Total:          subtotal.Add(input.Shipping),
		FullName:       strings.TrimSpace(input.FullName),
		Phone:          strings.TrimSpace(input.Phone),
		Address:        strings.TrimSpace(input.Address),
		BillingAddress: billing,
		Status:         status,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	dto := mapOrderDTO(*order)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "load order")
	}
	dto := mapOrderDTO(*order)
	return &dto, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]OrderDTO, error) {
	filters.UserEmail = strings.ToLower(strings.TrimSpace(filters.UserEmail))
	if filters.Status != "" && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return mapOrderDTOs(rows), nil
}

// UpdateStatus moves an order along its lifecycle. Delivered and canceled
// orders are final.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*OrderDTO, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").WithDetails(map[string]any{"status": input.Status})
	}
	return s.transition(ctx, id, input.Status)
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	return s.transition(ctx, id, enums.OrderStatusCanceled)
}

func (s *service) transition(ctx context.Context, id uuid.UUID, target enums.OrderStatus) (*OrderDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			return mapRepoError(err, "load order")
		}
		if order.Status == target {
			updated = order
			if target == enums.OrderStatusCanceled {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "order already canceled")
			}
			return nil
		}
		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order status is final").
				WithDetails(map[string]any{"current": order.Status, "requested": target})
		}

		extra := map[string]any{}
		if target == enums.OrderStatusCanceled {
			canceledAt := s.now().UTC()
			extra["canceled_at"] = canceledAt
			order.CanceledAt = &canceledAt
		}
		if err := repo.UpdateStatus(ctx, id, target, extra); err != nil {
			return mapRepoError(err, "update order status")
		}
		order.Status = target
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	dto := mapOrderDTO(*updated)
	return &dto, nil
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order totals")
	}
	recent, err := s.repo.Recent(ctx, dashboardListSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recent orders")
	}
	productCount, err := s.products.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	top, err := s.products.TopSelling(ctx, dashboardListSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "top products")
	}
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}

	topProducts := make([]TopProductDTO, 0, len(top))
	for _, p := range top {
		topProducts = append(topProducts, TopProductDTO{ID: p.ID, Title: p.Title, Image: p.Image, Price: p.Price, Sales: p.Sales})
	}
	return &StatsDTO{
		TotalRevenue:  totals.Revenue,
		TotalOrders:   totals.Orders,
		TotalUsers:    userCount,
		TotalProducts: productCount,
		RecentOrders:  mapOrderDTOs(recent),
		TopProducts:   topProducts,
	}, nil
}

func mapRepoError(err error, action string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
