package enums

import "fmt"

// OrderStatus is the shopper-visible order lifecycle label.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "Sipariş alındı"
	OrderStatusPreparing OrderStatus = "Sipariş hazırlanıyor"
	OrderStatusShipped   OrderStatus = "Kargoya verildi"
	OrderStatusDelivered OrderStatus = "Teslim edildi"
	OrderStatusCanceled  OrderStatus = "İptal edildi"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusPreparing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCanceled || s == OrderStatusDelivered
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
