package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Legacy vocabulary still sent by older admin screens.
var orderStatusAliases = map[string]OrderStatus{
	"processing": OrderStatusPaid,
	"completed":  OrderStatusDelivered,
}

func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusPaid,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ParseOrderStatus normalizes ingress values to the canonical five states.
func ParseOrderStatus(s string) (OrderStatus, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := orderStatusAliases[v]; ok {
		return alias, nil
	}
	status := OrderStatus(v)
	if !status.Valid() {
		return "", fmt.Errorf("invalid order status %q", s)
	}
	return status, nil
}

type Order struct {
	BaseNoDelete
	UserID uuid.UUID   `db:"user_id"`
	Status OrderStatus `db:"status"`
	Items  []OrderItem
}

// Total is derived from the items every time; orders have no stored total.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}

func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

type OrderItem struct {
	ProductID uuid.UUID `db:"product_id"`
	Name      string    `db:"name"`
	UnitPrice float64   `db:"unit_price"`
	Quantity  int       `db:"quantity"`
}

func (i OrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
