package response

import (
	"time"

	"storefront-admin/internal/data/entity"
)

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type OrderSummary struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Status    entity.OrderStatus `json:"status"`
	ItemCount int                `json:"item_count"`
	Total     float64            `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
}

type OrderDetail struct {
	OrderSummary
	UpdatedAt          time.Time            `json:"updated_at"`
	Items              []OrderItemResponse  `json:"items"`
	AllowedTransitions []entity.OrderStatus `json:"allowed_transitions"`
}

func OrderToSummary(order *entity.Order) OrderSummary {
	return OrderSummary{
		ID:        order.ID.String(),
		UserID:    order.UserID.String(),
		Status:    order.Status,
		ItemCount: order.ItemCount(),
		Total:     order.Total(),
		CreatedAt: order.CreatedAt,
	}
}

func OrdersToSummary(orders []*entity.Order) []OrderSummary {
	out := make([]OrderSummary, len(orders))
	for i, order := range orders {
		out[i] = OrderToSummary(order)
	}
	return out
}

func OrderToDetail(order *entity.Order, allowed []entity.OrderStatus) OrderDetail {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		}
	}

	return OrderDetail{
		OrderSummary:       OrderToSummary(order),
		UpdatedAt:          order.UpdatedAt,
		Items:              items,
		AllowedTransitions: allowed,
	}
}
