package adaptor

import (
	"encoding/json"
	"net/http"

	"storefront-admin/internal/dto/request"
	"storefront-admin/internal/usecase"
	"storefront-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// ListOrders handles GET /api/user/orders and GET /api/admin/orders. The
// service decides how much the actor may see.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context(), utils.GetActorFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "list orders")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}

// GetOrder handles GET /api/user/orders/{id} and GET /api/admin/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	order, err := h.service.GetOrder(r.Context(), utils.GetActorFromContext(r.Context()), orderID)
	if err != nil {
		handleServiceError(w, h.log, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "success", order)
}

// SetOrderStatus handles PUT /api/admin/orders/{id}/status
func (h *OrderHandler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req request.SetOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	order, err := h.service.SetOrderStatus(r.Context(), utils.GetActorFromContext(r.Context()), orderID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set order status")
		return
	}

	utils.ResponseSuccess(w, "Order status updated", order)
}
