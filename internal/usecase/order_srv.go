package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-admin/internal/apperr"
	"storefront-admin/internal/data/entity"
	"storefront-admin/internal/data/repository"
	"storefront-admin/internal/dto/request"
	"storefront-admin/internal/dto/response"
	"storefront-admin/internal/orderstate"
	"storefront-admin/internal/permission"
	"storefront-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	ListOrders(ctx context.Context, actor entity.Actor) ([]response.OrderSummary, error)
	GetOrder(ctx context.Context, actor entity.Actor, orderID string) (*response.OrderDetail, error)
	SetOrderStatus(ctx context.Context, actor entity.Actor, orderID string, req *request.SetOrderStatusRequest) (*response.OrderDetail, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	timeout   time.Duration
	retries   int
	log       *zap.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, config *utils.Config, log *zap.Logger) OrderService {
	retries := config.Order.TransitionRetries
	if retries < 1 {
		retries = 1
	}
	return &orderService{
		orderRepo: orderRepo,
		timeout:   config.Order.StoreTimeout,
		retries:   retries,
		log:       log.With(zap.String("service", "order")),
	}
}

// ListOrders returns every order for admins and the actor's own orders for
// regular users.
func (s *orderService) ListOrders(ctx context.Context, actor entity.Actor) ([]response.OrderSummary, error) {
	all := permission.Check(actor, permission.ActionListOrders, uuid.Nil, "") == nil
	if !all {
		if err := permission.Check(actor, permission.ActionViewOwnOrders, actor.ID, ""); err != nil {
			return nil, err
		}
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	var orders []*entity.Order
	var err error
	if all {
		orders, err = s.orderRepo.FindAll(ctx)
	} else {
		orders, err = s.orderRepo.FindByUserID(ctx, actor.ID)
	}
	if err != nil {
		s.log.Error("Failed to list orders",
			zap.Error(err),
			zap.String("actor_id", actor.ID.String()),
			zap.Bool("all", all),
		)
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return response.OrdersToSummary(orders), nil
}

// GetOrder hides the existence of orders from actors who may not see them:
// a missing order and a foreign order both yield PermissionDenied for
// non-admins.
func (s *orderService) GetOrder(ctx context.Context, actor entity.Actor, orderID string) (*response.OrderDetail, error) {
	admin := permission.Check(actor, permission.ActionViewOrder, uuid.Nil, "") == nil
	if !admin {
		if err := permission.Check(actor, permission.ActionViewOwnOrders, actor.ID, ""); err != nil {
			return nil, err
		}
	}

	id, err := parseID("order_id", orderID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if order == nil {
		if admin {
			return nil, apperr.NotFound("order", orderID)
		}
		return nil, apperr.PermissionDenied(permission.ReasonNotOwner)
	}

	if !admin {
		if err := permission.Check(actor, permission.ActionViewOwnOrders, order.UserID, ""); err != nil {
			return nil, err
		}
	}

	detail := response.OrderToDetail(order, s.allowedFor(actor, order))
	return &detail, nil
}

// SetOrderStatus moves an order along one edge of the transition graph. The
// write is conditional on the status that was read; when another writer got
// there first the order is re-read and the transition re-validated.
func (s *orderService) SetOrderStatus(ctx context.Context, actor entity.Actor, orderID string, req *request.SetOrderStatusRequest) (*response.OrderDetail, error) {
	if err := permission.Check(actor, permission.ActionSetOrderStatus, uuid.Nil, ""); err != nil {
		s.log.Warn("Set order status denied",
			zap.String("actor_id", actor.ID.String()),
			zap.String("role", string(actor.Role)),
			zap.String("order_id", orderID),
		)
		return nil, err
	}

	if req == nil {
		return nil, apperr.InvalidField("status", "This field is required")
	}
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	id, err := parseID("order_id", orderID)
	if err != nil {
		return nil, err
	}

	requested, err := entity.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, apperr.InvalidField("status", err.Error())
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	for attempt := 1; attempt <= s.retries; attempt++ {
		order, err := s.orderRepo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("set order status: %w", err)
		}
		if order == nil {
			return nil, apperr.NotFound("order", orderID)
		}

		next, err := orderstate.Transition(order.Status, requested)
		if err != nil {
			s.log.Warn("Rejected order status transition",
				zap.String("order_id", orderID),
				zap.String("from", string(order.Status)),
				zap.String("to", string(requested)),
				zap.Int("attempt", attempt),
			)
			return nil, fmt.Errorf("set order status: %w", err)
		}

		swapped, err := s.orderRepo.CompareAndSwapStatus(ctx, order.ID, order.Status, next)
		if err != nil {
			return nil, fmt.Errorf("set order status: %w", err)
		}

		if swapped {
			s.log.Info("Order status changed",
				zap.String("order_id", orderID),
				zap.String("from", string(order.Status)),
				zap.String("to", string(next)),
				zap.String("actor_id", actor.ID.String()),
				zap.Bool("terminal", orderstate.IsTerminal(next)),
			)
			order.Status = next
			order.UpdatedAt = time.Now()
			detail := response.OrderToDetail(order, s.allowedFor(actor, order))
			return &detail, nil
		}

		s.log.Warn("Order status changed concurrently, retrying",
			zap.String("order_id", orderID),
			zap.String("read_status", string(order.Status)),
			zap.Int("attempt", attempt),
		)

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("set order status: %w", err)
		}
	}

	return nil, apperr.Conflict("order %s changed concurrently %d times", orderID, s.retries)
}

// allowedFor lists the transitions the actor could request next.
func (s *orderService) allowedFor(actor entity.Actor, order *entity.Order) []entity.OrderStatus {
	err := permission.Check(actor, permission.ActionSetOrderStatus, uuid.Nil, "")
	if errors.Is(err, apperr.ErrPermissionDenied) {
		return []entity.OrderStatus{}
	}
	return orderstate.Allowed(order.Status)
}
