// Package orderstate holds the order status transition graph.
package orderstate

import (
	"storefront-admin/internal/apperr"
	"storefront-admin/internal/data/entity"
)

var transitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderStatusPending:   {entity.OrderStatusPaid, entity.OrderStatusCancelled},
	entity.OrderStatusPaid:      {entity.OrderStatusShipped, entity.OrderStatusCancelled},
	entity.OrderStatusShipped:   {entity.OrderStatusDelivered},
	entity.OrderStatusDelivered: {},
	entity.OrderStatusCancelled: {},
}

// CanTransition reports whether from -> to is an edge of the graph.
// Self-loops and unknown statuses are never edges.
func CanTransition(from, to entity.OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition returns the requested status when the edge is legal, and a
// *apperr.TransitionError naming both ends otherwise. It accepts any string
// value and never panics.
func Transition(current, requested entity.OrderStatus) (entity.OrderStatus, error) {
	if !CanTransition(current, requested) {
		return current, &apperr.TransitionError{From: string(current), To: string(requested)}
	}
	return requested, nil
}

// Allowed lists the statuses reachable in one step from s.
func Allowed(s entity.OrderStatus) []entity.OrderStatus {
	next := transitions[s]
	out := make([]entity.OrderStatus, len(next))
	copy(out, next)
	return out
}

func IsTerminal(s entity.OrderStatus) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}
