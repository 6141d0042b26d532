// Package permission decides which actor may perform which action on which
// resource. Every role check in the service goes through Authorize; handlers
// and middleware never compare roles themselves.
package permission

import (
	"storefront-admin/internal/apperr"
	"storefront-admin/internal/data/entity"

	"github.com/google/uuid"
)

type Action string

const (
	// Public reads.
	ActionViewProducts   Action = "view-products"
	ActionViewCategories Action = "view-categories"

	// Owner actions.
	ActionViewOwnOrders   Action = "view-own-orders"
	ActionEditOwnReview   Action = "edit-own-review"
	ActionDeleteOwnReview Action = "delete-own-review"

	// Administrative actions.
	ActionListOrders       Action = "list-orders"
	ActionViewOrder        Action = "view-order"
	ActionSetOrderStatus   Action = "set-order-status"
	ActionListUsers        Action = "list-users"
	ActionEditUser         Action = "edit-user"
	ActionDeleteUser       Action = "delete-user"
	ActionModerateReview   Action = "moderate-review"
	ActionViewStats        Action = "view-stats"
	ActionManageCategories Action = "manage-categories"
)

// Request describes a single authorization question. ResourceOwnerID is
// uuid.Nil for resources without an owner. ResourceRole is only meaningful
// when the resource is itself a user, and may be empty when not yet known.
type Request struct {
	ActorRole       entity.UserRole
	ActorID         uuid.UUID
	Action          Action
	ResourceOwnerID uuid.UUID
	ResourceRole    entity.UserRole
}

type Decision struct {
	Allowed bool
	Reason  string
}

// Err returns nil for an allow and a PermissionDenied error otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apperr.PermissionDenied(d.Reason)
}

const (
	ReasonSelfAdministration = "administrative user actions cannot target yourself"
	ReasonAdminTarget        = "admins cannot be deleted"
	ReasonNotOwner           = "resource is not owned by actor"
	ReasonAuthRequired       = "authentication required"
	ReasonNotAllowed         = "action not allowed for role"
	ReasonUnknownRole        = "unknown role"
)

var (
	publicActions = map[Action]bool{
		ActionViewProducts:   true,
		ActionViewCategories: true,
	}

	ownerActions = map[Action]bool{
		ActionEditOwnReview:   true,
		ActionDeleteOwnReview: true,
		ActionViewOwnOrders:   true,
	}

	// Actions on another user through the admin panel.
	otherUserActions = map[Action]bool{
		ActionEditUser:   true,
		ActionDeleteUser: true,
	}
)

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// Authorize evaluates the rules in order; the first match wins.
func Authorize(req Request) Decision {
	if !req.ActorRole.Valid() {
		return deny(ReasonUnknownRole)
	}

	isSelf := req.ActorID != uuid.Nil && req.ResourceOwnerID == req.ActorID

	if req.ActorRole == entity.RoleAdmin {
		switch {
		case otherUserActions[req.Action] && isSelf:
			return deny(ReasonSelfAdministration)
		case req.Action == ActionDeleteUser && req.ResourceRole == entity.RoleAdmin:
			return deny(ReasonAdminTarget)
		}
		return allow()
	}

	if otherUserActions[req.Action] && isSelf {
		return deny(ReasonSelfAdministration)
	}

	switch req.ActorRole {
	case entity.RoleUser:
		if req.ActorID == uuid.Nil {
			return deny(ReasonAuthRequired)
		}
		if req.ResourceOwnerID != uuid.Nil && !isSelf {
			return deny(ReasonNotOwner)
		}
		if ownerActions[req.Action] && isSelf {
			return allow()
		}
		if publicActions[req.Action] {
			return allow()
		}
	case entity.RoleGuest:
		if publicActions[req.Action] {
			return allow()
		}
		return deny(ReasonAuthRequired)
	}

	return deny(ReasonNotAllowed)
}

// Check is Authorize for an actor, returning a typed error on deny.
func Check(actor entity.Actor, action Action, ownerID uuid.UUID, resourceRole entity.UserRole) error {
	return Authorize(Request{
		ActorRole:       actor.Role,
		ActorID:         actor.ID,
		Action:          action,
		ResourceOwnerID: ownerID,
		ResourceRole:    resourceRole,
	}).Err()
}
