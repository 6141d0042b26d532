package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront-admin/internal/apperr"
	"storefront-admin/internal/data/entity"
	"storefront-admin/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminActor() entity.Actor {
	return entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
}

func userActor() entity.Actor {
	return entity.Actor{ID: uuid.New(), Role: entity.RoleUser}
}

func statusReq(s string) *request.SetOrderStatusRequest {
	return &request.SetOrderStatusRequest{Status: s}
}

func TestSetOrderStatusRejectsSkippedStep(t *testing.T) {
	store := newFakeStore()
	svc := store.service()
	order := store.orders.add(uuid.New(), entity.OrderStatusPending)

	_, err := svc.Order.SetOrderStatus(context.Background(), adminActor(), order.ID.String(), statusReq("shipped"))

	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
	var te *apperr.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "pending", te.From)
	assert.Equal(t, "shipped", te.To)
	assert.Equal(t, entity.OrderStatusPending, store.orders.status(order.ID))
	assert.Zero(t, store.orders.swaps)
}

func TestSetOrderStatusTerminalStates(t *testing.T) {
	for _, terminal := range []entity.OrderStatus{entity.OrderStatusDelivered, entity.OrderStatusCancelled} {
		t.Run(string(terminal), func(t *testing.T) {
			store := newFakeStore()
			svc := store.service()
			order := store.orders.add(uuid.New(), terminal)

			for _, target := range entity.OrderStatuses() {
				_, err := svc.Order.SetOrderStatus(context.Background(), adminActor(), order.ID.String(), statusReq(string(target)))
				assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "to %s", target)
			}
			assert.Equal(t, terminal, store.orders.status(order.ID))
		})
	}
}

func TestSetOrderStatusWalksTheGraph(t *testing.T) {
	store := newFakeStore()
	svc := store.service()
	ctx := context.Background()
	admin := adminActor()
	order := store.orders.add(uuid.New(), entity.OrderStatusPending,
		entity.OrderItem{ProductID: uuid.New(), Name: "mug", UnitPrice: 12.5, Quantity: 2},
	)

	detail, err := svc.Order.SetOrderStatus(ctx, admin, order.ID.String(), statusReq("paid"))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, detail.Status)
	assert.Equal(t, 25.0, detail.Total)
	assert.ElementsMatch(t, []entity.OrderStatus{entity.OrderStatusShipped, entity.OrderStatusCancelled}, detail.AllowedTransitions)

	detail, err = svc.Order.SetOrderStatus(ctx, admin, order.ID.String(), statusReq("cancelled"))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, detail.Status)
	assert.Empty(t, detail.AllowedTransitions)

	_, err = svc.Order.SetOrderStatus(ctx, admin, order.ID.String(), statusReq("shipped"))
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	assert.Equal(t, entity.OrderStatusCancelled, store.orders.status(order.ID))
}

func TestSetOrderStatusAcceptsLegacyNames(t *testing.T) {
	store := newFakeStore()
	svc := store.service()
	ctx := context.Background()
	admin := adminActor()
	order := store.orders.add(uuid.New(), entity.OrderStatusPending)

	_, err := svc.Order.SetOrderStatus(ctx, admin, order.ID.String(), statusReq("processing"))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, store.orders.status(order.ID))

	_, err = svc.Order.SetOrderStatus(ctx, admin, order.ID.String(), statusReq("shipped"))
	require.NoError(t, err)

	_, err = svc.Order.SetOrderStatus(ctx, admin, order.ID.String(), statusReq("completed"))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, store.orders.status(order.ID))
}

func TestSetOrderStatusInputErrors(t *testing.T) {
	store := newFakeStore()
	svc := store.service()
	ctx := context.Background()
	order := store.orders.add(uuid.New(), entity.OrderStatusPending)

	_, err := svc.Order.SetOrderStatus(ctx, adminActor(), order.ID.String(), statusReq("refunded"))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Order.SetOrderStatus(ctx, adminActor(), "not-a-uuid", statusReq("paid"))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Order.SetOrderStatus(ctx, adminActor(), order.ID.String(), nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Order.SetOrderStatus(ctx, adminActor(), uuid.NewString(), statusReq("paid"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSetOrderStatusRequiresAdmin(t *testing.T) {
	store := newFakeStore()
	svc := store.service()
	owner := userActor()
	order := store.orders.add(owner.ID, entity.OrderStatusPending)

	for _, actor := range []entity.Actor{owner, userActor(), entity.GuestActor()} {
		_, err := svc.Order.SetOrderStatus(context.Background(), actor, order.ID.String(), statusReq("cancelled"))
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	}
	assert.Equal(t, entity.OrderStatusPending, store.orders.status(order.ID))
}

func TestSetOrderStatusLoserOfRaceIsRevalidated(t *testing.T) {
	t.Run("paid wins then cancel still applies", func(t *testing.T) {
		store := newFakeStore()
		svc := store.service()
		ctx := context.Background()
		order := store.orders.add(uuid.New(), entity.OrderStatusPending)

		var payErr error
		store.orders.beforeSwap = func() {
			store.orders.beforeSwap = nil
			_, payErr = svc.Order.SetOrderStatus(ctx, adminActor(), order.ID.String(), statusReq("paid"))
		}

		detail, err := svc.Order.SetOrderStatus(ctx, adminActor(), order.ID.String(), statusReq("cancelled"))
		require.NoError(t, payErr)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusCancelled, detail.Status)
		assert.Equal(t, entity.OrderStatusCancelled, store.orders.status(order.ID))
	})

	t.Run("cancel wins then pay is rejected", func(t *testing.T) {
		store := newFakeStore()
		svc := store.service()
		ctx := context.Background()
		order := store.orders.add(uuid.New(), entity.OrderStatusPending)

		var cancelErr error
		store.orders.beforeSwap = func() {
			store.orders.beforeSwap = nil
			_, cancelErr = svc.Order.SetOrderStatus(ctx, adminActor(), order.ID.String(), statusReq("cancelled"))
		}

		_, err := svc.Order.SetOrderStatus(ctx, adminActor(), order.ID.String(), statusReq("paid"))
		require.NoError(t, cancelErr)

		var te *apperr.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "cancelled", te.From)
		assert.Equal(t, entity.OrderStatusCancelled, store.orders.status(order.ID))
	})
}

func TestSetOrderStatusConcurrentWriters(t *testing.T) {
	store := newFakeStore()
	svc := store.service()
	order := store.orders.add(uuid.New(), entity.OrderStatusPending)

	const writers = 16
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Order.SetOrderStatus(context.Background(), adminActor(), order.ID.String(), statusReq("paid"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperr.ErrInvalidTransition), errors.Is(err, apperr.ErrConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, entity.OrderStatusPaid, store.orders.status(order.ID))
}

func TestSetOrderStatusGivesUpWithConflict(t *testing.T) {
	store := newFakeStore()
	svc := store.service()
	order := store.orders.add(uuid.New(), entity.OrderStatusPending)
	store.orders.loseSwaps = 100

	_, err := svc.Order.SetOrderStatus(context.Background(), adminActor(), order.ID.String(), statusReq("paid"))

	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, testConfig().Order.TransitionRetries, store.orders.swaps)
	assert.Equal(t, entity.OrderStatusPending, store.orders.status(order.ID))
}

func TestListOrdersScopedByRole(t *testing.T) {
	store := newFakeStore()
	svc := store.service()
	ctx := context.Background()
	alice, bob := userActor(), userActor()
	store.orders.add(alice.ID, entity.OrderStatusPending)
	store.orders.add(alice.ID, entity.OrderStatusPaid)
	store.orders.add(bob.ID, entity.OrderStatusShipped)

	all, err := svc.Order.ListOrders(ctx, adminActor())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.Order.ListOrders(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, o := range mine {
		assert.Equal(t, alice.ID.String(), o.UserID)
	}

	_, err = svc.Order.ListOrders(ctx, entity.GuestActor())
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
}

func TestGetOrderHidesForeignOrders(t *testing.T) {
	store := newFakeStore()
	svc := store.service()
	ctx := context.Background()
	alice, bob := userActor(), userActor()
	order := store.orders.add(alice.ID, entity.OrderStatusPaid)

	detail, err := svc.Order.GetOrder(ctx, alice, order.ID.String())
	require.NoError(t, err)
	assert.Equal(t, order.ID.String(), detail.ID)
	assert.Empty(t, detail.AllowedTransitions)

	_, foreignErr := svc.Order.GetOrder(ctx, bob, order.ID.String())
	_, missingErr := svc.Order.GetOrder(ctx, bob, uuid.NewString())
	assert.ErrorIs(t, foreignErr, apperr.ErrPermissionDenied)
	assert.ErrorIs(t, missingErr, apperr.ErrPermissionDenied)
	assert.Equal(t, foreignErr.Error(), missingErr.Error())

	_, err = svc.Order.GetOrder(ctx, adminActor(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	detail, err = svc.Order.GetOrder(ctx, adminActor(), order.ID.String())
	require.NoError(t, err)
	assert.NotEmpty(t, detail.AllowedTransitions)
}
