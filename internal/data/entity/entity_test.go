package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	cases := map[string]OrderStatus{
		"pending":    OrderStatusPending,
		" Paid ":     OrderStatusPaid,
		"SHIPPED":    OrderStatusShipped,
		"delivered":  OrderStatusDelivered,
		"cancelled":  OrderStatusCancelled,
		"processing": OrderStatusPaid,
		"Completed":  OrderStatusDelivered,
	}
	for in, want := range cases {
		got, err := ParseOrderStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "canceled", "refunded", "processing!"} {
		_, err := ParseOrderStatus(bad)
		assert.Error(t, err, bad)
	}
}

func TestLegacyNamesAreNotStoredStatuses(t *testing.T) {
	assert.False(t, OrderStatus("processing").Valid())
	assert.False(t, OrderStatus("completed").Valid())
	assert.Len(t, OrderStatuses(), 5)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("root")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestOrderTotals(t *testing.T) {
	order := &Order{Items: []OrderItem{
		{UnitPrice: 10, Quantity: 2},
		{UnitPrice: 2.5, Quantity: 3},
	}}
	assert.Equal(t, 27.5, order.Total())
	assert.Equal(t, 5, order.ItemCount())
	assert.Zero(t, (&Order{}).Total())
}

func TestGuestActor(t *testing.T) {
	assert.True(t, GuestActor().IsGuest())
	assert.True(t, Actor{Role: RoleUser}.IsGuest())
	assert.False(t, Actor{ID: uuid.New(), Role: RoleUser}.IsGuest())
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
}
