package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderAccept(t *testing.T) {
	now := time.Now()
	o := &Order{OrderStatus: OrderStatusPending, TrackingStatus: TrackingOrderPlaced}

	require.NoError(t, o.Accept(now))
	assert.Equal(t, OrderStatusAccepted, o.OrderStatus)
	assert.Equal(t, TrackingPreparing, o.TrackingStatus)
	require.NotNil(t, o.AcceptedAt)
	assert.Equal(t, now, *o.AcceptedAt)

	// 重复接单拒绝
	assert.ErrorIs(t, o.Accept(now), ErrInvalidTransition)
}

func TestOrderRejectAndCancelOnlyFromPending(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusAccepted, OrderStatusRejected, OrderStatusCompleted, OrderStatusCancelled} {
		o := &Order{OrderStatus: status}
		assert.ErrorIs(t, o.Reject(), ErrInvalidTransition, "reject from %s", status)
		o = &Order{OrderStatus: status}
		assert.ErrorIs(t, o.Cancel(), ErrInvalidTransition, "cancel from %s", status)
	}

	o := &Order{OrderStatus: OrderStatusPending}
	require.NoError(t, o.Reject())
	assert.Equal(t, OrderStatusRejected, o.OrderStatus)

	o = &Order{OrderStatus: OrderStatusPending}
	require.NoError(t, o.Cancel())
	assert.Equal(t, OrderStatusCancelled, o.OrderStatus)
}

func TestOrderShipRequiresAcceptedPreparing(t *testing.T) {
	now := time.Now()

	o := &Order{OrderStatus: OrderStatusPending, TrackingStatus: TrackingOrderPlaced}
	assert.ErrorIs(t, o.Ship(now), ErrInvalidTransition)

	o = &Order{OrderStatus: OrderStatusAccepted, TrackingStatus: TrackingShipped}
	assert.ErrorIs(t, o.Ship(now), ErrInvalidTransition)

	o = &Order{OrderStatus: OrderStatusAccepted, TrackingStatus: TrackingPreparing}
	require.NoError(t, o.Ship(now))
	assert.Equal(t, TrackingShipped, o.TrackingStatus)
	require.NotNil(t, o.ShippedAt)
}

func TestOrderMarkDeliveredHasNoPrecondition(t *testing.T) {
	// 承运方回调可能在任何状态下到达，送达标记永远生效
	now := time.Now()
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusAccepted, OrderStatusRejected, OrderStatusCancelled} {
		o := &Order{OrderStatus: status, TrackingStatus: TrackingOrderPlaced}
		o.MarkDelivered(now)
		assert.Equal(t, TrackingDelivered, o.TrackingStatus, "status %s", status)
		assert.NotNil(t, o.DeliveredAt)
		// 粗粒度状态不被送达标记改变
		assert.Equal(t, status, o.OrderStatus)
	}
}

func TestOrderCompleteRequiresDelivered(t *testing.T) {
	o := &Order{OrderStatus: OrderStatusAccepted, TrackingStatus: TrackingShipped}
	assert.ErrorIs(t, o.Complete(), ErrInvalidTransition)

	o = &Order{OrderStatus: OrderStatusPending, TrackingStatus: TrackingDelivered}
	assert.ErrorIs(t, o.Complete(), ErrInvalidTransition)

	o = &Order{OrderStatus: OrderStatusAccepted, TrackingStatus: TrackingDelivered}
	require.NoError(t, o.Complete())
	assert.Equal(t, OrderStatusCompleted, o.OrderStatus)
}

func TestOrderHappyPath(t *testing.T) {
	now := time.Now()
	o := &Order{OrderStatus: OrderStatusPending, TrackingStatus: TrackingOrderPlaced}

	require.NoError(t, o.Accept(now))
	require.NoError(t, o.Ship(now.Add(time.Hour)))
	o.MarkDelivered(now.Add(2 * time.Hour))
	require.NoError(t, o.Complete())

	assert.Equal(t, OrderStatusCompleted, o.OrderStatus)
	assert.Equal(t, TrackingDelivered, o.TrackingStatus)
}
