package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/schoolbooks/internal/broadcast"
	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

func TestNotificationPersistAndBroadcast(t *testing.T) {
	db := setupServiceDB(t)
	rdb := setupMiniredis(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), repository.NewUserRepository(db), rdb, nil, nil)
	ctx := context.Background()

	userID := uuid.New().String()
	sub := rdb.Subscribe(ctx, "user."+userID)
	defer sub.Close()
	_, err := sub.Receive(ctx) // 等订阅生效
	require.NoError(t, err)

	order := &model.Order{ID: uuid.New().String(), BuyerID: userID, SellerID: uuid.New().String()}
	require.NoError(t, svc.CreateOrderNotification(ctx, order, model.NotificationOrderAccepted, userID, "your order was accepted"))

	// 落库
	rows, err := svc.ListForUser(ctx, userID, 1, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.NotificationOrderAccepted, rows[0].Type)
	assert.False(t, rows[0].IsRead)

	// 广播到私有频道
	select {
	case msg := <-sub.Channel():
		var ev broadcast.Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
		assert.Equal(t, "your order was accepted", ev.Message)
		assert.Equal(t, string(model.NotificationOrderAccepted), ev.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no broadcast received")
	}
}

func TestNotificationReadFlow(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), repository.NewUserRepository(db), setupMiniredis(t), nil, nil)
	ctx := context.Background()

	userID := uuid.New().String()
	order := &model.Order{ID: uuid.New().String()}
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.CreateOrderNotification(ctx, order, model.NotificationOrderShipped, userID, "shipped"))
	}

	unread, err := svc.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	rows, err := svc.ListForUser(ctx, userID, 1, 10)
	require.NoError(t, err)
	require.NoError(t, svc.MarkRead(ctx, userID, rows[0].ID))

	unread, err = svc.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	require.NoError(t, svc.MarkAllRead(ctx, userID))
	unread, err = svc.UnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread)

	// 不是自己的通知标不了已读
	other := uuid.New().String()
	require.NoError(t, svc.CreateOrderNotification(ctx, order, model.NotificationOrderShipped, other, "shipped"))
	otherRows, err := svc.ListForUser(ctx, other, 1, 10)
	require.NoError(t, err)
	_ = svc.MarkRead(ctx, userID, otherRows[0].ID)
	unread, err = svc.UnreadCount(ctx, other)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}

func TestNotificationDuplicatesAllowed(t *testing.T) {
	// fire-and-forget：重复事件产生重复通知，不去重
	db := setupServiceDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), repository.NewUserRepository(db), setupMiniredis(t), nil, nil)
	ctx := context.Background()

	userID := uuid.New().String()
	order := &model.Order{ID: uuid.New().String()}
	require.NoError(t, svc.CreateOrderNotification(ctx, order, model.NotificationOrderDelivered, userID, "delivered"))
	require.NoError(t, svc.CreateOrderNotification(ctx, order, model.NotificationOrderDelivered, userID, "delivered"))

	rows, err := svc.ListForUser(ctx, userID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
