package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

func setupPaymentTest(t *testing.T) (*orderTestEnv, PaymentService, *model.Order) {
	t.Helper()
	env := setupOrderTest(t)
	payments := NewPaymentService(repository.NewPaymentRepository(env.db), repository.NewOrderRepository(env.db))

	order, err := env.orders.Create(context.Background(), env.buyer.ID, env.product.ID, "addr")
	require.NoError(t, err)
	return env, payments, order
}

func TestPaymentCreate(t *testing.T) {
	env, payments, order := setupPaymentTest(t)
	ctx := context.Background()

	p, err := payments.Create(ctx, env.buyer.ID, order.ID, "card")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, p.PaymentStatus)
	assert.Equal(t, order.Amount, p.PaymentAmount)

	// 一单一付
	_, err = payments.Create(ctx, env.buyer.ID, order.ID, "card")
	assert.ErrorIs(t, err, ErrPaymentExists)

	// 只有买家能发起支付
	_, err = payments.Create(ctx, env.seller.ID, order.ID, "card")
	assert.ErrorIs(t, err, ErrNotOrderBuyer)

	_, err = payments.Create(ctx, env.buyer.ID, uuid.New().String(), "card")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPaymentMarkCompleted(t *testing.T) {
	env, payments, order := setupPaymentTest(t)
	ctx := context.Background()

	p, err := payments.Create(ctx, env.buyer.ID, order.ID, "card")
	require.NoError(t, err)

	p, err = payments.MarkCompleted(ctx, env.buyer.ID, p.ID, "txn-123")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCompleted, p.PaymentStatus)
	assert.Equal(t, "txn-123", p.TransactionID)
	assert.NotNil(t, p.PaidAt)
}

func TestPaymentIndependentOfOrderState(t *testing.T) {
	// 支付与订单状态机相互独立：订单已撤，支付仍可标记完成
	env, payments, order := setupPaymentTest(t)
	ctx := context.Background()

	p, err := payments.Create(ctx, env.buyer.ID, order.ID, "card")
	require.NoError(t, err)

	_, err = env.orders.Cancel(ctx, env.buyer.ID, order.ID)
	require.NoError(t, err)

	p, err = payments.MarkCompleted(ctx, env.buyer.ID, p.ID, "txn-dead")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCompleted, p.PaymentStatus)

	// 反向也成立：完成后还能改成失败
	p, err = payments.MarkFailed(ctx, env.buyer.ID, p.ID, `{"code":"declined"}`)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusFailed, p.PaymentStatus)
}

func TestPaymentVisibility(t *testing.T) {
	env, payments, order := setupPaymentTest(t)
	ctx := context.Background()

	p, err := payments.Create(ctx, env.buyer.ID, order.ID, "card")
	require.NoError(t, err)

	// 买卖双方都能看
	_, err = payments.GetByOrder(ctx, env.buyer.ID, order.ID)
	require.NoError(t, err)
	_, err = payments.GetByOrder(ctx, env.seller.ID, order.ID)
	require.NoError(t, err)

	// 外人看不见，也改不了
	stranger := uuid.New().String()
	_, err = payments.GetByOrder(ctx, stranger, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = payments.MarkCompleted(ctx, stranger, p.ID, "txn")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
