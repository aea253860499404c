package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Tier{}, &model.City{}, &model.State{}, &model.Category{},
		&model.User{}, &model.Product{}, &model.Order{}, &model.Payment{},
		&model.CartItem{}, &model.WishlistItem{}, &model.Notification{},
		&model.Card{}, &model.Review{}, &model.SavedSearch{},
	))
	return db
}

func setupMiniredis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

type orderTestEnv struct {
	db     *gorm.DB
	orders OrderService
	carts  repository.CartRepository
	notifs repository.NotificationRepository

	seller  *model.User
	buyer   *model.User
	product *model.Product
}

func setupOrderTest(t *testing.T) *orderTestEnv {
	t.Helper()
	db := setupServiceDB(t)
	rdb := setupMiniredis(t)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	notifier := NewNotificationService(notifRepo, userRepo, rdb, nil, nil)
	orders := NewOrderService(db, orderRepo, productRepo, cartRepo, notifier, nil)

	seller := &model.User{ID: uuid.New().String(), Name: "seller", Email: "seller@example.com", Password: "x"}
	buyer := &model.User{ID: uuid.New().String(), Name: "buyer", Email: "buyer@example.com", Password: "x"}
	require.NoError(t, db.Create(seller).Error)
	require.NoError(t, db.Create(buyer).Error)

	product := &model.Product{
		ID:       uuid.New().String(),
		SellerID: seller.ID,
		Title:    "Calculus 3rd ed.",
		Price:    25.50,
		Status:   model.ProductStatusSelling,
		Version:  1,
	}
	require.NoError(t, db.Create(product).Error)

	return &orderTestEnv{
		db: db, orders: orders, carts: cartRepo, notifs: notifRepo,
		seller: seller, buyer: buyer, product: product,
	}
}

func TestOrderCreate(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	// 下单前商品在购物车里，下单后应被清掉
	require.NoError(t, env.carts.Add(ctx, env.buyer.ID, env.product.ID))

	order, err := env.orders.Create(ctx, env.buyer.ID, env.product.ID, "12 Main St")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, model.TrackingOrderPlaced, order.TrackingStatus)
	assert.Equal(t, env.product.Price, order.Amount)
	assert.Equal(t, env.seller.ID, order.SellerID)

	inCart, err := env.carts.Exists(ctx, env.buyer.ID, env.product.ID)
	require.NoError(t, err)
	assert.False(t, inCart)

	// 卖家收到 order_created 通知
	notifs, err := env.notifs.ListByUser(ctx, env.seller.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotificationOrderCreated, notifs[0].Type)
}

func TestOrderCreateRejectsOwnProduct(t *testing.T) {
	env := setupOrderTest(t)
	_, err := env.orders.Create(context.Background(), env.seller.ID, env.product.ID, "addr")
	assert.ErrorIs(t, err, ErrOwnProduct)
}

func TestOrderCreateRejectsSoldProduct(t *testing.T) {
	env := setupOrderTest(t)
	require.NoError(t, env.db.Model(&model.Product{}).
		Where("id = ?", env.product.ID).
		Update("status", model.ProductStatusSold).Error)

	_, err := env.orders.Create(context.Background(), env.buyer.ID, env.product.ID, "addr")
	assert.ErrorIs(t, err, ErrProductNotOnSale)
}

func TestOrderLifecycleHappyPath(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order, err := env.orders.Create(ctx, env.buyer.ID, env.product.ID, "addr")
	require.NoError(t, err)

	order, err = env.orders.Accept(ctx, env.seller.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusAccepted, order.OrderStatus)

	order, err = env.orders.Ship(ctx, env.seller.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TrackingShipped, order.TrackingStatus)

	order, err = env.orders.MarkDelivered(ctx, env.seller.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TrackingDelivered, order.TrackingStatus)

	order, err = env.orders.Complete(ctx, env.buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, order.OrderStatus)

	// 完成后商品应为已售并绑定买家，version 前进
	var product model.Product
	require.NoError(t, env.db.First(&product, "id = ?", env.product.ID).Error)
	assert.Equal(t, model.ProductStatusSold, product.Status)
	require.NotNil(t, product.BuyerID)
	assert.Equal(t, env.buyer.ID, *product.BuyerID)
	assert.Greater(t, product.Version, env.product.Version)

	// 买卖双方各自收到对应通知
	buyerNotifs, err := env.notifs.ListByUser(ctx, env.buyer.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, buyerNotifs, 3) // accepted, shipped, delivered
	sellerNotifs, err := env.notifs.ListByUser(ctx, env.seller.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, sellerNotifs, 2) // created, completed
}

func TestOrderRejectReleasesProduct(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order, err := env.orders.Create(ctx, env.buyer.ID, env.product.ID, "addr")
	require.NoError(t, err)

	order, err = env.orders.Reject(ctx, env.seller.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusRejected, order.OrderStatus)

	var product model.Product
	require.NoError(t, env.db.First(&product, "id = ?", env.product.ID).Error)
	assert.Equal(t, model.ProductStatusSelling, product.Status)
	assert.Nil(t, product.BuyerID)
}

func TestOrderTransitionGuards(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order, err := env.orders.Create(ctx, env.buyer.ID, env.product.ID, "addr")
	require.NoError(t, err)

	// 买家不能接单，卖家不能撤单
	_, err = env.orders.Accept(ctx, env.buyer.ID, order.ID)
	assert.ErrorIs(t, err, ErrNotOrderSeller)
	_, err = env.orders.Cancel(ctx, env.seller.ID, order.ID)
	assert.ErrorIs(t, err, ErrNotOrderBuyer)

	// pending 不能直接发货或完成
	_, err = env.orders.Ship(ctx, env.seller.ID, order.ID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	_, err = env.orders.Complete(ctx, env.buyer.ID, order.ID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	// 非法流转不应有任何落库副作用
	got, err := env.orders.Get(ctx, env.buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, got.OrderStatus)
}

func TestOrderCancel(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order, err := env.orders.Create(ctx, env.buyer.ID, env.product.ID, "addr")
	require.NoError(t, err)

	order, err = env.orders.Cancel(ctx, env.buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, order.OrderStatus)

	// 已撤订单不能再接
	_, err = env.orders.Accept(ctx, env.seller.ID, order.ID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestOrderGetHidesOthersOrders(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order, err := env.orders.Create(ctx, env.buyer.ID, env.product.ID, "addr")
	require.NoError(t, err)

	_, err = env.orders.Get(ctx, uuid.New().String(), order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = env.orders.Get(ctx, env.buyer.ID, uuid.New().String())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderListForUserByRole(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	_, err := env.orders.Create(ctx, env.buyer.ID, env.product.ID, "addr")
	require.NoError(t, err)

	asBuyer, err := env.orders.ListForUser(ctx, env.buyer.ID, "buyer", 1, 10)
	require.NoError(t, err)
	assert.Len(t, asBuyer, 1)

	asSeller, err := env.orders.ListForUser(ctx, env.seller.ID, "seller", 1, 10)
	require.NoError(t, err)
	assert.Len(t, asSeller, 1)

	empty, err := env.orders.ListForUser(ctx, env.seller.ID, "buyer", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// 接单与撤单争同一笔 pending 订单：流转里的行锁读保证后到的一方
// 看到已提交的新状态，前置条件不过，不会把前一次流转覆盖掉。
func TestOrderAcceptCancelConflict(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	order, err := env.orders.Create(ctx, env.buyer.ID, env.product.ID, "addr")
	require.NoError(t, err)

	// 第二个服务实例模拟另一个会话
	notifier := NewNotificationService(env.notifs, repository.NewUserRepository(env.db), setupMiniredis(t), nil, nil)
	other := NewOrderService(env.db, repository.NewOrderRepository(env.db),
		repository.NewProductRepository(env.db), env.carts, notifier, nil)

	_, err = env.orders.Accept(ctx, env.seller.ID, order.ID)
	require.NoError(t, err)

	_, err = other.Cancel(ctx, env.buyer.ID, order.ID)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	var got model.Order
	require.NoError(t, env.db.First(&got, "id = ?", order.ID).Error)
	assert.Equal(t, model.OrderStatusAccepted, got.OrderStatus)
	assert.NotNil(t, got.AcceptedAt)
}

func TestOrderCompleteClearsOtherCarts(t *testing.T) {
	env := setupOrderTest(t)
	ctx := context.Background()

	// 路人甲也把这本书加了购物车
	other := &model.User{ID: uuid.New().String(), Name: "other", Email: "other@example.com", Password: "x"}
	require.NoError(t, env.db.Create(other).Error)
	require.NoError(t, env.carts.Add(ctx, other.ID, env.product.ID))

	completeOrder(t, env)

	inCart, err := env.carts.Exists(ctx, other.ID, env.product.ID)
	require.NoError(t, err)
	assert.False(t, inCart)
}
