package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/schoolbooks/internal/cache"
	"github.com/d60-Lab/schoolbooks/internal/model"
	"github.com/d60-Lab/schoolbooks/internal/repository"
	"github.com/d60-Lab/schoolbooks/pkg/logger"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrNotOrderSeller   = errors.New("only the seller may perform this action")
	ErrNotOrderBuyer    = errors.New("only the buyer may perform this action")
	ErrOwnProduct       = errors.New("cannot order your own product")
	ErrConcurrentUpdate = errors.New("product was modified concurrently, retry")
)

// OrderService 订单生命周期。每个状态流转都在一个数据库事务里
// 完成订单+商品双写，商品侧用 version 乐观锁防并发。
type OrderService interface {
	Create(ctx context.Context, buyerID, productID, shippingAddress string) (*model.Order, error)
	Get(ctx context.Context, userID, orderID string) (*model.Order, error)
	ListForUser(ctx context.Context, userID, role string, page, pageSize int) ([]*model.Order, error)

	Accept(ctx context.Context, sellerID, orderID string) (*model.Order, error)
	Reject(ctx context.Context, sellerID, orderID string) (*model.Order, error)
	Ship(ctx context.Context, sellerID, orderID string) (*model.Order, error)
	MarkDelivered(ctx context.Context, sellerID, orderID string) (*model.Order, error)
	Complete(ctx context.Context, buyerID, orderID string) (*model.Order, error)
	Cancel(ctx context.Context, buyerID, orderID string) (*model.Order, error)
}

type orderService struct {
	db       *gorm.DB
	orders   repository.OrderRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	notifier NotificationService
	listings *cache.ListingCache
}

func NewOrderService(db *gorm.DB, orders repository.OrderRepository, products repository.ProductRepository,
	carts repository.CartRepository, notifier NotificationService, listings *cache.ListingCache) OrderService {
	return &orderService{db: db, orders: orders, products: products, carts: carts, notifier: notifier, listings: listings}
}

// Create 下单：商品必须在售且非自家。下单不锁商品（与源系统一致，
// 同一商品可以有多个 pending 订单），但会清掉买家购物车里的该商品。
func (s *orderService) Create(ctx context.Context, buyerID, productID, shippingAddress string) (*model.Order, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID == buyerID {
		return nil, ErrOwnProduct
	}
	if product.Status != model.ProductStatusSelling {
		return nil, ErrProductNotOnSale
	}

	order := &model.Order{
		ID:              uuid.New().String(),
		BuyerID:         buyerID,
		SellerID:        product.SellerID,
		ProductID:       productID,
		OrderStatus:     model.OrderStatusPending,
		TrackingStatus:  model.TrackingOrderPlaced,
		Amount:          product.Price,
		ShippingAddress: shippingAddress,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	if err := s.carts.Remove(ctx, buyerID, productID); err != nil {
		logger.L().Warn("cart cleanup after order failed",
			zap.String("order_id", order.ID), zap.Error(err))
	}

	s.notifier.NotifyOrderCreated(ctx, order)
	return order, nil
}

func (s *orderService) Get(ctx context.Context, userID, orderID string) (*model.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListForUser(ctx context.Context, userID, role string, page, pageSize int) ([]*model.Order, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	if role == "seller" {
		return s.orders.ListBySeller(ctx, userID, offset, pageSize)
	}
	return s.orders.ListByBuyer(ctx, userID, offset, pageSize)
}

// Accept 接单：pending -> accepted。商品不动，售出在 Complete 时落定。
func (s *orderService) Accept(ctx context.Context, sellerID, orderID string) (*model.Order, error) {
	order, err := s.transition(ctx, orderID, func(tx *gorm.DB, order *model.Order) error {
		if order.SellerID != sellerID {
			return ErrNotOrderSeller
		}
		return order.Accept(time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.notifier.NotifyOrderAccepted(ctx, order)
	return order, nil
}

// Reject 拒单：pending -> rejected，同事务内把商品放回市场
func (s *orderService) Reject(ctx context.Context, sellerID, orderID string) (*model.Order, error) {
	order, err := s.transition(ctx, orderID, func(tx *gorm.DB, order *model.Order) error {
		if order.SellerID != sellerID {
			return ErrNotOrderSeller
		}
		if err := order.Reject(); err != nil {
			return err
		}
		return s.releaseProduct(tx, order.ProductID)
	})
	if err != nil {
		return nil, err
	}
	s.notifier.NotifyOrderRejected(ctx, order)
	return order, nil
}

func (s *orderService) Ship(ctx context.Context, sellerID, orderID string) (*model.Order, error) {
	order, err := s.transition(ctx, orderID, func(tx *gorm.DB, order *model.Order) error {
		if order.SellerID != sellerID {
			return ErrNotOrderSeller
		}
		return order.Ship(time.Now())
	})
	if err != nil {
		return nil, err
	}
	s.notifier.NotifyOrderShipped(ctx, order)
	return order, nil
}

// MarkDelivered 无前置条件（见 model.Order.MarkDelivered 的说明）
func (s *orderService) MarkDelivered(ctx context.Context, sellerID, orderID string) (*model.Order, error) {
	order, err := s.transition(ctx, orderID, func(tx *gorm.DB, order *model.Order) error {
		if order.SellerID != sellerID {
			return ErrNotOrderSeller
		}
		order.MarkDelivered(time.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifier.NotifyOrderDelivered(ctx, order)
	return order, nil
}

// Complete 买家确认完成：同事务内商品置为 sold 并绑定买家
func (s *orderService) Complete(ctx context.Context, buyerID, orderID string) (*model.Order, error) {
	order, err := s.transition(ctx, orderID, func(tx *gorm.DB, order *model.Order) error {
		if order.BuyerID != buyerID {
			return ErrNotOrderBuyer
		}
		if err := order.Complete(); err != nil {
			return err
		}
		if err := s.sellProduct(tx, order.ProductID, order.BuyerID); err != nil {
			return err
		}
		// 商品已售出，从所有人的购物车里清掉
		return repository.NewCartRepository(tx).RemoveByProduct(ctx, order.ProductID)
	})
	if err != nil {
		return nil, err
	}
	s.notifier.NotifyOrderCompleted(ctx, order)
	if s.listings != nil {
		s.listings.Invalidate(ctx)
	}
	return order, nil
}

func (s *orderService) Cancel(ctx context.Context, buyerID, orderID string) (*model.Order, error) {
	return s.transition(ctx, orderID, func(tx *gorm.DB, order *model.Order) error {
		if order.BuyerID != buyerID {
			return ErrNotOrderBuyer
		}
		return order.Cancel()
	})
}

// transition 在一个事务里：锁行读订单 -> 应用纯流转函数 -> 保存。
// apply 里对商品的联动写也走同一个 tx。
func (s *orderService) transition(ctx context.Context, orderID string, apply func(tx *gorm.DB, order *model.Order) error) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := apply(tx, &order); err != nil {
			return err
		}
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// releaseProduct 把商品放回在售，清空买家
func (s *orderService) releaseProduct(tx *gorm.DB, productID string) error {
	return s.updateProductGuarded(tx, productID, map[string]interface{}{
		"status":   model.ProductStatusSelling,
		"buyer_id": nil,
	})
}

// sellProduct 商品置为已售并绑定买家
func (s *orderService) sellProduct(tx *gorm.DB, productID, buyerID string) error {
	return s.updateProductGuarded(tx, productID, map[string]interface{}{
		"status":   model.ProductStatusSold,
		"buyer_id": buyerID,
	})
}

// updateProductGuarded 带乐观锁的商品更新：version 不匹配说明并发
// 修改，整个事务回滚。
func (s *orderService) updateProductGuarded(tx *gorm.DB, productID string, fields map[string]interface{}) error {
	var product model.Product
	if err := tx.Where("id = ?", productID).First(&product).Error; err != nil {
		return err
	}
	fields["version"] = product.Version + 1
	res := tx.Model(&model.Product{}).
		Where("id = ? AND version = ?", productID, product.Version).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

func (s *orderService) getOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}
