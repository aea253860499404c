package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/schoolbooks/internal/model"
)

// OrderRepository 订单仓储接口。状态流转涉及订单+商品双写，
// 由 service 层在一个事务里完成，这里只提供读与创建。
type OrderRepository interface {
	// Create 创建订单
	Create(ctx context.Context, order *model.Order) error

	// GetByID 根据订单ID查询订单
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// ListByBuyer 查询买家订单列表
	ListByBuyer(ctx context.Context, buyerID string, offset, limit int) ([]*model.Order, error)

	// ListBySeller 查询卖家订单列表
	ListBySeller(ctx context.Context, sellerID string, offset, limit int) ([]*model.Order, error)

	// ExistsActiveByProduct 商品是否有未完结订单（pending/accepted）
	ExistsActiveByProduct(ctx context.Context, productID string) (bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepository{db: db} }

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID string, offset, limit int) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListBySeller(ctx context.Context, sellerID string, offset, limit int) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ExistsActiveByProduct(ctx context.Context, productID string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("product_id = ? AND order_status IN ?", productID,
			[]model.OrderStatus{model.OrderStatusPending, model.OrderStatusAccepted}).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}
