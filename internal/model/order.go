package model

import (
	"errors"
	"time"
)

// OrderStatus 订单生命周期粗粒度状态
type OrderStatus string

// TrackingStatus 物流阶段，仅在订单 accepted 后推进
type TrackingStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"

	TrackingOrderPlaced TrackingStatus = "order_placed"
	TrackingPreparing   TrackingStatus = "preparing"
	TrackingShipped     TrackingStatus = "shipped"
	TrackingInTransit   TrackingStatus = "in_transit"
	TrackingDelivered   TrackingStatus = "delivered"
)

// ErrInvalidTransition 当前状态不允许该操作
var ErrInvalidTransition = errors.New("order: transition not allowed in current state")

// Order 订单
type Order struct {
	ID             string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	BuyerID        string         `gorm:"type:varchar(36);index:idx_order_buyer;not null" json:"buyer_id"`
	SellerID       string         `gorm:"type:varchar(36);index:idx_order_seller;not null" json:"seller_id"`
	ProductID      string         `gorm:"type:varchar(36);index;not null" json:"product_id"`
	OrderStatus    OrderStatus    `gorm:"type:varchar(16);index;not null;default:'pending'" json:"order_status"`
	TrackingStatus TrackingStatus `gorm:"type:varchar(16);not null;default:'order_placed'" json:"tracking_status"`
	// 交易金额快照，下单时从商品价格拷贝
	Amount          float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	ShippingAddress string     `gorm:"type:text" json:"shipping_address"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	ShippedAt       *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// 以下为纯状态流转方法：只改字段、不做任何 I/O。商品侧的联动
// （释放回市场、标记已售）由 service 层放进同一个事务。

// Accept 卖家接单：pending -> accepted，物流进入 preparing
func (o *Order) Accept(now time.Time) error {
	if o.OrderStatus != OrderStatusPending {
		return ErrInvalidTransition
	}
	o.OrderStatus = OrderStatusAccepted
	o.TrackingStatus = TrackingPreparing
	o.AcceptedAt = &now
	return nil
}

// Reject 卖家拒单：pending -> rejected
func (o *Order) Reject() error {
	if o.OrderStatus != OrderStatusPending {
		return ErrInvalidTransition
	}
	o.OrderStatus = OrderStatusRejected
	return nil
}

// Cancel 买家撤单：仅 pending 可撤
func (o *Order) Cancel() error {
	if o.OrderStatus != OrderStatusPending {
		return ErrInvalidTransition
	}
	o.OrderStatus = OrderStatusCancelled
	return nil
}

// Ship 卖家发货：accepted + preparing -> shipped
func (o *Order) Ship(now time.Time) error {
	if o.OrderStatus != OrderStatusAccepted || o.TrackingStatus != TrackingPreparing {
		return ErrInvalidTransition
	}
	o.TrackingStatus = TrackingShipped
	o.ShippedAt = &now
	return nil
}

// MarkDelivered 标记送达。有意不设前置条件：承运方回调可能在任意
// 状态下上报送达（产品侧待确认，先保留宽松行为）。
func (o *Order) MarkDelivered(now time.Time) {
	o.TrackingStatus = TrackingDelivered
	o.DeliveredAt = &now
}

// Complete 买家确认完成：accepted + delivered -> completed
func (o *Order) Complete() error {
	if o.OrderStatus != OrderStatusAccepted || o.TrackingStatus != TrackingDelivered {
		return ErrInvalidTransition
	}
	o.OrderStatus = OrderStatusCompleted
	return nil
}
