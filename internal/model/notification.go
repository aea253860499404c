package model

import "time"

// NotificationType 通知类型，对应订单生命周期事件
type NotificationType string

const (
	NotificationOrderCreated   NotificationType = "order_created"
	NotificationOrderAccepted  NotificationType = "order_accepted"
	NotificationOrderRejected  NotificationType = "order_rejected"
	NotificationOrderShipped   NotificationType = "order_shipped"
	NotificationOrderDelivered NotificationType = "order_delivered"
	NotificationOrderCompleted NotificationType = "order_completed"
)

// Notification 站内通知，仅由订单状态流转产生
type Notification struct {
	ID        string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string           `gorm:"type:varchar(36);index:idx_notif_user;not null" json:"user_id"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      NotificationType `gorm:"column:notification_type;type:varchar(32);not null" json:"notification_type"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	OrderID   *string          `gorm:"type:varchar(36);index" json:"order_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (Notification) TableName() string { return "notifications" }
