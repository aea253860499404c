package model

import "time"

// CartItem 购物车条目
type CartItem struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);index:idx_cart_user;index:idx_cart_pair,unique;not null" json:"user_id"`
	ProductID string    `gorm:"type:varchar(36);not null;index:idx_cart_pair,unique" json:"product_id"`
	// 复合唯一键，避免重复加购
	// idx_cart_pair = (user_id, product_id)
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartItem) TableName() string { return "cart_items" }
