package model

import "time"

// WishlistItem 心愿单条目
type WishlistItem struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);index:idx_wish_user;index:idx_wish_pair,unique;not null" json:"user_id"`
	ProductID string    `gorm:"type:varchar(36);not null;index:idx_wish_pair,unique" json:"product_id"`
	// idx_wish_pair = (user_id, product_id)
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WishlistItem) TableName() string { return "wishlist_items" }
