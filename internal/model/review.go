package model

import "time"

// Review 买家对卖家的评价，一单一评
type Review struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ReviewerID string    `gorm:"type:varchar(36);index;not null" json:"reviewer_id"`
	SellerID   string    `gorm:"type:varchar(36);index:idx_review_seller;not null" json:"seller_id"`
	OrderID    string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"order_id"`
	Rating     int       `gorm:"not null" json:"rating"` // 1..5
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }
