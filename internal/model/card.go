package model

import "time"

// Card 用户保存的银行卡摘要信息。只存品牌/后四位/有效期，
// 不落完整卡号。
type Card struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string    `gorm:"type:varchar(36);index:idx_card_user;not null" json:"user_id"`
	Brand       string    `gorm:"type:varchar(20);not null" json:"brand"`
	Last4       string    `gorm:"type:varchar(4);not null" json:"last4"`
	ExpiryMonth int       `gorm:"not null" json:"expiry_month"`
	ExpiryYear  int       `gorm:"not null" json:"expiry_year"`
	HolderName  string    `gorm:"type:varchar(100)" json:"holder_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Card) TableName() string { return "cards" }
