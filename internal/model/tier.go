package model

import "time"

// Tier 订阅档位，限制用户可同时在售的商品数
type Tier struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	ListingLimit int       `gorm:"not null;default:5" json:"listing_limit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Tier) TableName() string { return "tiers" }
