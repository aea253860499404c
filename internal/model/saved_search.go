package model

import "time"

// SavedSearch 用户保存的搜索条件
type SavedSearch struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string    `gorm:"type:varchar(36);index:idx_search_user;not null" json:"user_id"`
	Query      string    `gorm:"type:varchar(255)" json:"query"`
	CategoryID string    `gorm:"type:varchar(36)" json:"category_id"`
	StateID    string    `gorm:"type:varchar(36)" json:"state_id"`
	MinPrice   float64   `gorm:"type:decimal(10,2)" json:"min_price"`
	MaxPrice   float64   `gorm:"type:decimal(10,2)" json:"max_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (SavedSearch) TableName() string { return "saved_searches" }
