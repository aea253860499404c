package model

import "time"

// State 书况等级（如 全新/良好/可用），与订单状态无关
type State struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	// 数值越小书况越好，用于排序
	Rank      int       `gorm:"not null;default:0" json:"rank"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (State) TableName() string { return "states" }
