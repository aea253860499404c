package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户（买家/卖家同一张表）
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"type:varchar(20)" json:"phone"`
	// bcrypt 哈希，永不下发
	Password  string         `gorm:"type:varchar(100);not null" json:"-"`
	AvatarURL string         `gorm:"type:varchar(255)" json:"avatar_url"`
	CityID    string         `gorm:"type:varchar(36);index" json:"city_id"`
	TierID    string         `gorm:"type:varchar(36);index" json:"tier_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
