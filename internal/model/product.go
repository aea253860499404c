package model

import "time"

// ProductStatus 商品在售状态
type ProductStatus string

const (
	ProductStatusSelling ProductStatus = "selling"
	ProductStatusSold    ProductStatus = "sold"
	ProductStatusBought  ProductStatus = "bought"
)

// Product 在售教材
// 不变量：status = selling 时 buyer_id 必为空
type Product struct {
	ID          string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SellerID    string        `gorm:"type:varchar(36);index:idx_product_seller;not null" json:"seller_id"`
	BuyerID     *string       `gorm:"type:varchar(36);index" json:"buyer_id,omitempty"`
	Title       string        `gorm:"type:varchar(255);not null" json:"title"`
	Author      string        `gorm:"type:varchar(255)" json:"author"`
	ISBN        string        `gorm:"type:varchar(20);index" json:"isbn"`
	Description string        `gorm:"type:text" json:"description"`
	Price       float64       `gorm:"type:decimal(10,2);not null" json:"price"`
	// 图片 URL，逗号分隔
	Images     string        `gorm:"type:text" json:"images"`
	Status     ProductStatus `gorm:"type:varchar(16);index;not null;default:'selling'" json:"status"`
	CategoryID string        `gorm:"type:varchar(36);index" json:"category_id"`
	StateID    string        `gorm:"type:varchar(36);index" json:"state_id"`
	// 乐观锁版本号，状态变更时校验
	Version   int64     `gorm:"not null;default:1" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }
