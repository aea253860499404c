package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/schoolbooks/internal/model"
)

type CartRepository interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	RemoveByProduct(ctx context.Context, productID string) error
	Exists(ctx context.Context, userID, productID string) (bool, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.CartItem, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository { return &cartRepository{db: db} }

func (r *cartRepository) Add(ctx context.Context, userID, productID string) error {
	item := &model.CartItem{ID: uuid.New().String(), UserID: userID, ProductID: productID}
	// 幂等：重复加购不报错
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error
}

func (r *cartRepository) Remove(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{}).Error
}

// RemoveByProduct 商品成单后从所有购物车清除
func (r *cartRepository) RemoveByProduct(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.CartItem{}).Error
}

func (r *cartRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.CartItem, error) {
	var res []*model.CartItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}
